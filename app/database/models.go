package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"newshub/app/news"
)

// Article is one ingested news item. The (URL, Source) pair is unique;
// Source is a denormalized name, not a foreign key into sources.
type Article struct {
	ID            string      `db:"id"` // Database UUID
	Title         string      `db:"title"`
	Content       string      `db:"content"`
	Description   string      `db:"description"`
	URL           string      `db:"url"`
	Category      string      `db:"category"`
	Source        string      `db:"source"`
	Author        *string     `db:"author"`
	URLToImage    *string     `db:"url_to_image"`
	PublishedDate time.Time   `db:"published_date"`
	FetchedDate   time.Time   `db:"fetched_date"`
	Keywords      KeywordList `db:"keywords"`
	Language      string      `db:"language"`
	IsFeatured    bool        `db:"is_featured"`
	IsArchived    bool        `db:"is_archived"`
}

// Source is one news-provider outlet; name is the stable identity.
type Source struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	URL      string  `db:"url"`
	Category string  `db:"category"`
	Language string  `db:"language"`
	Country  *string `db:"country"`
}

// KeywordList stores scored keyword pairs as a JSONB array of
// [phrase, score] entries.
type KeywordList []news.Keyword

func (k KeywordList) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]news.Keyword(k))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}
	return string(data), nil
}

func (k *KeywordList) Scan(src interface{}) error {
	if src == nil {
		*k = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported keywords column type %T", src)
	}

	if err := json.Unmarshal(data, (*[]news.Keyword)(k)); err != nil {
		return fmt.Errorf("failed to unmarshal keywords: %w", err)
	}
	return nil
}
