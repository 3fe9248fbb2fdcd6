package database

import (
	"time"
)

// ArticleFilter carries the resolved parameters of one listing request.
// SearchLanguage is the code detected from the search text; Language is
// the caller's preferred language and only applies when Search is empty.
// SourceNames is the country-resolved source name set; when empty the
// country stage is skipped rather than excluding everything.
type ArticleFilter struct {
	Search         string
	SearchLanguage string
	KeywordPhrases []string
	Category       string
	Source         string
	Author         string
	Language       string
	SourceNames    []string
	DateFrom       *time.Time
	DateTo         *time.Time
	SortBy         string
	Page           int
}

type ArticleRepository interface {
	List(filter ArticleFilter) ([]Article, int, error)
	InsertNew(articles []Article) (int, error)
	GetArticleCount() (int, error)
}

type SourceRepository interface {
	GetNamesByCountry(country string) ([]string, error)
	UpsertSources(sources []Source) (int, int, error)
	GetSourceCount() (int, error)
}
