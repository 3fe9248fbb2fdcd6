package api

import (
	"time"

	"newshub/app/database"
)

// NewsQuery holds the raw query parameters of a listing request.
// Category, language and country codes are checked against the known
// provider vocabularies after binding.
type NewsQuery struct {
	Search          string `form:"search" binding:"omitempty,max=500"`
	Category        string `form:"category"`
	Source          string `form:"source"`
	Author          string `form:"author"`
	UserLanguage    string `form:"user_language"`
	UserCountryCode string `form:"user_country_code"`
	DateFrom        string `form:"date_from"`
	DateTo          string `form:"date_to"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=recent oldest title"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
}

// ArticleSummary is the listing shape: identity and display fields
// only, with a bounded content preview instead of the full body.
type ArticleSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ContentPreview string    `json:"content_preview"`
	URL            string    `json:"url"`
	Category       string    `json:"category"`
	Source         string    `json:"source"`
	Author         *string   `json:"author"`
	URLToImage     *string   `json:"url_to_image"`
	PublishedDate  time.Time `json:"published_date"`
}

// PaginatedResponse is the listing envelope: total row count, absolute
// links to the adjacent pages and the current page of results.
type PaginatedResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []ArticleSummary `json:"results"`
}

const contentPreviewLength = 200

func newArticleSummary(article database.Article) ArticleSummary {
	return ArticleSummary{
		ID:             article.ID,
		Title:          article.Title,
		ContentPreview: contentPreview(article.Content),
		URL:            article.URL,
		Category:       article.Category,
		Source:         article.Source,
		Author:         article.Author,
		URLToImage:     article.URLToImage,
		PublishedDate:  article.PublishedDate,
	}
}

func contentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= contentPreviewLength {
		return content
	}
	return string(runes[:contentPreviewLength]) + "..."
}
