package provider

import "time"

// Article is a raw top-headlines entry as returned by the provider.
type Article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Source is a raw source listing entry as returned by the provider.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
}

// NormalizedArticle is a provider article reduced to the storage shape,
// with sanitized content and a parsed publication date.
type NormalizedArticle struct {
	Title         string
	Content       string
	Description   string
	URL           string
	Source        string
	Author        string
	URLToImage    string
	PublishedDate time.Time
}

type headlinesResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type sourcesResponse struct {
	Status  string   `json:"status"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Sources []Source `json:"sources"`
}
