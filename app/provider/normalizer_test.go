package provider

import (
	"strings"
	"testing"
	"time"
)

func validArticle() Article {
	article := Article{
		Author:      "Jane Reporter",
		Title:       "Markets rally after rate decision",
		Description: "Stocks climbed on Tuesday following the announcement",
		URL:         "https://news.example.com/markets-rally",
		URLToImage:  "https://news.example.com/markets-rally.jpg",
		PublishedAt: "2026-08-30T12:30:00Z",
		Content:     "Stocks climbed sharply on Tuesday after the decision [+2022 chars]",
	}
	article.Source.ID = "example-news"
	article.Source.Name = "Example News"
	return article
}

func TestNormalizeArticles_Complete(t *testing.T) {
	normalized := NormalizeArticles([]Article{validArticle()})

	if len(normalized) != 1 {
		t.Fatalf("Expected 1 normalized article, got %d", len(normalized))
	}

	item := normalized[0]
	if item.Content != "Stocks climbed sharply on Tuesday after the decision" {
		t.Errorf("Expected truncation marker stripped, got %q", item.Content)
	}
	if item.Source != "Example News" {
		t.Errorf("Expected source name, got %q", item.Source)
	}
	expectedDate := time.Date(2026, 8, 30, 12, 30, 0, 0, time.UTC)
	if !item.PublishedDate.Equal(expectedDate) {
		t.Errorf("Expected published date %v, got %v", expectedDate, item.PublishedDate)
	}
}

func TestNormalizeArticles_SkipsMissingFields(t *testing.T) {
	missingTitle := validArticle()
	missingTitle.Title = ""

	missingSource := validArticle()
	missingSource.Source.Name = ""

	missingDate := validArticle()
	missingDate.PublishedAt = ""

	normalized := NormalizeArticles([]Article{missingTitle, missingSource, missingDate})
	if len(normalized) != 0 {
		t.Errorf("Expected all articles skipped, got %d", len(normalized))
	}
}

func TestNormalizeArticles_DescriptionFallback(t *testing.T) {
	article := validArticle()
	article.Content = ""
	article.Description = strings.Repeat("x", 250)

	normalized := NormalizeArticles([]Article{article})
	if len(normalized) != 1 {
		t.Fatalf("Expected 1 normalized article, got %d", len(normalized))
	}

	content := normalized[0].Content
	if !strings.HasSuffix(content, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", content)
	}
	if len(content) != 203 {
		t.Errorf("Expected 200-character preview plus ellipsis, got %d characters", len(content))
	}
}

func TestNormalizeArticles_AuthorFallback(t *testing.T) {
	article := validArticle()
	article.Author = ""

	normalized := NormalizeArticles([]Article{article})
	if len(normalized) != 1 {
		t.Fatalf("Expected 1 normalized article, got %d", len(normalized))
	}
	if normalized[0].Author != "Example News" {
		t.Errorf("Expected source name as author fallback, got %q", normalized[0].Author)
	}
}

func TestNormalizeArticles_UnparseableDateUsesNow(t *testing.T) {
	article := validArticle()
	article.PublishedAt = "yesterday"

	before := time.Now().UTC()
	normalized := NormalizeArticles([]Article{article})
	after := time.Now().UTC()

	if len(normalized) != 1 {
		t.Fatalf("Expected 1 normalized article, got %d", len(normalized))
	}
	date := normalized[0].PublishedDate
	if date.Before(before) || date.After(after) {
		t.Errorf("Expected fallback date between %v and %v, got %v", before, after, date)
	}
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		url  string
		safe bool
	}{
		{"https://news.example.com/story", true},
		{"http://news.example.com/story", true},
		{"ftp://news.example.com/story", false},
		{"not a url at all://", false},
		{"https://localhost/story", false},
		{"https://LOCALHOST/story", false},
		{"https://127.0.0.1/story", false},
		{"https://10.1.2.3/story", false},
		{"https://192.168.0.5/story", false},
		{"https://172.16.0.1/story", false},
		{"https://0.0.0.0/story", false},
		{"https://8.8.8.8/story", true},
		{"https:///missing-host", false},
	}

	for _, tt := range tests {
		if got := IsSafeURL(tt.url); got != tt.safe {
			t.Errorf("IsSafeURL(%q) = %v, expected %v", tt.url, got, tt.safe)
		}
	}
}
