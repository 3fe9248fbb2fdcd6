package provider

import (
	"log/slog"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Provider content bodies end with markers like " [+2022 chars]".
var truncationPattern = regexp.MustCompile(`\s+\[\+\d+\s+chars\]`)

const descriptionPreviewLength = 200

// NormalizeArticles converts raw provider entries into the storage
// shape. Entries missing any critical field are skipped, content falls
// back to a description preview, truncation markers are stripped and
// URLs must pass the safety check.
func NormalizeArticles(articles []Article) []NormalizedArticle {
	normalized := make([]NormalizedArticle, 0, len(articles))

	for _, article := range articles {
		if article.Title == "" || article.URL == "" || article.Description == "" ||
			article.Source.Name == "" || article.PublishedAt == "" {
			slog.Warn("Skipping article due to missing fields", "url", article.URL)
			continue
		}

		content := article.Content
		if content == "" {
			content = descriptionPreview(article.Description)
		}
		content = truncationPattern.ReplaceAllString(content, "")

		if !IsSafeURL(article.URL) {
			slog.Warn("Skipping article with invalid URL", "url", article.URL)
			continue
		}

		publishedDate, err := time.Parse(time.RFC3339, article.PublishedAt)
		if err != nil {
			slog.Warn("Failed to parse published date, using current time", "value", article.PublishedAt, "error", err)
			publishedDate = time.Now().UTC()
		}

		author := article.Author
		if author == "" {
			author = article.Source.Name
		}

		normalized = append(normalized, NormalizedArticle{
			Title:         article.Title,
			Content:       content,
			Description:   article.Description,
			URL:           article.URL,
			Source:        article.Source.Name,
			Author:        author,
			URLToImage:    article.URLToImage,
			PublishedDate: publishedDate,
		})
	}

	return normalized
}

func descriptionPreview(description string) string {
	runes := []rune(description)
	if len(runes) <= descriptionPreviewLength {
		return strings.TrimRight(description, " ") + "..."
	}
	return strings.TrimRight(string(runes[:descriptionPreviewLength]), " ") + "..."
}

// IsSafeURL accepts well-formed http(s) URLs and rejects localhost and
// private/loopback IPv4 targets.
func IsSafeURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return false
	}
	if strings.EqualFold(hostname, "localhost") {
		return false
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
			return false
		}
	}

	return true
}
