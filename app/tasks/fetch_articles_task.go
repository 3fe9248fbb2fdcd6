package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newshub/app/database"
	"newshub/app/news"
	"newshub/app/provider"
)

const detectionSampleLength = 100

type HeadlinesClient interface {
	GetTopHeadlines(ctx context.Context, country, category string, pageSize int) ([]provider.Article, error)
}

type KeywordExtractor interface {
	Run(text string) []news.Keyword
}

type LanguageDetector interface {
	Run(text string) (string, float64)
}

// FetchArticlesTask pulls one page of headlines for a category, enriches
// each article with keywords and a detected language, and inserts the
// ones not already stored.
type FetchArticlesTask struct {
	Task
	client      HeadlinesClient
	articleRepo database.ArticleRepository
	extractor   KeywordExtractor
	detector    LanguageDetector
	country     string
	pageSize    int
}

func NewFetchArticlesTask(client HeadlinesClient, articleRepo database.ArticleRepository,
	extractor KeywordExtractor, detector LanguageDetector,
	category, country string, pageSize int) *FetchArticlesTask {
	return &FetchArticlesTask{
		Task:        NewTask(TaskTypeFetchArticles, category),
		client:      client,
		articleRepo: articleRepo,
		extractor:   extractor,
		detector:    detector,
		country:     country,
		pageSize:    pageSize,
	}
}

func (t *FetchArticlesTask) Execute(ctx context.Context) error {
	raw, err := t.client.GetTopHeadlines(ctx, t.country, t.Category, t.pageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch headlines for %s: %w", t.Category, err)
	}

	normalized := provider.NormalizeArticles(raw)
	if len(normalized) == 0 {
		slog.Info("No articles to store", "category", t.Category, "received", len(raw))
		return nil
	}

	articles := make([]database.Article, 0, len(normalized))
	for _, item := range normalized {
		articles = append(articles, t.enrich(item))
	}

	created, err := t.articleRepo.InsertNew(articles)
	if err != nil {
		return fmt.Errorf("failed to store articles for %s: %w", t.Category, err)
	}

	slog.Info("Articles fetched",
		"category", t.Category, "received", len(raw), "enriched", len(articles), "created", created)
	return nil
}

func (t *FetchArticlesTask) enrich(item provider.NormalizedArticle) database.Article {
	combined := strings.Join([]string{item.Title, item.Description, item.Content}, " ")

	keywords := t.extractor.Run(combined)
	if len(keywords) == 0 {
		slog.Warn("No extractable keywords, storing article without them", "url", item.URL)
	}

	sample := []rune(combined)
	if len(sample) > detectionSampleLength {
		sample = sample[:detectionSampleLength]
	}
	language, _ := t.detector.Run(string(sample))
	if language == "" {
		language = news.DefaultLanguage
	}

	article := database.Article{
		Title:         item.Title,
		Content:       item.Content,
		Description:   item.Description,
		URL:           item.URL,
		Category:      t.Category,
		Source:        item.Source,
		PublishedDate: item.PublishedDate,
		FetchedDate:   time.Now().UTC(),
		Keywords:      keywords,
		Language:      language,
	}
	if item.Author != "" {
		author := item.Author
		article.Author = &author
	}
	if item.URLToImage != "" {
		urlToImage := item.URLToImage
		article.URLToImage = &urlToImage
	}

	return article
}
