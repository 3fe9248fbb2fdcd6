package database

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// PageSize is the fixed number of articles per listing page.
const PageSize = 50

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"id", "title", "content", "description", "url", "category", "source",
	"author", "url_to_image", "published_date", "fetched_date", "keywords",
	"language", "is_featured", "is_archived",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type articleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

// List applies the filter stages in order, sorts, and returns one page
// of articles together with the total match count.
func (r *articleRepository) List(filter ArticleFilter) ([]Article, int, error) {
	conditions := buildArticleConditions(filter)

	countQuery := psql.Select("COUNT(*)").From("articles")
	for _, condition := range conditions {
		countQuery = countQuery.Where(condition)
	}

	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.Get(&total, sqlStr, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	listQuery := psql.Select(articleColumns...).From("articles")
	for _, condition := range conditions {
		listQuery = listQuery.Where(condition)
	}
	listQuery = applyArticleSort(listQuery, filter.SortBy)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	listQuery = listQuery.Limit(PageSize).Offset(uint64(page-1) * PageSize)

	sqlStr, args, err = listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	articles := []Article{}
	if err := r.db.Select(&articles, sqlStr, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, total, nil
}

// buildArticleConditions translates a filter into conjunctive SQL
// predicates, preserving the stage order of the pipeline. The detected
// search language supersedes the caller's preferred language: the two
// guards are mutually exclusive by construction.
func buildArticleConditions(filter ArticleFilter) []sq.Sqlizer {
	var conditions []sq.Sqlizer

	if filter.Language != "" && filter.Search == "" {
		conditions = append(conditions, sq.Expr("LOWER(language) = LOWER(?)", filter.Language))
	}

	if filter.Search != "" && filter.SearchLanguage != "" {
		conditions = append(conditions, sq.Expr("LOWER(language) = LOWER(?)", filter.SearchLanguage))
	}

	if len(filter.SourceNames) > 0 {
		lowered := make([]string, len(filter.SourceNames))
		for i, name := range filter.SourceNames {
			lowered[i] = strings.ToLower(name)
		}
		conditions = append(conditions, sq.Expr("LOWER(source) = ANY(?)", pq.Array(lowered)))
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		searchOr := sq.Or{
			sq.Expr("title ILIKE ?", pattern),
			sq.Expr("content ILIKE ?", pattern),
		}
		// Keyword matching is a substring scan of the serialized JSONB
		// column, not structured matching against individual entries.
		for _, phrase := range filter.KeywordPhrases {
			searchOr = append(searchOr, sq.Expr("keywords::text ILIKE ?", "%"+escapeLike(phrase)+"%"))
		}
		conditions = append(conditions, searchOr)
	}

	if filter.Category != "" {
		conditions = append(conditions, sq.Expr("LOWER(category) = LOWER(?)", filter.Category))
	}

	if filter.Source != "" {
		conditions = append(conditions, sq.Expr("LOWER(source) = LOWER(?)", filter.Source))
	}

	if filter.Author != "" {
		conditions = append(conditions, sq.Expr("author ILIKE ?", "%"+escapeLike(filter.Author)+"%"))
	}

	if filter.DateFrom != nil {
		conditions = append(conditions, sq.Expr("published_date >= ?", *filter.DateFrom))
	}

	if filter.DateTo != nil {
		conditions = append(conditions, sq.Expr("published_date <= ?", *filter.DateTo))
	}

	return conditions
}

// applyArticleSort orders by the requested field with id as a stable
// tie-break.
func applyArticleSort(query sq.SelectBuilder, sortBy string) sq.SelectBuilder {
	switch sortBy {
	case "oldest":
		return query.OrderBy("published_date ASC", "id ASC")
	case "title":
		return query.OrderBy("title ASC", "id ASC")
	default: // "recent"
		return query.OrderBy("published_date DESC", "id ASC")
	}
}

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// InsertNew stores articles whose (url, source) pair is not present yet
// and returns the number of rows actually inserted. Re-ingesting the
// same payload is a no-op.
func (r *articleRepository) InsertNew(articles []Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	// Dedupe within the batch before hitting the unique constraint.
	type urlSource struct {
		url    string
		source string
	}
	seen := make(map[urlSource]struct{}, len(articles))

	insert := psql.Insert("articles").Columns(
		"title", "content", "description", "url", "category", "source",
		"author", "url_to_image", "published_date", "keywords", "language",
	)

	rows := 0
	for _, article := range articles {
		key := urlSource{url: article.URL, source: article.Source}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		insert = insert.Values(
			article.Title, article.Content, article.Description, article.URL,
			article.Category, article.Source, article.Author, article.URLToImage,
			article.PublishedDate, article.Keywords, article.Language,
		)
		rows++
	}
	if rows == 0 {
		return 0, nil
	}

	insert = insert.Suffix("ON CONFLICT (url, source) DO NOTHING")

	sqlStr, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := r.db.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert articles: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted row count: %w", err)
	}

	return int(inserted), nil
}

// GetArticleCount returns the total number of stored articles.
func (r *articleRepository) GetArticleCount() (int, error) {
	var count int
	if err := r.db.Get(&count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}
