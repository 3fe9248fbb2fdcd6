package database

import (
	"strings"
	"testing"
	"time"
)

func conditionsToSQL(t *testing.T, filter ArticleFilter) (string, []interface{}) {
	t.Helper()

	query := psql.Select("*").From("articles")
	for _, condition := range buildArticleConditions(filter) {
		query = query.Where(condition)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		t.Fatalf("Failed to build query: %v", err)
	}
	return sqlStr, args
}

func TestBuildArticleConditions_NoFilter(t *testing.T) {
	sqlStr, args := conditionsToSQL(t, ArticleFilter{})

	if strings.Contains(sqlStr, "WHERE") {
		t.Errorf("Expected no WHERE clause, got %q", sqlStr)
	}
	if len(args) != 0 {
		t.Errorf("Expected no arguments, got %v", args)
	}
}

func TestBuildArticleConditions_PreferredLanguageWithoutSearch(t *testing.T) {
	sqlStr, args := conditionsToSQL(t, ArticleFilter{Language: "DE"})

	if !strings.Contains(sqlStr, "LOWER(language) = LOWER($1)") {
		t.Errorf("Expected case-insensitive language predicate, got %q", sqlStr)
	}
	if len(args) != 1 || args[0] != "DE" {
		t.Errorf("Expected language argument, got %v", args)
	}
}

func TestBuildArticleConditions_SearchSupersedesPreferredLanguage(t *testing.T) {
	sqlStr, args := conditionsToSQL(t, ArticleFilter{
		Search:         "energy",
		SearchLanguage: "en",
		Language:       "de",
	})

	count := strings.Count(sqlStr, "LOWER(language) = LOWER(")
	if count != 1 {
		t.Errorf("Expected exactly one language predicate, got %d in %q", count, sqlStr)
	}
	if args[0] != "en" {
		t.Errorf("Expected detected search language to win, got %v", args[0])
	}
}

func TestBuildArticleConditions_SearchMatchesTitleContentOrKeywords(t *testing.T) {
	sqlStr, args := conditionsToSQL(t, ArticleFilter{
		Search:         "climate policy",
		SearchLanguage: "en",
		KeywordPhrases: []string{"climate policy", "climate", "policy"},
	})

	if !strings.Contains(sqlStr, "title ILIKE") {
		t.Errorf("Expected title predicate, got %q", sqlStr)
	}
	if !strings.Contains(sqlStr, "content ILIKE") {
		t.Errorf("Expected content predicate, got %q", sqlStr)
	}
	if got := strings.Count(sqlStr, "keywords::text ILIKE"); got != 3 {
		t.Errorf("Expected 3 keyword predicates, got %d in %q", got, sqlStr)
	}
	if !strings.Contains(sqlStr, " OR ") {
		t.Errorf("Expected search predicates joined by OR, got %q", sqlStr)
	}

	// language + title + content + 3 phrases
	if len(args) != 6 {
		t.Errorf("Expected 6 arguments, got %v", args)
	}
}

func TestBuildArticleConditions_SourceNamesLowered(t *testing.T) {
	sqlStr, args := conditionsToSQL(t, ArticleFilter{
		SourceNames: []string{"Example News", "Daily Report"},
	})

	if !strings.Contains(sqlStr, "LOWER(source) = ANY($1)") {
		t.Errorf("Expected source membership predicate, got %q", sqlStr)
	}
	if len(args) != 1 {
		t.Fatalf("Expected single array argument, got %v", args)
	}
}

func TestBuildArticleConditions_DateRange(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sqlStr, args := conditionsToSQL(t, ArticleFilter{DateFrom: &from, DateTo: &to})

	if !strings.Contains(sqlStr, "published_date >= $1") {
		t.Errorf("Expected lower bound predicate, got %q", sqlStr)
	}
	if !strings.Contains(sqlStr, "published_date <= $2") {
		t.Errorf("Expected upper bound predicate, got %q", sqlStr)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 arguments, got %v", args)
	}
}

func TestBuildArticleConditions_ExactFiltersAreCaseInsensitive(t *testing.T) {
	sqlStr, _ := conditionsToSQL(t, ArticleFilter{
		Category: "Business",
		Source:   "Example News",
		Author:   "jane",
	})

	if !strings.Contains(sqlStr, "LOWER(category) = LOWER($1)") {
		t.Errorf("Expected category predicate, got %q", sqlStr)
	}
	if !strings.Contains(sqlStr, "LOWER(source) = LOWER($2)") {
		t.Errorf("Expected source predicate, got %q", sqlStr)
	}
	if !strings.Contains(sqlStr, "author ILIKE $3") {
		t.Errorf("Expected author substring predicate, got %q", sqlStr)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.input); got != tt.expected {
			t.Errorf("escapeLike(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestApplyArticleSort(t *testing.T) {
	tests := []struct {
		sortBy   string
		expected string
	}{
		{"", "ORDER BY published_date DESC, id ASC"},
		{"recent", "ORDER BY published_date DESC, id ASC"},
		{"oldest", "ORDER BY published_date ASC, id ASC"},
		{"title", "ORDER BY title ASC, id ASC"},
	}

	for _, tt := range tests {
		query := applyArticleSort(psql.Select("*").From("articles"), tt.sortBy)
		sqlStr, _, err := query.ToSql()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}
		if !strings.Contains(sqlStr, tt.expected) {
			t.Errorf("sortBy=%q: expected %q in %q", tt.sortBy, tt.expected, sqlStr)
		}
	}
}

func TestBuildArticleConditions_StagesRemainConjunctive(t *testing.T) {
	// The search OR group is one stage; stages combine with AND.
	sqlStr, _ := conditionsToSQL(t, ArticleFilter{
		Search:         "energy",
		SearchLanguage: "en",
		Category:       "business",
	})

	if !strings.Contains(sqlStr, "AND") {
		t.Errorf("Expected conjunctive stages, got %q", sqlStr)
	}
}
