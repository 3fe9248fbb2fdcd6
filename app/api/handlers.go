package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"newshub/app/database"
	"newshub/app/news"
)

type LanguageDetector interface {
	Run(text string) (string, float64)
}

type Handler struct {
	articleRepo database.ArticleRepository
	sourceRepo  database.SourceRepository
	detector    LanguageDetector
	version     string
}

func NewHandler(articleRepo database.ArticleRepository, sourceRepo database.SourceRepository,
	detector LanguageDetector, version string) *Handler {
	return &Handler{
		articleRepo: articleRepo,
		sourceRepo:  sourceRepo,
		detector:    detector,
		version:     version,
	}
}

// GetNews lists stored articles filtered by the query parameters and
// paginated into fixed-size pages.
func (h *Handler) GetNews(c *gin.Context) {
	var query NewsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	fieldErrors := map[string][]string{}

	if query.Category != "" && !news.IsValidCategory(query.Category) {
		fieldErrors["category"] = append(fieldErrors["category"],
			"Invalid category. Valid options: "+strings.Join(news.Categories, ", "))
	}
	if query.UserLanguage != "" && !news.IsValidLanguage(query.UserLanguage) {
		fieldErrors["user_language"] = append(fieldErrors["user_language"], "Invalid language code.")
	}
	if query.UserCountryCode != "" && !news.IsValidCountry(query.UserCountryCode) {
		fieldErrors["user_country_code"] = append(fieldErrors["user_country_code"], "Invalid country code.")
	}

	var dateFrom, dateTo *time.Time
	if query.DateFrom != "" {
		parsed, err := time.Parse(time.RFC3339, query.DateFrom)
		if err != nil {
			fieldErrors["date_from"] = append(fieldErrors["date_from"], "Invalid datetime, expected RFC 3339.")
		} else {
			dateFrom = &parsed
		}
	}
	if query.DateTo != "" {
		parsed, err := time.Parse(time.RFC3339, query.DateTo)
		if err != nil {
			fieldErrors["date_to"] = append(fieldErrors["date_to"], "Invalid datetime, expected RFC 3339.")
		} else {
			dateTo = &parsed
		}
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	page := query.Page
	if page == 0 {
		page = 1
	}

	filter := database.ArticleFilter{
		Search:   strings.TrimSpace(query.Search),
		Category: query.Category,
		Source:   query.Source,
		Author:   query.Author,
		Language: query.UserLanguage,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		SortBy:   query.SortBy,
		Page:     page,
	}

	if filter.Search != "" {
		// Failed detection leaves SearchLanguage empty so the language
		// stage is skipped rather than guessed.
		filter.SearchLanguage, _ = h.detector.Run(filter.Search)
		filter.KeywordPhrases = news.DeriveKeywordPhrases(filter.Search)
	}

	if query.UserCountryCode != "" {
		names, err := h.sourceRepo.GetNamesByCountry(query.UserCountryCode)
		if err != nil {
			slog.Warn("Failed to resolve sources for country, skipping country filter",
				"country", query.UserCountryCode, "error", err)
		} else {
			filter.SourceNames = names
		}
	}

	articles, count, err := h.articleRepo.List(filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	results := make([]ArticleSummary, 0, len(articles))
	for _, article := range articles {
		results = append(results, newArticleSummary(article))
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Count:    count,
		Next:     pageURL(c, page+1, page*database.PageSize < count),
		Previous: pageURL(c, page-1, page > 1),
		Results:  results,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	} else {
		health["status"] = "degraded"
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	c.JSON(http.StatusOK, health)
}

// pageURL rebuilds the request URL with the page parameter swapped,
// preserving every other query parameter.
func pageURL(c *gin.Context, page int, exists bool) *string {
	if !exists {
		return nil
	}

	cloned := *c.Request.URL
	params := cloned.Query()
	if page <= 1 {
		params.Del("page")
	} else {
		params.Set("page", strconv.Itoa(page))
	}
	cloned.RawQuery = params.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + cloned.String()
	return &link
}

func bindingErrors(err error) map[string][]string {
	formNames := map[string]string{
		"Search":          "search",
		"Category":        "category",
		"Source":          "source",
		"Author":          "author",
		"UserLanguage":    "user_language",
		"UserCountryCode": "user_country_code",
		"DateFrom":        "date_from",
		"DateTo":          "date_to",
		"SortBy":          "sort_by",
		"Page":            "page",
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fieldErrors := map[string][]string{}
		for _, fieldError := range validationErrors {
			field := formNames[fieldError.Field()]
			if field == "" {
				field = fieldError.Field()
			}

			var message string
			switch fieldError.Tag() {
			case "max":
				message = "Ensure this field has no more than " + fieldError.Param() + " characters."
			case "oneof":
				message = "Invalid value. Valid options: " + strings.ReplaceAll(fieldError.Param(), " ", ", ") + "."
			case "min":
				message = "Ensure this value is greater than or equal to " + fieldError.Param() + "."
			default:
				message = "Invalid value."
			}
			fieldErrors[field] = append(fieldErrors[field], message)
		}
		return fieldErrors
	}

	return map[string][]string{"query": {"Invalid query parameters."}}
}
