package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client talks to the newsapi.org REST API. Transient failures are not
// retried here; the ingestion tasks own the retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

func NewClient(apiKey, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
	}
}

// GetTopHeadlines fetches one page of headlines for a country/category.
func (c *Client) GetTopHeadlines(ctx context.Context, country, category string, pageSize int) ([]Article, error) {
	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}
	if category != "" {
		params.Set("category", category)
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}

	var response headlinesResponse
	if err := c.get(ctx, "/top-headlines", params, &response); err != nil {
		return nil, err
	}
	return response.Articles, nil
}

// GetSources fetches the provider's source listings, dropping entries
// with any empty field since those lack the metadata the country filter
// relies on.
func (c *Client) GetSources(ctx context.Context, category, language, country string) ([]Source, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if language != "" {
		params.Set("language", language)
	}
	if country != "" {
		params.Set("country", country)
	}

	var response sourcesResponse
	if err := c.get(ctx, "/top-headlines/sources", params, &response); err != nil {
		return nil, err
	}

	complete := make([]Source, 0, len(response.Sources))
	for _, source := range response.Sources {
		if source.ID == "" || source.Name == "" || source.Description == "" ||
			source.URL == "" || source.Category == "" || source.Language == "" || source.Country == "" {
			continue
		}
		complete = append(complete, source)
	}
	return complete, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	var status struct {
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	decoder := json.NewDecoder(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if err := decoder.Decode(&status); err == nil && status.Message != "" {
			return fmt.Errorf("provider error %d (%s): %s", resp.StatusCode, status.Code, status.Message)
		}
		return fmt.Errorf("provider error: HTTP %d", resp.StatusCode)
	}

	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
