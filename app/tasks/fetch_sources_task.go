package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"newshub/app/database"
	"newshub/app/provider"
)

type SourcesClient interface {
	GetSources(ctx context.Context, category, language, country string) ([]provider.Source, error)
}

// FetchSourcesTask refreshes the stored source catalog for a category.
type FetchSourcesTask struct {
	Task
	client     SourcesClient
	sourceRepo database.SourceRepository
	language   string
	country    string
}

func NewFetchSourcesTask(client SourcesClient, sourceRepo database.SourceRepository,
	category, language, country string) *FetchSourcesTask {
	return &FetchSourcesTask{
		Task:       NewTask(TaskTypeFetchSources, category),
		client:     client,
		sourceRepo: sourceRepo,
		language:   language,
		country:    country,
	}
}

func (t *FetchSourcesTask) Execute(ctx context.Context) error {
	raw, err := t.client.GetSources(ctx, t.Category, t.language, t.country)
	if err != nil {
		return fmt.Errorf("failed to fetch sources for %s: %w", t.Category, err)
	}

	if len(raw) == 0 {
		slog.Info("No sources returned", "category", t.Category)
		return nil
	}

	sources := make([]database.Source, 0, len(raw))
	for _, item := range raw {
		country := item.Country
		sources = append(sources, database.Source{
			Name:     item.Name,
			URL:      item.URL,
			Category: item.Category,
			Language: item.Language,
			Country:  &country,
		})
	}

	created, updated, err := t.sourceRepo.UpsertSources(sources)
	if err != nil {
		return fmt.Errorf("failed to store sources for %s: %w", t.Category, err)
	}

	slog.Info("Sources fetched",
		"category", t.Category, "received", len(raw), "created", created, "updated", updated)
	return nil
}
