package database

import (
	"fmt"

	"github.com/lib/pq"
)

type sourceRepository struct {
	db *DB
}

func NewSourceRepository(db *DB) SourceRepository {
	return &sourceRepository{db: db}
}

// GetNamesByCountry returns the names of all sources registered for a
// country code (case-insensitive).
func (r *sourceRepository) GetNamesByCountry(country string) ([]string, error) {
	var names []string
	err := r.db.Select(&names, `
		SELECT name FROM sources
		WHERE country ILIKE $1
		ORDER BY name
	`, country)
	if err != nil {
		return nil, fmt.Errorf("failed to get source names by country: %w", err)
	}
	return names, nil
}

// UpsertSources inserts new sources and updates existing ones (matched
// by name) whose fields changed. Returns created and updated counts.
func (r *sourceRepository) UpsertSources(sources []Source) (int, int, error) {
	if len(sources) == 0 {
		return 0, 0, nil
	}

	names := make([]string, len(sources))
	for i, source := range sources {
		names[i] = source.Name
	}

	var existing []string
	err := r.db.Select(&existing, `SELECT name FROM sources WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to check existing sources: %w", err)
	}

	existingSet := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}

	created := 0
	updated := 0
	for _, source := range sources {
		if _, ok := existingSet[source.Name]; !ok {
			result, err := r.db.Exec(`
				INSERT INTO sources (name, url, category, language, country)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (name) DO NOTHING
			`, source.Name, source.URL, source.Category, source.Language, source.Country)
			if err != nil {
				return created, updated, fmt.Errorf("failed to insert source %q: %w", source.Name, err)
			}
			if rows, err := result.RowsAffected(); err == nil && rows > 0 {
				created++
			}
			continue
		}

		result, err := r.db.Exec(`
			UPDATE sources
			SET url = $2, category = $3, language = $4, country = $5
			WHERE name = $1
			  AND (url, category, language, country) IS DISTINCT FROM ($2, $3, $4, $5)
		`, source.Name, source.URL, source.Category, source.Language, source.Country)
		if err != nil {
			return created, updated, fmt.Errorf("failed to update source %q: %w", source.Name, err)
		}
		if rows, err := result.RowsAffected(); err == nil && rows > 0 {
			updated++
		}
	}

	return created, updated, nil
}

// GetSourceCount returns the total number of stored sources.
func (r *sourceRepository) GetSourceCount() (int, error) {
	var count int
	if err := r.db.Get(&count, "SELECT COUNT(*) FROM sources"); err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}
