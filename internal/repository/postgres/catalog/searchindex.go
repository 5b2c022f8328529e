package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	catalogRepo "socarchive/internal/domain/repositories/catalog"
	"socarchive/internal/repository/postgres"
)

// PostgresSearchIndex implements the SearchIndex contract on top of
// Postgres full-text search. Indexed text lives in work_search_index with
// a generated tsvector column; scoring uses ts_rank. The 'simple' text
// search configuration is used throughout because the catalog text is
// Czech and English stemming would mangle it.
type PostgresSearchIndex struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSearchIndex creates a Postgres-backed search index.
func NewSearchIndex(config *postgres.RepositoryConfig) catalogRepo.SearchIndex {
	return &PostgresSearchIndex{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Index stores or replaces the searchable text for a work. Re-indexing an
// already-indexed work replaces its entry.
func (s *PostgresSearchIndex) Index(ctx context.Context, workID string, doc catalogRepo.IndexDoc) error {
	body := strings.TrimSpace(strings.Join([]string{doc.Title, doc.Abstract, doc.School}, "\n"))

	_, err := s.pool.Exec(ctx, `
		INSERT INTO work_search_index (work_id, body)
		VALUES ($1, $2)
		ON CONFLICT (work_id) DO UPDATE SET body = EXCLUDED.body
	`, workID, body)
	if err != nil {
		return fmt.Errorf("index work %s: %w", workID, err)
	}

	return nil
}

// Search returns the works matching the query with ts_rank scores.
func (s *PostgresSearchIndex) Search(ctx context.Context, query string) ([]catalogRepo.Match, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT work_id, ts_rank(tsv, plainto_tsquery('simple', $1))
		FROM work_search_index
		WHERE tsv @@ plainto_tsquery('simple', $1)
	`, query)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var matches []catalogRepo.Match
	for rows.Next() {
		var m catalogRepo.Match
		var score float32
		if err := rows.Scan(&m.WorkID, &score); err != nil {
			return nil, fmt.Errorf("scan search match: %w", err)
		}
		m.Score = float64(score)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search matches: %w", err)
	}

	return matches, nil
}

// Delete removes a work's index entry. Absent entries are a no-op.
func (s *PostgresSearchIndex) Delete(ctx context.Context, workID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM work_search_index WHERE work_id = $1`, workID)
	if err != nil {
		return fmt.Errorf("delete index entry %s: %w", workID, err)
	}

	return nil
}
