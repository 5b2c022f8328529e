package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	catalogRepo "socarchive/internal/domain/repositories/catalog"
	"socarchive/internal/repository/postgres"
)

// workColumns is the column list for all work SELECTs, one place for all
// of them.
const workColumns = `id, title, abstract, discipline, year, school, region,
	category_id, author, supervisor, status, artifact_key,
	created_at, updated_at, approved_at, redacted_at`

// PostgresWorkRepository implements the WorkRepository interface
type PostgresWorkRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewWorkRepository creates a new work repository
func NewWorkRepository(config *postgres.RepositoryConfig) catalogRepo.WorkRepository {
	return &PostgresWorkRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create persists a new work atomically
func (r *PostgresWorkRepository) Create(ctx context.Context, w *models.Work) error {
	query := fmt.Sprintf(`
		INSERT INTO works (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, workColumns)

	_, err := r.pool.Exec(ctx, query,
		w.ID,
		w.Title,
		w.Abstract,
		w.Discipline,
		w.Year,
		w.School,
		w.Region,
		w.CategoryID,
		w.Author,
		w.Supervisor,
		w.Status,
		w.ArtifactKey,
		w.CreatedAt,
		w.UpdatedAt,
		w.ApprovedAt,
		w.RedactedAt,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return &domain.ValidationError{Message: fmt.Sprintf("category %q does not exist", w.CategoryID)}
		}
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("work %q already exists", w.ID),
				ResourceType: "work",
				ResourceID:   w.ID,
			}
		}
		return fmt.Errorf("create work: %w", err)
	}

	return nil
}

// GetByID retrieves a work by ID
func (r *PostgresWorkRepository) GetByID(ctx context.Context, id string) (*models.Work, error) {
	query := fmt.Sprintf(`SELECT %s FROM works WHERE id = $1`, workColumns)

	w, err := scanWork(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %q not found", id)}
		}
		return nil, fmt.Errorf("get work: %w", err)
	}

	return w, nil
}

// Filter returns all works matching the structural predicate.
func (r *PostgresWorkRepository) Filter(ctx context.Context, f catalogRepo.StructuralFilter) ([]models.Work, error) {
	query := fmt.Sprintf(`SELECT %s FROM works`, workColumns)

	var conditions []string
	var args []interface{}

	addSet := func(column string, values interface{}, empty bool) {
		if empty {
			return
		}
		args = append(args, values)
		conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", column, len(args)))
	}

	addSet("discipline", disciplineStrings(f.Disciplines), f.Disciplines == nil)
	addSet("year", f.Years, f.Years == nil)
	addSet("school", f.Schools, f.Schools == nil)
	addSet("region", regionStrings(f.Regions), f.Regions == nil)
	addSet("category_id", f.CategoryIDs, f.CategoryIDs == nil)
	addSet("status", statusStrings(f.Statuses), f.Statuses == nil)

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter works: %w", err)
	}
	defer rows.Close()

	return collectWorks(rows)
}

// UpdateIfStatus applies mutate under a row lock, only when the current
// status matches expected. This is the per-record exclusive-update
// guarantee every lifecycle transition goes through.
func (r *PostgresWorkRepository) UpdateIfStatus(ctx context.Context, id string, expected models.WorkStatus, mutate func(w *models.Work) error) (*models.Work, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM works WHERE id = $1 FOR UPDATE`, workColumns)

	w, err := scanWork(tx.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("work %q not found", id)}
		}
		return nil, fmt.Errorf("lock work: %w", err)
	}

	if w.Status != expected {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("work %q is %s, expected %s", id, w.Status, expected),
			ResourceType: "work",
			ResourceID:   id,
		}
	}

	if err := mutate(w); err != nil {
		return nil, err
	}
	w.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx, `
		UPDATE works
		SET title = $2, abstract = $3, discipline = $4, year = $5,
		    school = $6, region = $7, category_id = $8, author = $9,
		    supervisor = $10, status = $11, artifact_key = $12,
		    updated_at = $13, approved_at = $14, redacted_at = $15
		WHERE id = $1
	`,
		w.ID, w.Title, w.Abstract, w.Discipline, w.Year,
		w.School, w.Region, w.CategoryID, w.Author,
		w.Supervisor, w.Status, w.ArtifactKey,
		w.UpdatedAt, w.ApprovedAt, w.RedactedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update work: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit work update: %w", err)
	}

	return w, nil
}

// ListAll returns every work in the catalog.
func (r *PostgresWorkRepository) ListAll(ctx context.Context) ([]models.Work, error) {
	query := fmt.Sprintf(`SELECT %s FROM works ORDER BY created_at`, workColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()

	return collectWorks(rows)
}

// Stats aggregates catalog counts.
func (r *PostgresWorkRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	stats := &models.CatalogStats{
		ByYear:       make(map[int]int),
		ByDiscipline: make(map[models.Discipline]int),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE status = $1)
		FROM works
	`, models.StatusApproved).Scan(&stats.TotalWorks, &stats.ApprovedWorks)
	if err != nil {
		return nil, fmt.Errorf("count works: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT year, count(*) FROM works GROUP BY year`)
	if err != nil {
		return nil, fmt.Errorf("count works by year: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var year, count int
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("scan year count: %w", err)
		}
		stats.ByYear[year] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year counts: %w", err)
	}

	drows, err := r.pool.Query(ctx, `SELECT discipline, count(*) FROM works GROUP BY discipline`)
	if err != nil {
		return nil, fmt.Errorf("count works by discipline: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var discipline models.Discipline
		var count int
		if err := drows.Scan(&discipline, &count); err != nil {
			return nil, fmt.Errorf("scan discipline count: %w", err)
		}
		stats.ByDiscipline[discipline] = count
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discipline counts: %w", err)
	}

	return stats, nil
}

// scanWork reads one work row.
func scanWork(row pgx.Row) (*models.Work, error) {
	var w models.Work
	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Abstract,
		&w.Discipline,
		&w.Year,
		&w.School,
		&w.Region,
		&w.CategoryID,
		&w.Author,
		&w.Supervisor,
		&w.Status,
		&w.ArtifactKey,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.ApprovedAt,
		&w.RedactedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// collectWorks reads all rows from a work query.
func collectWorks(rows pgx.Rows) ([]models.Work, error) {
	var works []models.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work: %w", err)
		}
		works = append(works, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate works: %w", err)
	}
	return works, nil
}

// pgx encodes []string to text[]; the enum slices need converting first.
func disciplineStrings(ds []models.Discipline) []string {
	if ds == nil {
		return nil
	}
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = string(d)
	}
	return out
}

func regionStrings(rs []models.Region) []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func statusStrings(ss []models.WorkStatus) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}
