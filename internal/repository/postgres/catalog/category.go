package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"socarchive/internal/domain"
	models "socarchive/internal/domain/models/catalog"
	catalogRepo "socarchive/internal/domain/repositories/catalog"
	"socarchive/internal/repository/postgres"
)

const categoryColumns = `id, name, description, parent_id, active, created_at`

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *postgres.RepositoryConfig) catalogRepo.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create persists a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO categories (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, categoryColumns)

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.ParentID, c.Active, c.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return &domain.ValidationError{Message: "parent category does not exist"}
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	var c models.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.ParentID, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("category %q not found", id)}
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &c, nil
}

// List returns categories, optionally including inactive ones
func (r *PostgresCategoryRepository) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories`, categoryColumns)
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// MarkInactive flags a category as inactive
func (r *PostgresCategoryRepository) MarkInactive(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("category %q not found", id)}
	}

	return nil
}
