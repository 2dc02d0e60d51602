package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack-app/fintrack_backend/internal/models"
	"github.com/fintrack-app/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for categories.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, user_id, name, kind, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Kind,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// execer is the subset of pgxpool.Pool and pgx.Tx the insert path needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PgxCategoryRepository) insertCategory(ctx context.Context, q execer, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := q.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.Kind,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return r.insertCategory(ctx, r.pool, category)
}

// SaveCategoryInTx inserts a new category inside an open transaction.
func (r *PgxCategoryRepository) SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	return r.insertCategory(ctx, tx, category)
}

// FindCategoryByID retrieves a category visible to the user: their own or a
// seeded shared default (empty user_id).
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND user_id IN ($2, '');
	`

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return cat, nil
}

// FindCategoryByName retrieves the user's own category with this exact name
// and kind. Shared defaults are not consulted.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string, kind domain.CategoryKind) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND name = $2 AND kind = $3;
	`

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, userID, name, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %q for user %s: %w", name, userID, err)
	}
	return cat, nil
}

// FindFirstCategoryByKind retrieves the oldest category visible to the user
// with the given kind. The user's own categories win over shared defaults.
func (r *PgxCategoryRepository) FindFirstCategoryByKind(ctx context.Context, userID string, kind domain.CategoryKind) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id IN ($1, '') AND kind = $2
		ORDER BY (user_id = '') ASC, created_at ASC
		LIMIT 1;
	`

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, userID, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s category for user %s: %w", kind, userID, err)
	}
	return cat, nil
}

// ListCategories retrieves the user's categories plus the shared defaults.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id IN ($1, '')
		ORDER BY kind, name;
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var m models.Category
		err := rows.Scan(
			&m.CategoryID,
			&m.UserID,
			&m.Name,
			&m.Kind,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row for user %s: %w", userID, err)
		}
		cats = append(cats, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainCategorySlice(cats), nil
}

// UpdateCategory renames a user-owned category. Shared defaults cannot be
// edited.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $3, last_updated_at = $4, last_updated_by = $5
		WHERE category_id = $1 AND user_id = $2;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a user-owned category. Shared defaults cannot be
// deleted. A foreign key violation means transactions still reference it.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	query := `DELETE FROM categories WHERE category_id = $1 AND user_id = $2;`

	cmdTag, err := r.pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Foreign key violation
			return fmt.Errorf("%w: category %s is still referenced by transactions", apperrors.ErrInvalidState, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SeedDefaults inserts the shared default categories, skipping any that
// already exist. Run once at startup.
func (r *PgxCategoryRepository) SeedDefaults(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, name, kind) DO NOTHING;
	`

	batch := &pgx.Batch{}
	for _, category := range categories {
		m := mapping.ToModelCategory(category)
		batch.Queue(query,
			m.CategoryID,
			m.UserID,
			m.Name,
			m.Kind,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to seed category %q: %w", categories[i].Name, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close category seed batch: %w", err)
	}
	return batchErr
}
