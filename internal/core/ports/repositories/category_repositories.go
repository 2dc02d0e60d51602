package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CategoryReader defines read operations for categories. Reads resolve
// against the user's categories layered over the seeded shared defaults.
type CategoryReader interface {
	// FindCategoryByID retrieves a category visible to the user (their own or
	// a seeded default).
	FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// FindCategoryByName retrieves the user's category with this exact name
	// and kind. Defaults are not consulted; the name search is user-scoped.
	FindCategoryByName(ctx context.Context, userID string, name string, kind domain.CategoryKind) (*domain.Category, error)

	// FindFirstCategoryByKind retrieves any category of the user with the
	// given kind, oldest first for stability.
	FindFirstCategoryByKind(ctx context.Context, userID string, kind domain.CategoryKind) (*domain.Category, error)

	// ListCategories retrieves the user's categories plus the shared defaults.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategoryInTx inserts a category inside an open transaction; used by
	// the withdrawal path to lazily create the income category it lands under.
	SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error

	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string, userID string) error

	// SeedDefaults inserts the shared default categories, skipping any that
	// already exist. Run once at startup.
	SeedDefaults(ctx context.Context, categories []domain.Category) error
}

// CategoryRepositoryFacade combines the category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
