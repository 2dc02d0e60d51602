package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/jackc/pgx/v5"
)

// CategorySvcFacade manages expense/income categories: per-user rows layered
// over read-only defaults seeded at startup.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error

	// SeedDefaults installs the shared default categories. Idempotent;
	// invoked once from main at startup.
	SeedDefaults(ctx context.Context) error

	// ResolveInvestmentIncomeCategoryInTx finds the category a withdrawal
	// lands under: exact "Investment" income category, else any income
	// category of the user, else a lazily created one. The fallback order is
	// part of the withdrawal contract.
	ResolveInvestmentIncomeCategoryInTx(ctx context.Context, tx pgx.Tx, userID string) (*domain.Category, error)
}
