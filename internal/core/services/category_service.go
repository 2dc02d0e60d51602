package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// investmentIncomeCategoryName is the income category withdrawals land under.
const investmentIncomeCategoryName = "Investment"

var defaultCategorySeeds = []struct {
	Name string
	Kind domain.CategoryKind
}{
	{"Food", domain.ExpenseCategory},
	{"Transport", domain.ExpenseCategory},
	{"Housing", domain.ExpenseCategory},
	{"Utilities", domain.ExpenseCategory},
	{"Entertainment", domain.ExpenseCategory},
	{"Health", domain.ExpenseCategory},
	{"Shopping", domain.ExpenseCategory},
	{"Other", domain.ExpenseCategory},
	{"Salary", domain.IncomeCategory},
	{investmentIncomeCategoryName, domain.IncomeCategory},
	{"Interest", domain.IncomeCategory},
	{"Gift", domain.IncomeCategory},
	{"Other", domain.IncomeCategory},
}

// categoryService manages per-user categories layered over read-only shared
// defaults.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// SeedDefaults installs the shared default categories. Idempotent: rows that
// already exist are skipped.
func (s *categoryService) SeedDefaults(ctx context.Context) error {
	now := time.Now().UTC()
	categories := make([]domain.Category, len(defaultCategorySeeds))
	for i, seed := range defaultCategorySeeds {
		categories[i] = domain.Category{
			CategoryID:  uuid.NewString(),
			UserID:      "", // shared default
			Name:        seed.Name,
			Kind:        seed.Kind,
			AuditFields: newAuditFields("system", now),
		}
	}
	return s.categoryRepo.SeedDefaults(ctx, categories)
}

// CreateCategory creates a user-owned category.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Kind:        req.Kind,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to create category", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// ListCategories retrieves the user's categories plus the shared defaults.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, userID)
}

// UpdateCategory renames a user-owned category. Shared defaults are read-only.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if category.IsDefault() {
		return nil, fmt.Errorf("%w: default categories cannot be edited", apperrors.ErrForbidden)
	}

	updated := *category
	if req.Name != nil {
		updated.Name = *req.Name
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, updated); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return &updated, nil
}

// DeleteCategory removes a user-owned category. Shared defaults are
// read-only, and a category still referenced by transactions cannot go.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return fmt.Errorf("%w: default categories cannot be deleted", apperrors.ErrForbidden)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID, userID); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

// ResolveInvestmentIncomeCategoryInTx finds the income category a withdrawal
// lands under: the user's own "Investment" income category, else any income
// category visible to them (defaults included), else one created on the spot.
// The fallback order is part of the withdrawal contract.
func (s *categoryService) ResolveInvestmentIncomeCategoryInTx(ctx context.Context, tx pgx.Tx, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByName(ctx, userID, investmentIncomeCategoryName, domain.IncomeCategory)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category, err = s.categoryRepo.FindFirstCategoryByKind(ctx, userID, domain.IncomeCategory)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        investmentIncomeCategoryName,
		Kind:        domain.IncomeCategory,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.categoryRepo.SaveCategoryInTx(ctx, tx, created); err != nil {
		return nil, err
	}
	return &created, nil
}
