package repositories

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepository persists expense rows. Soft-deleted rows are invisible to
// the read methods.
type ExpenseRepository interface {
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByUser retrieves a page of non-deleted expenses using
	// token-based pagination, newest transaction date first.
	ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// IncomeRepository persists income rows with the same soft-delete semantics.
type IncomeRepository interface {
	SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error
	UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error
	SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, incomeID string, userID string, now time.Time) error
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Income, *string, error)
}

// TransactionRepositoryFacade combines the expense and income repositories.
type TransactionRepositoryFacade interface {
	ExpenseRepository
	IncomeRepository
}
