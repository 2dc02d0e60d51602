package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/jackc/pgx/v5"
)

// TransactionSvcFacade is the expense/income engine. Every mutation keeps the
// owning account's balance and the ledger journal consistent inside one
// database transaction; edits follow revert-then-reapply.
type TransactionSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error)
	UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID string, expenseID string) error

	CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	GetIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListIncomesResponse, error)
	UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID string, incomeID string) error

	// CreateIncomeInTx runs the income creation path inside an already open
	// transaction. The withdrawal processor reuses it so a withdrawal's
	// income, ledger entry, balance effect and investment update commit as
	// one unit.
	CreateIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)

	// ListAccountEntries lists the ledger entries behind an account's
	// balance, newest first. Read-only traceability; balances are stored,
	// never derived from this.
	ListAccountEntries(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.LedgerEntry, error)
}
