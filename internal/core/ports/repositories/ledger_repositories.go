package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerWriter appends and retires ledger entries. All writes happen inside
// the same transaction as the balance mutation they describe; a delete-by-
// provenance always runs before the corresponding re-application so no reader
// can observe an entry without its matching balance effect.
type LedgerWriter interface {
	// AppendEntryInTx inserts one ledger entry.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// DeleteEntriesByExpenseIDInTx retires the entries recorded for an expense.
	DeleteEntriesByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) error

	// DeleteEntriesByIncomeIDInTx retires the entries recorded for an income.
	DeleteEntriesByIncomeIDInTx(ctx context.Context, tx pgx.Tx, incomeID string) error

	// DeleteEntriesByInvestmentIDInTx retires the entries recorded for an investment.
	DeleteEntriesByInvestmentIDInTx(ctx context.Context, tx pgx.Tx, investmentID string) error
}

// LedgerReader provides traceability reads. Ledger entries are never used to
// derive balances.
type LedgerReader interface {
	// FindEntriesByAccountID lists entries for an account, newest first.
	FindEntriesByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines the ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
