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

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// AppendEntryInTx inserts one ledger entry inside an open transaction.
func (r *PgxLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	if !entry.HasValidProvenance() {
		return fmt.Errorf("%w: ledger entry %s must reference exactly one transaction", apperrors.ErrValidation, entry.EntryID)
	}

	modelEntry := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (entry_id, account_id, amount, expense_id, income_id, investment_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.AccountID,
		modelEntry.Amount,
		modelEntry.ExpenseID,
		modelEntry.IncomeID,
		modelEntry.InvestmentID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, modelEntry.EntryID)
		}
		return fmt.Errorf("failed to append ledger entry %s: %w", modelEntry.EntryID, err)
	}
	return nil
}

// DeleteEntriesByExpenseIDInTx retires the entries recorded for an expense.
// Zero rows affected is not an error: reverted transactions have no entries.
func (r *PgxLedgerRepository) DeleteEntriesByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	query := `DELETE FROM ledger_entries WHERE expense_id = $1;`
	if _, err := tx.Exec(ctx, query, expenseID); err != nil {
		return fmt.Errorf("failed to delete ledger entries for expense %s: %w", expenseID, err)
	}
	return nil
}

// DeleteEntriesByIncomeIDInTx retires the entries recorded for an income.
func (r *PgxLedgerRepository) DeleteEntriesByIncomeIDInTx(ctx context.Context, tx pgx.Tx, incomeID string) error {
	query := `DELETE FROM ledger_entries WHERE income_id = $1;`
	if _, err := tx.Exec(ctx, query, incomeID); err != nil {
		return fmt.Errorf("failed to delete ledger entries for income %s: %w", incomeID, err)
	}
	return nil
}

// DeleteEntriesByInvestmentIDInTx retires the entries recorded for an investment.
func (r *PgxLedgerRepository) DeleteEntriesByInvestmentIDInTx(ctx context.Context, tx pgx.Tx, investmentID string) error {
	query := `DELETE FROM ledger_entries WHERE investment_id = $1;`
	if _, err := tx.Exec(ctx, query, investmentID); err != nil {
		return fmt.Errorf("failed to delete ledger entries for investment %s: %w", investmentID, err)
	}
	return nil
}

// FindEntriesByAccountID lists entries for an account, newest first.
func (r *PgxLedgerRepository) FindEntriesByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT entry_id, account_id, amount, expense_id, income_id, investment_id, created_at, created_by
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.AccountID,
			&m.Amount,
			&m.ExpenseID,
			&m.IncomeID,
			&m.InvestmentID,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row for account %s: %w", accountID, err)
		}
		entries = append(entries, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows for account %s: %w", accountID, rows.Err())
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
