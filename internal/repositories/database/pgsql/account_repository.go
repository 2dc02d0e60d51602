package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack-app/fintrack_backend/internal/models"
	"github.com/fintrack-app/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountWithDetailsColumns = `
	a.account_id, a.user_id, a.name, a.account_kind, a.currency_code, a.balance, a.notes, a.is_active,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	d.credit_limit, d.available_credit, d.loan_amount, d.loan_balance, d.interest_rate, d.loan_start_date, d.loan_term_months
`

// scanAccountWithDetails scans one joined account row. The details columns
// come from a LEFT JOIN and are null for kinds without a details row.
func scanAccountWithDetails(row pgx.Row) (*domain.Account, error) {
	var modelAcc models.Account
	var creditLimit, availableCredit, loanAmount, loanBalance, interestRate sql.Null[decimal.Decimal]
	var loanStartDate sql.NullTime
	var loanTermMonths sql.NullInt32

	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.UserID,
		&modelAcc.Name,
		&modelAcc.Kind,
		&modelAcc.CurrencyCode,
		&modelAcc.Balance,
		&modelAcc.Notes,
		&modelAcc.IsActive,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
		&creditLimit,
		&availableCredit,
		&loanAmount,
		&loanBalance,
		&interestRate,
		&loanStartDate,
		&loanTermMonths,
	)
	if err != nil {
		return nil, err
	}

	var details *models.AccountDetails
	if creditLimit.Valid || loanAmount.Valid {
		details = &models.AccountDetails{
			AccountID:       modelAcc.AccountID,
			CreditLimit:     creditLimit.V,
			AvailableCredit: availableCredit.V,
			LoanAmount:      loanAmount.V,
			LoanBalance:     loanBalance.V,
			InterestRate:    interestRate.V,
			LoanTermMonths:  int(loanTermMonths.Int32),
		}
		if loanStartDate.Valid {
			t := loanStartDate.Time
			details.LoanStartDate = &t
		}
	}

	domainAcc := mapping.ToDomainAccount(modelAcc, details)
	return &domainAcc, nil
}

// SaveAccount inserts a new account and, for kinds that carry one, its
// details row. Both inserts run in a single transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	accountQuery := `
		INSERT INTO accounts (account_id, user_id, name, account_kind, currency_code, balance, notes, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	detailsQuery := `
		INSERT INTO account_details (account_id, credit_limit, available_credit, loan_amount, loan_balance, interest_rate, loan_start_date, loan_term_months)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for account save: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, accountQuery,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.Kind,
		modelAcc.CurrencyCode,
		modelAcc.Balance,
		modelAcc.Notes,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}

	if account.Details != nil {
		modelDetails := mapping.ToModelAccountDetails(*account.Details)
		_, err = tx.Exec(ctx, detailsQuery,
			modelAcc.AccountID,
			modelDetails.CreditLimit,
			modelDetails.AvailableCredit,
			modelDetails.LoanAmount,
			modelDetails.LoanBalance,
			modelDetails.InterestRate,
			modelDetails.LoanStartDate,
			modelDetails.LoanTermMonths,
		)
		if err != nil {
			return fmt.Errorf("failed to save account details for %s: %w", modelAcc.AccountID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account save for %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account with its optional details row.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountWithDetailsColumns + `
		FROM accounts a
		LEFT JOIN account_details d ON d.account_id = a.account_id
		WHERE a.account_id = $1;
	`

	acc, err := scanAccountWithDetails(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// ListAccounts retrieves a paginated list of active accounts for a user.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountWithDetailsColumns + `
		FROM accounts a
		LEFT JOIN account_details d ON d.account_id = a.account_id
		WHERE a.is_active = TRUE AND a.user_id = $1
		ORDER BY a.name
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccountWithDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, *acc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, rows.Err())
	}

	return accounts, nil
}

// UpdateAccount updates the mutable account fields. Balance columns are never
// written here; those go through ApplyBalanceChangesInTx only.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, notes = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Notes,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", modelAcc.AccountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	` // Only update if it was active

	cmdTag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account doesn't exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		// Exists but already inactive.
		return apperrors.ErrValidation
	}

	return nil
}

// FindAccountByIDForUpdate retrieves an account with its details row and
// locks both rows for the duration of the transaction. Concurrent mutations
// against the same account serialize on this lock.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountWithDetailsColumns + `
		FROM accounts a
		LEFT JOIN account_details d ON d.account_id = a.account_id
		WHERE a.account_id = $1
		FOR UPDATE OF a;
	`

	acc, err := scanAccountWithDetails(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return acc, nil
}

// ApplyBalanceChangesInTx applies signed deltas to the balance fields the
// changes target, within an already open transaction. The balance field lives
// on accounts; available_credit and loan_balance live on account_details.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.BalanceChange, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil // Nothing to update
	}

	balanceQuery := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	availableCreditQuery := `
		UPDATE account_details
		SET available_credit = COALESCE(available_credit, 0) + $2
		WHERE account_id = $1;
	`
	loanBalanceQuery := `
		UPDATE account_details
		SET loan_balance = COALESCE(loan_balance, 0) + $2
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	queued := make([]domain.BalanceChange, 0, len(changes))
	for _, change := range changes {
		if change.IsZero() {
			continue
		}
		switch change.Field {
		case domain.FieldBalance:
			batch.Queue(balanceQuery, change.AccountID, change.Delta, now, userID)
		case domain.FieldAvailableCredit:
			batch.Queue(availableCreditQuery, change.AccountID, change.Delta)
		case domain.FieldLoanBalance:
			batch.Queue(loanBalanceQuery, change.AccountID, change.Delta)
		default:
			return fmt.Errorf("%w: unknown balance field %q", apperrors.ErrValidation, change.Field)
		}
		queued = append(queued, change)
	}

	if batch.Len() == 0 {
		return nil // No non-zero changes
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	updatedCount := 0
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to apply %s change for account %s: %w", queued[i].Field, queued[i].AccountID, err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during %s update", apperrors.ErrNotFound, queued[i].AccountID, queued[i].Field)
			}
		} else {
			updatedCount++
		}
	}

	err := br.Close()
	if err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	if batchErr != nil {
		return batchErr
	}

	if updatedCount != batch.Len() {
		slog.WarnContext(ctx, "Mismatch between expected and actual balance updates", "expected", batch.Len(), "actual", updatedCount)
	}

	return nil
}
