package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack-app/fintrack_backend/internal/models"
	"github.com/fintrack-app/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvestmentRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvestmentRepository creates a new repository for investments.
func newPgxInvestmentRepository(pool *pgxpool.Pool) portsrepo.InvestmentRepositoryFacade {
	return &PgxInvestmentRepository{pool: pool}
}

var _ portsrepo.InvestmentRepositoryFacade = (*PgxInvestmentRepository)(nil)

const investmentColumns = `
	investment_id, user_id, account_id, name, amount, is_sip, is_existing,
	sip_amount, sip_frequency, sip_start_date, sip_end_date, sip_day_of_month, sip_installments_completed, sip_total_installments,
	status, withdrawal_amount, deleted_at, created_at, created_by, last_updated_at, last_updated_by
`

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var m models.Investment
	err := row.Scan(
		&m.InvestmentID,
		&m.UserID,
		&m.AccountID,
		&m.Name,
		&m.Amount,
		&m.IsSIP,
		&m.IsExisting,
		&m.SIPAmount,
		&m.SIPFrequency,
		&m.SIPStartDate,
		&m.SIPEndDate,
		&m.SIPDayOfMonth,
		&m.SIPInstallmentsCompleted,
		&m.SIPTotalInstallments,
		&m.Status,
		&m.WithdrawalAmount,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainInvestment(m)
	return &d, nil
}

// SaveInvestmentInTx inserts a new investment row inside an open transaction.
func (r *PgxInvestmentRepository) SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)

	query := `
		INSERT INTO investments (` + investmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`

	_, err := tx.Exec(ctx, query,
		m.InvestmentID,
		m.UserID,
		m.AccountID,
		m.Name,
		m.Amount,
		m.IsSIP,
		m.IsExisting,
		m.SIPAmount,
		m.SIPFrequency,
		m.SIPStartDate,
		m.SIPEndDate,
		m.SIPDayOfMonth,
		m.SIPInstallmentsCompleted,
		m.SIPTotalInstallments,
		m.Status,
		m.WithdrawalAmount,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: investment with ID %s already exists", apperrors.ErrDuplicate, m.InvestmentID)
		}
		return fmt.Errorf("failed to save investment %s: %w", m.InvestmentID, err)
	}
	return nil
}

// UpdateInvestmentInTx persists investment state inside an open transaction.
// Status, withdrawal accumulation and SIP counters all flow through here.
func (r *PgxInvestmentRepository) UpdateInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	m := mapping.ToModelInvestment(investment)

	query := `
		UPDATE investments
		SET account_id = $2, name = $3, amount = $4, is_sip = $5,
			sip_amount = $6, sip_frequency = $7, sip_start_date = $8, sip_end_date = $9, sip_day_of_month = $10,
			sip_installments_completed = $11, sip_total_installments = $12,
			status = $13, withdrawal_amount = $14, last_updated_at = $15, last_updated_by = $16
		WHERE investment_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query,
		m.InvestmentID,
		m.AccountID,
		m.Name,
		m.Amount,
		m.IsSIP,
		m.SIPAmount,
		m.SIPFrequency,
		m.SIPStartDate,
		m.SIPEndDate,
		m.SIPDayOfMonth,
		m.SIPInstallmentsCompleted,
		m.SIPTotalInstallments,
		m.Status,
		m.WithdrawalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update investment %s: %w", m.InvestmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteInvestmentInTx marks an investment deleted inside an open transaction.
func (r *PgxInvestmentRepository) SoftDeleteInvestmentInTx(ctx context.Context, tx pgx.Tx, investmentID string, userID string, now time.Time) error {
	query := `
		UPDATE investments
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE investment_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query, investmentID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete investment %s: %w", investmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvestmentByID retrieves a non-deleted investment by its ID.
func (r *PgxInvestmentRepository) FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE investment_id = $1 AND deleted_at IS NULL;
	`

	inv, err := scanInvestment(r.pool.QueryRow(ctx, query, investmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find investment by ID %s: %w", investmentID, err)
	}
	return inv, nil
}

// FindInvestmentByIDForUpdate retrieves an investment and locks its row for
// the duration of the transaction.
func (r *PgxInvestmentRepository) FindInvestmentByIDForUpdate(ctx context.Context, tx pgx.Tx, investmentID string) (*domain.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE investment_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`

	inv, err := scanInvestment(tx.QueryRow(ctx, query, investmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock investment %s: %w", investmentID, err)
	}
	return inv, nil
}

// ListInvestmentsByUser retrieves a paginated list of non-deleted investments.
func (r *PgxInvestmentRepository) ListInvestmentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Investment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments for user %s: %w", userID, err)
	}
	defer rows.Close()

	investments := []domain.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment row for user %s: %w", userID, err)
		}
		investments = append(investments, *inv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating investment rows for user %s: %w", userID, rows.Err())
	}

	return investments, nil
}

// SaveSIPTransactionInTx inserts one executed installment. The unique
// (investment_id, transaction_date) constraint maps to ErrDuplicate so a
// same-day retry is detectable.
func (r *PgxInvestmentRepository) SaveSIPTransactionInTx(ctx context.Context, tx pgx.Tx, sipTxn domain.SIPTransaction) error {
	m := mapping.ToModelSIPTransaction(sipTxn)

	query := `
		INSERT INTO sip_transactions (sip_transaction_id, investment_id, account_id, amount, transaction_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := tx.Exec(ctx, query,
		m.SIPTransactionID,
		m.InvestmentID,
		m.AccountID,
		m.Amount,
		m.TransactionDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: installment for investment %s on %s already recorded", apperrors.ErrDuplicate, m.InvestmentID, m.TransactionDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save SIP transaction %s: %w", m.SIPTransactionID, err)
	}
	return nil
}

// ListSIPTransactionsByInvestment lists the executed installments for an
// investment, newest first.
func (r *PgxInvestmentRepository) ListSIPTransactionsByInvestment(ctx context.Context, investmentID string) ([]domain.SIPTransaction, error) {
	query := `
		SELECT sip_transaction_id, investment_id, account_id, amount, transaction_date, status, created_at, created_by, last_updated_at, last_updated_by
		FROM sip_transactions
		WHERE investment_id = $1
		ORDER BY transaction_date DESC;
	`

	rows, err := r.pool.Query(ctx, query, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query SIP transactions for investment %s: %w", investmentID, err)
	}
	defer rows.Close()

	txns := []models.SIPTransaction{}
	for rows.Next() {
		var m models.SIPTransaction
		err := rows.Scan(
			&m.SIPTransactionID,
			&m.InvestmentID,
			&m.AccountID,
			&m.Amount,
			&m.TransactionDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan SIP transaction row for investment %s: %w", investmentID, err)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating SIP transaction rows for investment %s: %w", investmentID, rows.Err())
	}

	return mapping.ToDomainSIPTransactionSlice(txns), nil
}
