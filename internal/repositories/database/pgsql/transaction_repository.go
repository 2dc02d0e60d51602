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
	"github.com/fintrack-app/fintrack_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for expenses and incomes.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveExpenseInTx inserts a new expense row inside an open transaction.
func (r *PgxTransactionRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (expense_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.UserID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Notes,
		m.TransactionDate,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: expense with ID %s already exists", apperrors.ErrDuplicate, m.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// UpdateExpenseInTx persists the editable expense fields inside an open
// transaction. The caller is responsible for the matching ledger and balance
// work in the same transaction.
func (r *PgxTransactionRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		UPDATE expenses
		SET account_id = $2, category_id = $3, amount = $4, notes = $5, transaction_date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE expense_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Notes,
		m.TransactionDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update expense %s: %w", m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteExpenseInTx marks an expense deleted inside an open transaction.
func (r *PgxTransactionRepository) SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error {
	query := `
		UPDATE expenses
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE expense_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query, expenseID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindExpenseByID retrieves a non-deleted expense by its ID.
func (r *PgxTransactionRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE expense_id = $1 AND deleted_at IS NULL;
	`

	var m models.Expense
	err := r.pool.QueryRow(ctx, query, expenseID).Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Notes,
		&m.TransactionDate,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpensesByUser retrieves a page of non-deleted expenses using
// token-based pagination, newest transaction date first.
func (r *PgxTransactionRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT expense_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	orderClause := `
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, tokenErr := pagination.DecodeToken(*nextToken)
		if tokenErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, tokenErr)
		}
		query := baseQuery + ` AND (transaction_date, created_at) < ($3, $4)` + orderClause
		rows, err = r.pool.Query(ctx, query, userID, limit+1, tokenDate, tokenCreatedAt)
	} else {
		rows, err = r.pool.Query(ctx, baseQuery+orderClause, userID, limit+1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.UserID,
			&m.AccountID,
			&m.CategoryID,
			&m.Amount,
			&m.Notes,
			&m.TransactionDate,
			&m.DeletedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row for user %s: %w", userID, err)
		}
		expenses = append(expenses, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows for user %s: %w", userID, rows.Err())
	}

	var newNextToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainExpenseSlice(expenses), newNextToken, nil
}

// SaveIncomeInTx inserts a new income row inside an open transaction.
func (r *PgxTransactionRepository) SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	m := mapping.ToModelIncome(income)

	query := `
		INSERT INTO incomes (income_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := tx.Exec(ctx, query,
		m.IncomeID,
		m.UserID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Notes,
		m.TransactionDate,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: income with ID %s already exists", apperrors.ErrDuplicate, m.IncomeID)
		}
		return fmt.Errorf("failed to save income %s: %w", m.IncomeID, err)
	}
	return nil
}

// UpdateIncomeInTx persists the editable income fields inside an open transaction.
func (r *PgxTransactionRepository) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	m := mapping.ToModelIncome(income)

	query := `
		UPDATE incomes
		SET account_id = $2, category_id = $3, amount = $4, notes = $5, transaction_date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE income_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query,
		m.IncomeID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.Notes,
		m.TransactionDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update income %s: %w", m.IncomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteIncomeInTx marks an income deleted inside an open transaction.
func (r *PgxTransactionRepository) SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, incomeID string, userID string, now time.Time) error {
	query := `
		UPDATE incomes
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE income_id = $1 AND deleted_at IS NULL;
	`

	cmdTag, err := tx.Exec(ctx, query, incomeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete income %s: %w", incomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindIncomeByID retrieves a non-deleted income by its ID.
func (r *PgxTransactionRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `
		SELECT income_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM incomes
		WHERE income_id = $1 AND deleted_at IS NULL;
	`

	var m models.Income
	err := r.pool.QueryRow(ctx, query, incomeID).Scan(
		&m.IncomeID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Notes,
		&m.TransactionDate,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income by ID %s: %w", incomeID, err)
	}

	d := mapping.ToDomainIncome(m)
	return &d, nil
}

// ListIncomesByUser retrieves a page of non-deleted incomes using token-based
// pagination, newest transaction date first.
func (r *PgxTransactionRepository) ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Income, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT income_id, user_id, account_id, category_id, amount, notes, transaction_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM incomes
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	orderClause := `
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, tokenErr := pagination.DecodeToken(*nextToken)
		if tokenErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, tokenErr)
		}
		query := baseQuery + ` AND (transaction_date, created_at) < ($3, $4)` + orderClause
		rows, err = r.pool.Query(ctx, query, userID, limit+1, tokenDate, tokenCreatedAt)
	} else {
		rows, err = r.pool.Query(ctx, baseQuery+orderClause, userID, limit+1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query incomes for user %s: %w", userID, err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var m models.Income
		err := rows.Scan(
			&m.IncomeID,
			&m.UserID,
			&m.AccountID,
			&m.CategoryID,
			&m.Amount,
			&m.Notes,
			&m.TransactionDate,
			&m.DeletedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan income row for user %s: %w", userID, err)
		}
		incomes = append(incomes, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating income rows for user %s: %w", userID, rows.Err())
	}

	var newNextToken *string
	if len(incomes) > limit {
		incomes = incomes[:limit]
		last := incomes[len(incomes)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainIncomeSlice(incomes), newNextToken, nil
}
