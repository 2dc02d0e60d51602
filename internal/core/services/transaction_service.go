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
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive = fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	ErrAccountInactive   = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrCategoryKind      = fmt.Errorf("%w: category kind does not match transaction type", apperrors.ErrValidation)
)

// transactionService is the expense/income engine. Every mutation runs inside
// one database transaction that covers the transaction row, its ledger
// entries and the owning account's balance.
type transactionService struct {
	ledgerPoster
	txManager       portsrepo.TransactionManager
	transactionRepo portsrepo.TransactionRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txManager portsrepo.TransactionManager, transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		ledgerPoster: ledgerPoster{
			accountRepo: accountRepo,
			ledgerRepo:  ledgerRepo,
		},
		txManager:       txManager,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// lockOwnedActiveAccount locks the account row and verifies ownership and
// active state. Accounts of other users surface as NotFound to obscure
// existence.
func (s *transactionService) lockOwnedActiveAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, accountID)
	}
	return account, nil
}

// validateCategory checks that the category exists, is visible to the user
// and has the expected kind.
func (s *transactionService) validateCategory(ctx context.Context, categoryID string, userID string, kind domain.CategoryKind) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		return err
	}
	if category.Kind != kind {
		return fmt.Errorf("%w: category %s is %s", ErrCategoryKind, categoryID, category.Kind)
	}
	return nil
}

// CreateExpense records an expense: the row, its ledger entry and the account
// debit commit as one unit.
func (s *transactionService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}
	if err := s.validateCategory(ctx, req.CategoryID, userID, domain.ExpenseCategory); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		UserID:          userID,
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
		AuditFields:     newAuditFields(userID, now),
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.lockOwnedActiveAccount(ctx, tx, req.AccountID, userID)
		if err != nil {
			return err
		}
		if err := s.transactionRepo.SaveExpenseInTx(ctx, tx, expense); err != nil {
			return err
		}
		entry := domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			AccountID: account.AccountID,
			Amount:    req.Amount.Neg(),
			ExpenseID: &expense.ExpenseID,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return s.applyLedgerEffect(ctx, tx, entry, account.Debit(req.Amount), userID, now)
	})
	if err != nil {
		logger.Error("Failed to create expense", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("account_id", expense.AccountID))
	return &expense, nil
}

// GetExpenseByID retrieves a single expense owned by the user.
func (s *transactionService) GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	expense, err := s.transactionRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// ListExpenses retrieves a token-paginated page of the user's expenses.
func (s *transactionService) ListExpenses(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error) {
	expenses, nextToken, err := s.transactionRepo.ListExpensesByUser(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListExpensesResponse{
		Expenses:  make([]dto.ExpenseResponse, len(expenses)),
		NextToken: nextToken,
	}
	for i := range expenses {
		resp.Expenses[i] = dto.ToExpenseResponse(&expenses[i])
	}
	return resp, nil
}

// UpdateExpense edits an expense by reverting its original balance effect and
// reapplying the new one. The owning account never changes.
func (s *transactionService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
		}
		updated.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, userID, domain.ExpenseCategory); err != nil {
			return nil, err
		}
		updated.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.TransactionDate != nil {
		updated.TransactionDate = *req.TransactionDate
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, existing.AccountID)
		if err != nil {
			return err
		}
		oldChange := account.Debit(existing.Amount)
		newChange := account.Debit(updated.Amount)
		newEntry := domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			AccountID: account.AccountID,
			Amount:    updated.Amount.Neg(),
			ExpenseID: &updated.ExpenseID,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return s.replaceLedgerEffect(ctx, tx, ledgerReplacement{
			retireEntries: func(ctx context.Context, tx pgx.Tx) error {
				return s.ledgerRepo.DeleteEntriesByExpenseIDInTx(ctx, tx, expenseID)
			},
			oldChange: &oldChange,
			persistFields: func(ctx context.Context, tx pgx.Tx) error {
				return s.transactionRepo.UpdateExpenseInTx(ctx, tx, updated)
			},
			newEntry:  &newEntry,
			newChange: &newChange,
		}, userID, now)
	})
	if err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

// DeleteExpense soft deletes an expense, retiring its ledger entries and
// reverting its balance effect in the same transaction.
func (s *transactionService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, existing.AccountID)
		if err != nil {
			return err
		}
		oldChange := account.Debit(existing.Amount)
		return s.replaceLedgerEffect(ctx, tx, ledgerReplacement{
			retireEntries: func(ctx context.Context, tx pgx.Tx) error {
				return s.ledgerRepo.DeleteEntriesByExpenseIDInTx(ctx, tx, expenseID)
			},
			oldChange: &oldChange,
			persistFields: func(ctx context.Context, tx pgx.Tx) error {
				return s.transactionRepo.SoftDeleteExpenseInTx(ctx, tx, expenseID, userID, now)
			},
		}, userID, now)
	})
	if err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return err
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// createIncomeInTx is the shared income creation core. The withdrawal
// processor reuses it with its own transaction.
func (s *transactionService) createIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, req dto.CreateIncomeRequest, now time.Time) (*domain.Income, error) {
	account, err := s.lockOwnedActiveAccount(ctx, tx, req.AccountID, userID)
	if err != nil {
		return nil, err
	}

	income := domain.Income{
		IncomeID:        uuid.NewString(),
		UserID:          userID,
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
		AuditFields:     newAuditFields(userID, now),
	}
	if err := s.transactionRepo.SaveIncomeInTx(ctx, tx, income); err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		AccountID: account.AccountID,
		Amount:    req.Amount,
		IncomeID:  &income.IncomeID,
		CreatedAt: now,
		CreatedBy: userID,
	}
	if err := s.applyLedgerEffect(ctx, tx, entry, account.Credit(req.Amount), userID, now); err != nil {
		return nil, err
	}
	return &income, nil
}

// CreateIncome records an income. For credit-card accounts the credit lands
// on available_credit (a card payment restores headroom).
func (s *transactionService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}
	if err := s.validateCategory(ctx, req.CategoryID, userID, domain.IncomeCategory); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var income *domain.Income
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		income, err = s.createIncomeInTx(ctx, tx, userID, req, now)
		return err
	})
	if err != nil {
		logger.Error("Failed to create income", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Income created", slog.String("income_id", income.IncomeID), slog.String("account_id", income.AccountID))
	return income, nil
}

// CreateIncomeInTx runs the income creation path inside an already open
// transaction. Validation mirrors CreateIncome.
func (s *transactionService) CreateIncomeInTx(ctx context.Context, tx pgx.Tx, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}
	return s.createIncomeInTx(ctx, tx, userID, req, time.Now().UTC())
}

// GetIncomeByID retrieves a single income owned by the user.
func (s *transactionService) GetIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error) {
	income, err := s.transactionRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if income.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return income, nil
}

// ListIncomes retrieves a token-paginated page of the user's incomes.
func (s *transactionService) ListIncomes(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListIncomesResponse, error) {
	incomes, nextToken, err := s.transactionRepo.ListIncomesByUser(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListIncomesResponse{
		Incomes:   make([]dto.IncomeResponse, len(incomes)),
		NextToken: nextToken,
	}
	for i := range incomes {
		resp.Incomes[i] = dto.ToIncomeResponse(&incomes[i])
	}
	return resp, nil
}

// UpdateIncome edits an income with the same revert-then-reapply ordering as
// expenses.
func (s *transactionService) UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetIncomeByID(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
		}
		updated.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, userID, domain.IncomeCategory); err != nil {
			return nil, err
		}
		updated.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.TransactionDate != nil {
		updated.TransactionDate = *req.TransactionDate
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, existing.AccountID)
		if err != nil {
			return err
		}
		oldChange := account.Credit(existing.Amount)
		newChange := account.Credit(updated.Amount)
		newEntry := domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			AccountID: account.AccountID,
			Amount:    updated.Amount,
			IncomeID:  &updated.IncomeID,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return s.replaceLedgerEffect(ctx, tx, ledgerReplacement{
			retireEntries: func(ctx context.Context, tx pgx.Tx) error {
				return s.ledgerRepo.DeleteEntriesByIncomeIDInTx(ctx, tx, incomeID)
			},
			oldChange: &oldChange,
			persistFields: func(ctx context.Context, tx pgx.Tx) error {
				return s.transactionRepo.UpdateIncomeInTx(ctx, tx, updated)
			},
			newEntry:  &newEntry,
			newChange: &newChange,
		}, userID, now)
	})
	if err != nil {
		logger.Error("Failed to update income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return nil, err
	}

	logger.Info("Income updated", slog.String("income_id", incomeID))
	return &updated, nil
}

// DeleteIncome soft deletes an income, retiring its ledger entries and
// reverting its balance effect in the same transaction.
func (s *transactionService) DeleteIncome(ctx context.Context, userID string, incomeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetIncomeByID(ctx, userID, incomeID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, existing.AccountID)
		if err != nil {
			return err
		}
		oldChange := account.Credit(existing.Amount)
		return s.replaceLedgerEffect(ctx, tx, ledgerReplacement{
			retireEntries: func(ctx context.Context, tx pgx.Tx) error {
				return s.ledgerRepo.DeleteEntriesByIncomeIDInTx(ctx, tx, incomeID)
			},
			oldChange: &oldChange,
			persistFields: func(ctx context.Context, tx pgx.Tx) error {
				return s.transactionRepo.SoftDeleteIncomeInTx(ctx, tx, incomeID, userID, now)
			},
		}, userID, now)
	})
	if err != nil {
		logger.Error("Failed to delete income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return err
	}

	logger.Info("Income deleted", slog.String("income_id", incomeID))
	return nil
}

// ListAccountEntries lists the ledger entries of an account the user owns,
// newest first.
func (s *transactionService) ListAccountEntries(ctx context.Context, userID string, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return s.ledgerRepo.FindEntriesByAccountID(ctx, accountID, limit, offset)
}
