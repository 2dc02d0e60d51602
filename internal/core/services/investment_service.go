package services

import (
	"context"
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
	ErrInvestmentNotActive = fmt.Errorf("%w: investment is not active", apperrors.ErrInvalidState)
	ErrSIPFieldsMissing    = fmt.Errorf("%w: SIP investments require sipAmount, sipFrequency and sipStartDate", apperrors.ErrValidation)
	ErrAccountRequired     = fmt.Errorf("%w: a funding account is required", apperrors.ErrValidation)
	ErrAmountRequired      = fmt.Errorf("%w: an amount is required", apperrors.ErrValidation)
)

// investmentService is the investment lifecycle engine: one-time purchases,
// balance-neutral existing holdings, and SIPs with on-demand installments.
type investmentService struct {
	ledgerPoster
	txManager      portsrepo.TransactionManager
	investmentRepo portsrepo.InvestmentRepositoryFacade
}

// NewInvestmentService creates a new InvestmentService.
func NewInvestmentService(txManager portsrepo.TransactionManager, investmentRepo portsrepo.InvestmentRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.InvestmentSvcFacade {
	return &investmentService{
		ledgerPoster: ledgerPoster{
			accountRepo: accountRepo,
			ledgerRepo:  ledgerRepo,
		},
		txManager:      txManager,
		investmentRepo: investmentRepo,
	}
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

// lockOwnedAccount locks the account row and verifies ownership and active
// state.
func (s *investmentService) lockOwnedAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string) (*domain.Account, error) {
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

// lockOwnedActiveInvestment locks the investment row and verifies ownership
// and ACTIVE status.
func (s *investmentService) lockOwnedActiveInvestment(ctx context.Context, tx pgx.Tx, investmentID string, userID string) (*domain.Investment, error) {
	investment, err := s.investmentRepo.FindInvestmentByIDForUpdate(ctx, tx, investmentID)
	if err != nil {
		return nil, err
	}
	if investment.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if investment.Status != domain.InvestmentActive {
		return nil, fmt.Errorf("%w: investment %s is %s", ErrInvestmentNotActive, investmentID, investment.Status)
	}
	return investment, nil
}

func validateCreateInvestment(req dto.CreateInvestmentRequest) error {
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}
	if req.IsSIP {
		if req.SIPAmount == nil || req.SIPFrequency == "" || req.SIPStartDate == nil {
			return ErrSIPFieldsMissing
		}
		if !req.SIPFrequency.IsValid() {
			return fmt.Errorf("%w: unknown SIP frequency %q", apperrors.ErrValidation, req.SIPFrequency)
		}
		if req.SIPAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: %s", ErrAmountNotPositive, req.SIPAmount)
		}
		if req.SIPTotalInstallments != nil && *req.SIPTotalInstallments <= 0 {
			return fmt.Errorf("%w: sipTotalInstallments must be positive", apperrors.ErrValidation)
		}
		if !req.IsExisting && req.AccountID == nil {
			return fmt.Errorf("%w for SIP installments", ErrAccountRequired)
		}
		return nil
	}
	// One-time and existing holdings both need an amount recorded.
	if req.Amount == nil {
		return fmt.Errorf("%w for a non-SIP investment", ErrAmountRequired)
	}
	// A one-time purchase moves money, so it needs a funding account.
	if !req.IsExisting && req.AccountID == nil {
		return fmt.Errorf("%w for a one-time purchase", ErrAccountRequired)
	}
	return nil
}

// CreateInvestment creates an investment. One-time purchases debit the
// funding account; existing holdings are balance neutral; a SIP with a start
// amount runs its first installment immediately, dated at the start date.
func (s *investmentService) CreateInvestment(ctx context.Context, userID string, req dto.CreateInvestmentRequest) (*domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateCreateInvestment(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	investment := domain.Investment{
		InvestmentID:         uuid.NewString(),
		UserID:               userID,
		AccountID:            req.AccountID,
		Name:                 req.Name,
		Amount:               req.Amount,
		IsSIP:                req.IsSIP,
		IsExisting:           req.IsExisting,
		SIPAmount:            req.SIPAmount,
		SIPFrequency:         req.SIPFrequency,
		SIPStartDate:         req.SIPStartDate,
		SIPEndDate:           req.SIPEndDate,
		SIPDayOfMonth:        req.SIPDayOfMonth,
		SIPTotalInstallments: req.SIPTotalInstallments,
		Status:               domain.InvestmentActive,
		WithdrawalAmount:     decimal.Zero,
		AuditFields:          newAuditFields(userID, now),
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.investmentRepo.SaveInvestmentInTx(ctx, tx, investment); err != nil {
			return err
		}

		if investment.IsExisting {
			return nil // historical backfill, no balance or ledger footprint
		}

		if !investment.IsSIP {
			account, err := s.lockOwnedAccount(ctx, tx, *investment.AccountID, userID)
			if err != nil {
				return err
			}
			entry := domain.LedgerEntry{
				EntryID:      uuid.NewString(),
				AccountID:    account.AccountID,
				Amount:       investment.Amount.Neg(),
				InvestmentID: &investment.InvestmentID,
				CreatedAt:    now,
				CreatedBy:    userID,
			}
			return s.applyLedgerEffect(ctx, tx, entry, account.Debit(*investment.Amount), userID, now)
		}

		// SIP: run the first installment now, dated at the start date.
		updated, _, err := s.executeInstallmentInTx(ctx, tx, &investment, userID, *investment.SIPStartDate, now)
		if err != nil {
			return err
		}
		investment = *updated
		return nil
	})
	if err != nil {
		logger.Error("Failed to create investment", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Investment created", slog.String("investment_id", investment.InvestmentID), slog.Bool("is_sip", investment.IsSIP), slog.Bool("is_existing", investment.IsExisting))
	return &investment, nil
}

// executeInstallmentInTx applies one SIP installment: the sip_transactions
// row, the ledger entry, the account debit and the investment counters commit
// with the caller's transaction. The unique (investment_id, transaction_date)
// row makes a same-date retry fail with ErrDuplicate.
func (s *investmentService) executeInstallmentInTx(ctx context.Context, tx pgx.Tx, investment *domain.Investment, userID string, date time.Time, now time.Time) (*domain.Investment, *domain.SIPTransaction, error) {
	if investment.AccountID == nil {
		return nil, nil, fmt.Errorf("%w: SIP %s has no funding account", apperrors.ErrValidation, investment.InvestmentID)
	}
	account, err := s.lockOwnedAccount(ctx, tx, *investment.AccountID, userID)
	if err != nil {
		return nil, nil, err
	}

	sipTxn := domain.SIPTransaction{
		SIPTransactionID: uuid.NewString(),
		InvestmentID:     investment.InvestmentID,
		AccountID:        account.AccountID,
		Amount:           *investment.SIPAmount,
		TransactionDate:  date,
		Status:           domain.SIPCompleted,
		AuditFields:      newAuditFields(userID, now),
	}
	if err := s.investmentRepo.SaveSIPTransactionInTx(ctx, tx, sipTxn); err != nil {
		return nil, nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		AccountID:    account.AccountID,
		Amount:       investment.SIPAmount.Neg(),
		InvestmentID: &investment.InvestmentID,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if err := s.applyLedgerEffect(ctx, tx, entry, account.Debit(*investment.SIPAmount), userID, now); err != nil {
		return nil, nil, err
	}

	updated := *investment
	newTotal := investment.SIPAmount.Copy()
	if updated.Amount != nil {
		newTotal = updated.Amount.Add(*investment.SIPAmount)
	}
	updated.Amount = &newTotal
	updated.SIPInstallmentsCompleted++
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID
	if err := s.investmentRepo.UpdateInvestmentInTx(ctx, tx, updated); err != nil {
		return nil, nil, err
	}

	return &updated, &sipTxn, nil
}

// ProcessSIPInstallment applies one installment dated at date. It no-ops with
// a nil SIPTransaction when the investment is not a SIP, the installment cap
// is reached, or date falls past the plan's end date.
func (s *investmentService) ProcessSIPInstallment(ctx context.Context, userID string, investmentID string, date time.Time) (*domain.Investment, *domain.SIPTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var resultInv *domain.Investment
	var resultTxn *domain.SIPTransaction
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		investment, err := s.lockOwnedActiveInvestment(ctx, tx, investmentID, userID)
		if err != nil {
			return err
		}

		if !investment.IsSIP || investment.InstallmentCapReached() || investment.SIPExpired(date) {
			resultInv = investment
			return nil // nothing to do for this date
		}

		resultInv, resultTxn, err = s.executeInstallmentInTx(ctx, tx, investment, userID, date, time.Now().UTC())
		return err
	})
	if err != nil {
		logger.Error("Failed to process SIP installment", slog.String("error", err.Error()), slog.String("investment_id", investmentID))
		return nil, nil, err
	}

	if resultTxn != nil {
		logger.Info("SIP installment processed", slog.String("investment_id", investmentID), slog.String("sip_transaction_id", resultTxn.SIPTransactionID), slog.Int("installments_completed", resultInv.SIPInstallmentsCompleted))
	}
	return resultInv, resultTxn, nil
}

// GetInvestmentByID retrieves a single investment owned by the user.
func (s *investmentService) GetInvestmentByID(ctx context.Context, userID string, investmentID string) (*domain.Investment, error) {
	investment, err := s.investmentRepo.FindInvestmentByID(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	if investment.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return investment, nil
}

// ListInvestments retrieves a paginated list of the user's investments.
func (s *investmentService) ListInvestments(ctx context.Context, userID string, limit int, offset int) ([]domain.Investment, error) {
	return s.investmentRepo.ListInvestmentsByUser(ctx, userID, limit, offset)
}

// ListSIPTransactions lists the executed installments of an investment owned
// by the user.
func (s *investmentService) ListSIPTransactions(ctx context.Context, userID string, investmentID string) ([]domain.SIPTransaction, error) {
	if _, err := s.GetInvestmentByID(ctx, userID, investmentID); err != nil {
		return nil, err
	}
	return s.investmentRepo.ListSIPTransactionsByInvestment(ctx, investmentID)
}

// UpdateInvestment edits an ACTIVE investment. An amount change on a one-time
// purchase reverts the original debit and reapplies the new one; SIP schedule
// changes never touch already-completed installments.
func (s *investmentService) UpdateInvestment(ctx context.Context, userID string, investmentID string, req dto.UpdateInvestmentRequest) (*domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}
	if req.SIPAmount != nil && req.SIPAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.SIPAmount)
	}

	var updated domain.Investment
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		existing, err := s.lockOwnedActiveInvestment(ctx, tx, investmentID, userID)
		if err != nil {
			return err
		}

		if req.Amount != nil && existing.IsSIP {
			return fmt.Errorf("%w: a SIP's amount accumulates through installments and cannot be set directly", apperrors.ErrValidation)
		}

		updated = *existing
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.Amount != nil {
			updated.Amount = req.Amount
		}
		if req.SIPAmount != nil {
			updated.SIPAmount = req.SIPAmount
		}
		if req.SIPEndDate != nil {
			updated.SIPEndDate = req.SIPEndDate
		}
		if req.SIPDayOfMonth != nil {
			updated.SIPDayOfMonth = *req.SIPDayOfMonth
		}
		if req.SIPTotalInstallments != nil {
			if *req.SIPTotalInstallments < existing.SIPInstallmentsCompleted {
				return fmt.Errorf("%w: sipTotalInstallments cannot drop below the %d installments already completed", apperrors.ErrValidation, existing.SIPInstallmentsCompleted)
			}
			updated.SIPTotalInstallments = req.SIPTotalInstallments
		}

		now := time.Now().UTC()
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = userID

		amountChanged := req.Amount != nil && (existing.Amount == nil || !existing.Amount.Equal(*req.Amount))
		if amountChanged && !existing.IsExisting && existing.AccountID != nil {
			account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, *existing.AccountID)
			if err != nil {
				return err
			}
			var oldChange *domain.BalanceChange
			if existing.Amount != nil {
				c := account.Debit(*existing.Amount)
				oldChange = &c
			}
			newChange := account.Debit(*updated.Amount)
			newEntry := domain.LedgerEntry{
				EntryID:      uuid.NewString(),
				AccountID:    account.AccountID,
				Amount:       updated.Amount.Neg(),
				InvestmentID: &updated.InvestmentID,
				CreatedAt:    now,
				CreatedBy:    userID,
			}
			return s.replaceLedgerEffect(ctx, tx, ledgerReplacement{
				retireEntries: func(ctx context.Context, tx pgx.Tx) error {
					return s.ledgerRepo.DeleteEntriesByInvestmentIDInTx(ctx, tx, investmentID)
				},
				oldChange: oldChange,
				persistFields: func(ctx context.Context, tx pgx.Tx) error {
					return s.investmentRepo.UpdateInvestmentInTx(ctx, tx, updated)
				},
				newEntry:  &newEntry,
				newChange: &newChange,
			}, userID, now)
		}

		return s.investmentRepo.UpdateInvestmentInTx(ctx, tx, updated)
	})
	if err != nil {
		logger.Error("Failed to update investment", slog.String("error", err.Error()), slog.String("investment_id", investmentID))
		return nil, err
	}

	logger.Info("Investment updated", slog.String("investment_id", investmentID))
	return &updated, nil
}

// DeleteInvestment soft deletes an investment. For one-time purchases the
// money still held (amount minus prior withdrawals) flows back to the funding
// account and the purchase entry is retired; withdrawals already paid out
// stay untouched as incomes. SIP installment history is never rolled back:
// the installment debits and their ledger entries stand.
func (s *investmentService) DeleteInvestment(ctx context.Context, userID string, investmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		investment, err := s.investmentRepo.FindInvestmentByIDForUpdate(ctx, tx, investmentID)
		if err != nil {
			return err
		}
		if investment.UserID != userID {
			return apperrors.ErrNotFound
		}

		rep := ledgerReplacement{
			persistFields: func(ctx context.Context, tx pgx.Tx) error {
				return s.investmentRepo.SoftDeleteInvestmentInTx(ctx, tx, investmentID, userID, now)
			},
		}

		if !investment.IsSIP {
			rep.retireEntries = func(ctx context.Context, tx pgx.Tx) error {
				return s.ledgerRepo.DeleteEntriesByInvestmentIDInTx(ctx, tx, investmentID)
			}
			remaining := investment.RemainingAmount()
			if !investment.IsExisting && investment.AccountID != nil && remaining.IsPositive() {
				account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, *investment.AccountID)
				if err != nil {
					return err
				}
				oldChange := account.Debit(remaining)
				rep.oldChange = &oldChange
			}
		}

		return s.replaceLedgerEffect(ctx, tx, rep, userID, now)
	})
	if err != nil {
		logger.Error("Failed to delete investment", slog.String("error", err.Error()), slog.String("investment_id", investmentID))
		return err
	}

	logger.Info("Investment deleted", slog.String("investment_id", investmentID))
	return nil
}
