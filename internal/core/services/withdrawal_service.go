package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrNothingToWithdraw = fmt.Errorf("%w: investment has no remaining amount to withdraw", apperrors.ErrInvalidState)

// withdrawalService converts part or all of an investment back into an income
// on a target account. The income, its ledger entry, the balance credit and
// the investment update commit as one transaction.
type withdrawalService struct {
	txManager      portsrepo.TransactionManager
	investmentRepo portsrepo.InvestmentRepositoryFacade
	transactionSvc portssvc.TransactionSvcFacade
	categorySvc    portssvc.CategorySvcFacade
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(txManager portsrepo.TransactionManager, investmentRepo portsrepo.InvestmentRepositoryFacade, transactionSvc portssvc.TransactionSvcFacade, categorySvc portssvc.CategorySvcFacade) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		txManager:      txManager,
		investmentRepo: investmentRepo,
		transactionSvc: transactionSvc,
		categorySvc:    categorySvc,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// WithdrawInvestment withdraws up to the remaining amount of an investment.
// A nil request amount withdraws everything; an over-request is clamped to
// what remains, never rejected. Status flips to WITHDRAWN only when the
// cumulative withdrawals exhaust the invested amount.
func (s *withdrawalService) WithdrawInvestment(ctx context.Context, userID string, investmentID string, req dto.WithdrawInvestmentRequest) (*domain.Income, *domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: %s", ErrAmountNotPositive, req.Amount)
	}

	var income *domain.Income
	var updated domain.Investment
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		investment, err := s.investmentRepo.FindInvestmentByIDForUpdate(ctx, tx, investmentID)
		if err != nil {
			return err
		}
		if investment.UserID != userID {
			return apperrors.ErrNotFound
		}
		if investment.Status != domain.InvestmentActive {
			return fmt.Errorf("%w: investment %s is %s", ErrInvestmentNotActive, investmentID, investment.Status)
		}

		remaining := investment.RemainingAmount()
		if !remaining.IsPositive() {
			return fmt.Errorf("%w: investment %s", ErrNothingToWithdraw, investmentID)
		}

		actual := remaining
		if req.Amount != nil && req.Amount.LessThan(remaining) {
			actual = *req.Amount
		}

		category, err := s.categorySvc.ResolveInvestmentIncomeCategoryInTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		income, err = s.transactionSvc.CreateIncomeInTx(ctx, tx, userID, dto.CreateIncomeRequest{
			AccountID:       req.AccountID,
			CategoryID:      category.CategoryID,
			Amount:          actual,
			Notes:           "Withdrawal from " + investment.Name,
			TransactionDate: req.TransactionDate,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updated = *investment
		updated.WithdrawalAmount = investment.WithdrawalAmount.Add(actual)
		if investment.Amount != nil && updated.WithdrawalAmount.GreaterThanOrEqual(*investment.Amount) {
			updated.Status = domain.InvestmentWithdrawn
		}
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = userID
		return s.investmentRepo.UpdateInvestmentInTx(ctx, tx, updated)
	})
	if err != nil {
		logger.Error("Failed to withdraw investment", slog.String("error", err.Error()), slog.String("investment_id", investmentID))
		return nil, nil, err
	}

	logger.Info("Investment withdrawal processed",
		slog.String("investment_id", investmentID),
		slog.String("income_id", income.IncomeID),
		slog.String("amount", income.Amount.String()),
		slog.String("status", string(updated.Status)),
	)
	return income, &updated, nil
}
