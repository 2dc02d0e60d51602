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
	"github.com/shopspring/decimal"
)

var (
	ErrCreditLimitRequired = fmt.Errorf("%w: credit card accounts require a positive credit limit", apperrors.ErrValidation)
	ErrLoanFieldsRequired  = fmt.Errorf("%w: loan accounts require a loan amount and interest rate", apperrors.ErrValidation)
)

// accountService manages account lifecycle. Balances are read-only from here;
// every mutation goes through the transaction, investment and withdrawal
// engines.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account. Credit cards start with available credit
// equal to the limit minus anything already owed; loans start with the full
// principal outstanding.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Kind:         req.Kind,
		CurrencyCode: req.CurrencyCode,
		Balance:      req.OpeningBalance,
		Notes:        req.Notes,
		IsActive:     true,
		AuditFields:  newAuditFields(userID, now),
	}

	switch req.Kind {
	case domain.CreditCard:
		if req.CreditLimit == nil || req.CreditLimit.LessThanOrEqual(decimal.Zero) {
			return nil, ErrCreditLimitRequired
		}
		account.Details = &domain.AccountDetails{
			AccountID:       account.AccountID,
			CreditLimit:     *req.CreditLimit,
			AvailableCredit: req.CreditLimit.Sub(req.OpeningBalance),
		}
	case domain.Loan:
		if req.LoanAmount == nil || req.LoanAmount.LessThanOrEqual(decimal.Zero) || req.InterestRate == nil {
			return nil, ErrLoanFieldsRequired
		}
		details := &domain.AccountDetails{
			AccountID:     account.AccountID,
			LoanAmount:    *req.LoanAmount,
			LoanBalance:   *req.LoanAmount,
			InterestRate:  *req.InterestRate,
			LoanStartDate: req.LoanStartDate,
		}
		if req.LoanTermMonths != nil {
			details.LoanTermMonths = *req.LoanTermMonths
		}
		account.Details = details
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID retrieves one account owned by the user. Foreign accounts
// surface as NotFound to obscure existence.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves the user's active accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, userID, limit, offset)
}

// UpdateAccount updates the mutable account fields (name, notes, active
// flag).
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := *account
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, updated); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

// DeactivateAccount marks an account inactive. Its balance and history stay
// intact; new transactions against it are rejected.
func (s *accountService) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
