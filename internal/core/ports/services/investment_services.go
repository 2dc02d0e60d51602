package services

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// InvestmentSvcFacade is the investment lifecycle engine: one-time purchases,
// balance-neutral "existing" holdings, and SIPs with on-demand installment
// processing.
type InvestmentSvcFacade interface {
	CreateInvestment(ctx context.Context, userID string, req dto.CreateInvestmentRequest) (*domain.Investment, error)
	GetInvestmentByID(ctx context.Context, userID string, investmentID string) (*domain.Investment, error)
	ListInvestments(ctx context.Context, userID string, limit int, offset int) ([]domain.Investment, error)
	UpdateInvestment(ctx context.Context, userID string, investmentID string, req dto.UpdateInvestmentRequest) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, userID string, investmentID string) error

	// ProcessSIPInstallment applies one installment dated at date. It no-ops
	// (nil SIPTransaction, no error) when the investment is not a SIP, the
	// installment cap is reached, or date is past the plan's end date.
	// Calling it twice for the same date fails with ErrDuplicate; at-most-once
	// scheduling per period remains the caller's contract.
	ProcessSIPInstallment(ctx context.Context, userID string, investmentID string, date time.Time) (*domain.Investment, *domain.SIPTransaction, error)

	ListSIPTransactions(ctx context.Context, userID string, investmentID string) ([]domain.SIPTransaction, error)
}

// WithdrawalSvcFacade converts part or all of an investment back into an
// income on a target account.
type WithdrawalSvcFacade interface {
	// WithdrawInvestment clamps the requested amount to what remains (an
	// over-request truncates, it never errors), creates the income through
	// the normal income path, and accumulates the investment's cumulative
	// withdrawal. Status flips to WITHDRAWN only on full exhaustion.
	WithdrawInvestment(ctx context.Context, userID string, investmentID string, req dto.WithdrawInvestmentRequest) (*domain.Income, *domain.Investment, error)
}
