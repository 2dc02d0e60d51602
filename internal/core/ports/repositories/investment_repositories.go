package repositories

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvestmentReader defines read operations for investments.
type InvestmentReader interface {
	FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error)
	ListInvestmentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Investment, error)
	ListSIPTransactionsByInvestment(ctx context.Context, investmentID string) ([]domain.SIPTransaction, error)
}

// InvestmentWriter defines write operations for investments and their SIP
// installments.
type InvestmentWriter interface {
	SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error
	UpdateInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error
	SoftDeleteInvestmentInTx(ctx context.Context, tx pgx.Tx, investmentID string, userID string, now time.Time) error

	// FindInvestmentByIDForUpdate locks the investment row so a SIP
	// installment run cannot race a manual edit on the same investment.
	FindInvestmentByIDForUpdate(ctx context.Context, tx pgx.Tx, investmentID string) (*domain.Investment, error)

	// SaveSIPTransactionInTx inserts one executed installment. The unique
	// (investment_id, transaction_date) constraint surfaces as ErrDuplicate.
	SaveSIPTransactionInTx(ctx context.Context, tx pgx.Tx, sipTxn domain.SIPTransaction) error
}

// InvestmentRepositoryFacade combines the investment repository interfaces.
type InvestmentRepositoryFacade interface {
	InvestmentReader
	InvestmentWriter
}
