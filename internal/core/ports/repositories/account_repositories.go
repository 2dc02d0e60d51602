package repositories

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account (with its details row, when one
	// exists) by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the active accounts owned by a user.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts a new account, including its details row for
	// credit-card and loan kinds.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields (name, active flag).
	// Balance fields are never written through this method.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountBalanceWriter defines the balance mutation primitives. Both methods
// must be called inside an open transaction; FindAccountByIDForUpdate locks
// the row so concurrent multi-step mutations against the same account
// serialize.
type AccountBalanceWriter interface {
	// FindAccountByIDForUpdate retrieves an account with SELECT ... FOR UPDATE.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// ApplyBalanceChangesInTx applies signed deltas to the stored balance
	// fields the changes target. No negative-balance guard: overdraft is a
	// legal domain state.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.BalanceChange, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceWriter
}
