package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs a function inside one database transaction. The
// function receives the open pgx.Tx and passes it to the *InTx repository
// methods so that every ledger append and balance mutation of one logical
// operation commits or rolls back together.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// RepositoryProvider bundles all repositories for service construction.
type RepositoryProvider struct {
	Account     AccountRepositoryFacade
	Category    CategoryRepositoryFacade
	Ledger      LedgerRepositoryFacade
	Transaction TransactionRepositoryFacade
	Investment  InvestmentRepositoryFacade
	TxManager   TransactionManager
}
