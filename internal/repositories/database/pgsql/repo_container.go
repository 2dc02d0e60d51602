package pgsql

import (
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	investmentRepo := newPgxInvestmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Account:     accountRepo,
		Category:    categoryRepo,
		Ledger:      ledgerRepo,
		Transaction: transactionRepo,
		Investment:  investmentRepo,
		TxManager:   &BaseRepository{Pool: dbPool},
	}
}
