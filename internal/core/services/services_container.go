package services

import (
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.Account)
	container.Category = NewCategoryService(repos.Category)
	container.Transaction = NewTransactionService(repos.TxManager, repos.Transaction, repos.Account, repos.Ledger, repos.Category)
	container.Investment = NewInvestmentService(repos.TxManager, repos.Investment, repos.Account, repos.Ledger)

	// The withdrawal processor composes the transaction and category services
	// so a withdrawal's income rides the normal income path.
	container.Withdrawal = NewWithdrawalService(repos.TxManager, repos.Investment, container.Transaction, container.Category)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.InvestmentSvcFacade  = (*investmentService)(nil)
	_ portssvc.WithdrawalSvcFacade  = (*withdrawalService)(nil)
)
