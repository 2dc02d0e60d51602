package services

// ServiceContainer bundles all service facades for handler wiring.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	Transaction TransactionSvcFacade
	Investment  InvestmentSvcFacade
	Withdrawal  WithdrawalSvcFacade
}
