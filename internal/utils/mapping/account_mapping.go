package mapping

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/models"
)

// ToModelAccount converts a domain.Account to its model shape for storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		Name:         d.Name,
		Kind:         models.AccountKind(d.Kind),
		CurrencyCode: d.CurrencyCode,
		Balance:      d.Balance,
		Notes:        d.Notes,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model account (and optional details row) to the
// domain shape.
func ToDomainAccount(m models.Account, details *models.AccountDetails) domain.Account {
	acc := domain.Account{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		Name:         m.Name,
		Kind:         domain.AccountKind(m.Kind),
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if details != nil {
		acc.Details = &domain.AccountDetails{
			AccountID:       details.AccountID,
			CreditLimit:     details.CreditLimit,
			AvailableCredit: details.AvailableCredit,
			LoanAmount:      details.LoanAmount,
			LoanBalance:     details.LoanBalance,
			InterestRate:    details.InterestRate,
			LoanStartDate:   details.LoanStartDate,
			LoanTermMonths:  details.LoanTermMonths,
		}
	}
	return acc
}

// ToModelAccountDetails converts domain account details to the model shape.
func ToModelAccountDetails(d domain.AccountDetails) models.AccountDetails {
	return models.AccountDetails{
		AccountID:       d.AccountID,
		CreditLimit:     d.CreditLimit,
		AvailableCredit: d.AvailableCredit,
		LoanAmount:      d.LoanAmount,
		LoanBalance:     d.LoanBalance,
		InterestRate:    d.InterestRate,
		LoanStartDate:   d.LoanStartDate,
		LoanTermMonths:  d.LoanTermMonths,
	}
}
