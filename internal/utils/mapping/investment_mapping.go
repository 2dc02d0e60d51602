package mapping

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/models"
)

// ToModelInvestment converts a domain.Investment to its model shape.
func ToModelInvestment(d domain.Investment) models.Investment {
	return models.Investment{
		InvestmentID:             d.InvestmentID,
		UserID:                   d.UserID,
		AccountID:                d.AccountID,
		Name:                     d.Name,
		Amount:                   d.Amount,
		IsSIP:                    d.IsSIP,
		IsExisting:               d.IsExisting,
		SIPAmount:                d.SIPAmount,
		SIPFrequency:             string(d.SIPFrequency),
		SIPStartDate:             d.SIPStartDate,
		SIPEndDate:               d.SIPEndDate,
		SIPDayOfMonth:            d.SIPDayOfMonth,
		SIPInstallmentsCompleted: d.SIPInstallmentsCompleted,
		SIPTotalInstallments:     d.SIPTotalInstallments,
		Status:                   string(d.Status),
		WithdrawalAmount:         d.WithdrawalAmount,
		DeletedAt:                d.DeletedAt,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvestment converts a model investment to the domain shape.
func ToDomainInvestment(m models.Investment) domain.Investment {
	return domain.Investment{
		InvestmentID:             m.InvestmentID,
		UserID:                   m.UserID,
		AccountID:                m.AccountID,
		Name:                     m.Name,
		Amount:                   m.Amount,
		IsSIP:                    m.IsSIP,
		IsExisting:               m.IsExisting,
		SIPAmount:                m.SIPAmount,
		SIPFrequency:             domain.SIPFrequency(m.SIPFrequency),
		SIPStartDate:             m.SIPStartDate,
		SIPEndDate:               m.SIPEndDate,
		SIPDayOfMonth:            m.SIPDayOfMonth,
		SIPInstallmentsCompleted: m.SIPInstallmentsCompleted,
		SIPTotalInstallments:     m.SIPTotalInstallments,
		Status:                   domain.InvestmentStatus(m.Status),
		WithdrawalAmount:         m.WithdrawalAmount,
		DeletedAt:                m.DeletedAt,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvestmentSlice converts a slice of model investments.
func ToDomainInvestmentSlice(ms []models.Investment) []domain.Investment {
	ds := make([]domain.Investment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvestment(m)
	}
	return ds
}

// ToModelSIPTransaction converts a domain.SIPTransaction to its model shape.
func ToModelSIPTransaction(d domain.SIPTransaction) models.SIPTransaction {
	return models.SIPTransaction{
		SIPTransactionID: d.SIPTransactionID,
		InvestmentID:     d.InvestmentID,
		AccountID:        d.AccountID,
		Amount:           d.Amount,
		TransactionDate:  d.TransactionDate,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSIPTransaction converts a model SIP transaction to the domain shape.
func ToDomainSIPTransaction(m models.SIPTransaction) domain.SIPTransaction {
	return domain.SIPTransaction{
		SIPTransactionID: m.SIPTransactionID,
		InvestmentID:     m.InvestmentID,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		TransactionDate:  m.TransactionDate,
		Status:           domain.SIPTransactionStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSIPTransactionSlice converts a slice of model SIP transactions.
func ToDomainSIPTransactionSlice(ms []models.SIPTransaction) []domain.SIPTransaction {
	ds := make([]domain.SIPTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSIPTransaction(m)
	}
	return ds
}
