package mapping

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its model shape.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		ExpenseID:    d.ExpenseID,
		IncomeID:     d.IncomeID,
		InvestmentID: d.InvestmentID,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model ledger entry to the domain shape.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		ExpenseID:    m.ExpenseID,
		IncomeID:     m.IncomeID,
		InvestmentID: m.InvestmentID,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model ledger entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
