package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse mirrors domain.LedgerEntry. Exactly one of the
// provenance IDs is present.
type LedgerEntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	ExpenseID    *string         `json:"expenseID,omitempty"`
	IncomeID     *string         `json:"incomeID,omitempty"`
	InvestmentID *string         `json:"investmentID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = LedgerEntryResponse{
			EntryID:      e.EntryID,
			AccountID:    e.AccountID,
			Amount:       e.Amount,
			ExpenseID:    e.ExpenseID,
			IncomeID:     e.IncomeID,
			InvestmentID: e.InvestmentID,
			CreatedAt:    e.CreatedAt,
		}
	}
	return res
}
