package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is an append-only, signed-amount record tying a balance change
// to the transaction that caused it. Exactly one of ExpenseID, IncomeID and
// InvestmentID is set. Entries are never read back to compute balances
// (balances are stored); they exist for traceability and are retired when
// their parent transaction is edited or deleted.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"` // signed: negative for money out, positive for money in
	ExpenseID    *string         `json:"expenseID,omitempty"`
	IncomeID     *string         `json:"incomeID,omitempty"`
	InvestmentID *string         `json:"investmentID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// HasValidProvenance reports whether exactly one originating transaction is
// referenced.
func (e LedgerEntry) HasValidProvenance() bool {
	n := 0
	if e.ExpenseID != nil {
		n++
	}
	if e.IncomeID != nil {
		n++
	}
	if e.InvestmentID != nil {
		n++
	}
	return n == 1
}
