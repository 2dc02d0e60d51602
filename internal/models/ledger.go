package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is an append-only row tying a signed balance change to its
// originating transaction. Exactly one provenance FK is non-null.
type LedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Amount       decimal.Decimal `db:"amount"`
	ExpenseID    *string         `db:"expense_id"`
	IncomeID     *string         `db:"income_id"`
	InvestmentID *string         `db:"investment_id"`
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
