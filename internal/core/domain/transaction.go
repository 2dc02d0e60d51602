package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money leaving an account. Amount is always positive; the sign
// lives on the ledger entry. AccountID is immutable after creation.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	UserID          string          `json:"userID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// Income is money arriving at an account. Amount is always positive.
// AccountID is immutable after creation.
type Income struct {
	IncomeID        string          `json:"incomeID"`
	UserID          string          `json:"userID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}
