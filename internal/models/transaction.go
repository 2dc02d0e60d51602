package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense row. Soft delete via deleted_at.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      string          `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Notes           string          `db:"notes"`
	TransactionDate time.Time       `db:"transaction_date"`
	DeletedAt       *time.Time      `db:"deleted_at"`
	AuditFields
}

// Income represents an income row. Soft delete via deleted_at.
type Income struct {
	IncomeID        string          `db:"income_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      string          `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Notes           string          `db:"notes"`
	TransactionDate time.Time       `db:"transaction_date"`
	DeletedAt       *time.Time      `db:"deleted_at"`
	AuditFields
}
