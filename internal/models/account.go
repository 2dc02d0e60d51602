package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account row.
type AccountKind string

const (
	Checking          AccountKind = "CHECKING"
	Savings           AccountKind = "SAVINGS"
	CreditCard        AccountKind = "CREDIT_CARD"
	Cash              AccountKind = "CASH"
	InvestmentAccount AccountKind = "INVESTMENT"
	Loan              AccountKind = "LOAN"
)

// Account represents an account row. Balance is the persisted running total;
// it is only written by the balance mutation primitives.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Kind         AccountKind     `db:"account_kind"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	Notes        string          `db:"notes"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

// AccountDetails is the 1:1 detail row for credit-card and loan accounts.
type AccountDetails struct {
	AccountID       string          `db:"account_id"`
	CreditLimit     decimal.Decimal `db:"credit_limit"`
	AvailableCredit decimal.Decimal `db:"available_credit"`
	LoanAmount      decimal.Decimal `db:"loan_amount"`
	LoanBalance     decimal.Decimal `db:"loan_balance"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	LoanStartDate   *time.Time      `db:"loan_start_date"`
	LoanTermMonths  int             `db:"loan_term_months"`
}
