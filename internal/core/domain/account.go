package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account and decides which stored field a money
// movement targets.
type AccountKind string

const (
	Checking          AccountKind = "CHECKING"
	Savings           AccountKind = "SAVINGS"
	CreditCard        AccountKind = "CREDIT_CARD"
	Cash              AccountKind = "CASH"
	InvestmentAccount AccountKind = "INVESTMENT"
	Loan              AccountKind = "LOAN"
)

// IsValid reports whether k is one of the known account kinds.
func (k AccountKind) IsValid() bool {
	switch k {
	case Checking, Savings, CreditCard, Cash, InvestmentAccount, Loan:
		return true
	}
	return false
}

// RequiresDetails reports whether accounts of this kind carry an
// AccountDetails row.
func (k AccountKind) RequiresDetails() bool {
	return k == CreditCard || k == Loan
}

// BalanceField names the stored column a BalanceChange targets.
type BalanceField string

const (
	FieldBalance         BalanceField = "balance"
	FieldAvailableCredit BalanceField = "available_credit"
	FieldLoanBalance     BalanceField = "loan_balance"
)

// BalanceChange is a signed delta against one stored balance field of one
// account. It is the unit the repositories apply inside a database
// transaction; the domain layer computes them, nothing else mutates balances.
type BalanceChange struct {
	AccountID string
	Field     BalanceField
	Delta     decimal.Decimal
}

// Reversed returns the change that undoes c on the same field.
func (c BalanceChange) Reversed() BalanceChange {
	return BalanceChange{AccountID: c.AccountID, Field: c.Field, Delta: c.Delta.Neg()}
}

// IsZero reports whether the change has no effect.
func (c BalanceChange) IsZero() bool {
	return c.Delta.IsZero()
}

// Account represents a financial account owned by a user. Balance is the
// authoritative running total; it is only ever mutated through the
// transaction, investment and withdrawal engines.
type Account struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Kind         AccountKind     `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Notes        string          `json:"notes,omitempty"`
	IsActive     bool            `json:"isActive"`
	Details      *AccountDetails `json:"details,omitempty"` // present for CREDIT_CARD and LOAN kinds
	AuditFields
}

// AccountDetails carries the kind-specific fields for credit-card and loan
// accounts. For credit cards available_credit is the authoritative "how much
// more can be spent" figure; for loans loan_balance is the authoritative
// outstanding principal, decoupled from the generic balance.
type AccountDetails struct {
	AccountID       string          `json:"accountID"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	LoanAmount      decimal.Decimal `json:"loanAmount"`
	LoanBalance     decimal.Decimal `json:"loanBalance"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	LoanStartDate   *time.Time      `json:"loanStartDate,omitempty"`
	LoanTermMonths  int             `json:"loanTermMonths"`
}

// Debit returns the change for money leaving the account. Expenses and
// investment purchases decrement balance for every kind, credit cards
// included: spending on a card is tracked against balance, not
// available_credit, and that asymmetry is deliberate.
func (a Account) Debit(amount decimal.Decimal) BalanceChange {
	return BalanceChange{AccountID: a.AccountID, Field: FieldBalance, Delta: amount.Neg()}
}

// Credit returns the change for money arriving at the account. Incomes
// against a credit card (payments) land on available_credit; every other kind
// increments balance.
func (a Account) Credit(amount decimal.Decimal) BalanceChange {
	if a.Kind == CreditCard {
		return BalanceChange{AccountID: a.AccountID, Field: FieldAvailableCredit, Delta: amount}
	}
	return BalanceChange{AccountID: a.AccountID, Field: FieldBalance, Delta: amount}
}

// UtilizedCredit returns credit_limit - available_credit for a credit-card
// account, zero otherwise.
func (a Account) UtilizedCredit() decimal.Decimal {
	if a.Kind != CreditCard || a.Details == nil {
		return decimal.Zero
	}
	return a.Details.CreditLimit.Sub(a.Details.AvailableCredit)
}
