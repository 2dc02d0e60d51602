package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// CreditLimit is required for CREDIT_CARD kinds; LoanAmount and InterestRate
// for LOAN kinds.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,accountkind"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Notes          string             `json:"notes"`

	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
	LoanAmount     *decimal.Decimal `json:"loanAmount,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	LoanStartDate  *time.Time       `json:"loanStartDate,omitempty"`
	LoanTermMonths *int             `json:"loanTermMonths,omitempty"`
}

// UpdateAccountRequest defines the mutable account fields. Pointers
// distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// AccountDetailsResponse mirrors domain.AccountDetails.
type AccountDetailsResponse struct {
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	LoanAmount      decimal.Decimal `json:"loanAmount"`
	LoanBalance     decimal.Decimal `json:"loanBalance"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	LoanStartDate   *time.Time      `json:"loanStartDate,omitempty"`
	LoanTermMonths  int             `json:"loanTermMonths"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                  `json:"accountID"`
	Name          string                  `json:"name"`
	Kind          domain.AccountKind      `json:"kind"`
	CurrencyCode  string                  `json:"currencyCode"`
	Balance       decimal.Decimal         `json:"balance"`
	Notes         string                  `json:"notes,omitempty"`
	IsActive      bool                    `json:"isActive"`
	Details       *AccountDetailsResponse `json:"details,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Kind:          acc.Kind,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		Notes:         acc.Notes,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
	if acc.Details != nil {
		resp.Details = &AccountDetailsResponse{
			CreditLimit:     acc.Details.CreditLimit,
			AvailableCredit: acc.Details.AvailableCredit,
			LoanAmount:      acc.Details.LoanAmount,
			LoanBalance:     acc.Details.LoanBalance,
			InterestRate:    acc.Details.InterestRate,
			LoanStartDate:   acc.Details.LoanStartDate,
			LoanTermMonths:  acc.Details.LoanTermMonths,
		}
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
