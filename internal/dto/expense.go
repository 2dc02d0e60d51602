package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	CategoryID      string          `json:"categoryID" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

// UpdateExpenseRequest defines the editable expense fields. The owning
// account is immutable after creation, so no accountID here.
type UpdateExpenseRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	CategoryID      *string          `json:"categoryID"`
	Notes           *string          `json:"notes"`
	TransactionDate *time.Time       `json:"transactionDate"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string          `json:"expenseID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		AccountID:       e.AccountID,
		CategoryID:      e.CategoryID,
		Amount:          e.Amount,
		Notes:           e.Notes,
		TransactionDate: e.TransactionDate,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ListTransactionsParams defines query parameters for token-paginated
// expense/income listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses with the next-page token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}
