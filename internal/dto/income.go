package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an income.
type CreateIncomeRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	CategoryID      string          `json:"categoryID" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

// UpdateIncomeRequest defines the editable income fields.
type UpdateIncomeRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	CategoryID      *string          `json:"categoryID"`
	Notes           *string          `json:"notes"`
	TransactionDate *time.Time       `json:"transactionDate"`
}

// IncomeResponse defines the data returned for an income.
type IncomeResponse struct {
	IncomeID        string          `json:"incomeID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse.
func ToIncomeResponse(in *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:        in.IncomeID,
		AccountID:       in.AccountID,
		CategoryID:      in.CategoryID,
		Amount:          in.Amount,
		Notes:           in.Notes,
		TransactionDate: in.TransactionDate,
		CreatedAt:       in.CreatedAt,
		LastUpdatedAt:   in.LastUpdatedAt,
	}
}

// ListIncomesResponse wraps a page of incomes with the next-page token.
type ListIncomesResponse struct {
	Incomes   []IncomeResponse `json:"incomes"`
	NextToken *string          `json:"nextToken,omitempty"`
}
