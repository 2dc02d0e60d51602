package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvestmentRequest defines the data needed to create an investment.
// IsExisting marks a historical holding that must not touch any balance.
// For SIPs the schedule fields apply; a SIPAmount present at creation runs
// the first installment immediately, dated at SIPStartDate.
type CreateInvestmentRequest struct {
	Name       string           `json:"name" binding:"required"`
	AccountID  *string          `json:"accountID,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	IsSIP      bool             `json:"isSIP"`
	IsExisting bool             `json:"isExisting"`

	SIPAmount            *decimal.Decimal    `json:"sipAmount,omitempty"`
	SIPFrequency         domain.SIPFrequency `json:"sipFrequency,omitempty"`
	SIPStartDate         *time.Time          `json:"sipStartDate,omitempty"`
	SIPEndDate           *time.Time          `json:"sipEndDate,omitempty"`
	SIPDayOfMonth        int                 `json:"sipDayOfMonth,omitempty"`
	SIPTotalInstallments *int                `json:"sipTotalInstallments,omitempty"`
}

// UpdateInvestmentRequest defines the editable investment fields. Permitted
// only while the investment is ACTIVE. Schedule changes never touch
// already-completed installments.
type UpdateInvestmentRequest struct {
	Name                 *string          `json:"name"`
	Amount               *decimal.Decimal `json:"amount"`
	SIPAmount            *decimal.Decimal `json:"sipAmount"`
	SIPEndDate           *time.Time       `json:"sipEndDate"`
	SIPDayOfMonth        *int             `json:"sipDayOfMonth"`
	SIPTotalInstallments *int             `json:"sipTotalInstallments"`
}

// ProcessSIPInstallmentRequest carries the installment date.
type ProcessSIPInstallmentRequest struct {
	TransactionDate time.Time `json:"transactionDate" binding:"required"`
}

// WithdrawInvestmentRequest defines a withdrawal. Amount nil means withdraw
// everything; an over-request is clamped to what remains, never rejected.
type WithdrawInvestmentRequest struct {
	AccountID       string           `json:"accountID" binding:"required,uuid"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate time.Time        `json:"transactionDate" binding:"required"`
}

// InvestmentResponse mirrors domain.Investment.
type InvestmentResponse struct {
	InvestmentID string           `json:"investmentID"`
	AccountID    *string          `json:"accountID,omitempty"`
	Name         string           `json:"name"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	IsSIP        bool             `json:"isSIP"`
	IsExisting   bool             `json:"isExisting"`

	SIPAmount                *decimal.Decimal    `json:"sipAmount,omitempty"`
	SIPFrequency             domain.SIPFrequency `json:"sipFrequency,omitempty"`
	SIPStartDate             *time.Time          `json:"sipStartDate,omitempty"`
	SIPEndDate               *time.Time          `json:"sipEndDate,omitempty"`
	SIPDayOfMonth            int                 `json:"sipDayOfMonth,omitempty"`
	SIPInstallmentsCompleted int                 `json:"sipInstallmentsCompleted"`
	SIPTotalInstallments     *int                `json:"sipTotalInstallments,omitempty"`

	Status           domain.InvestmentStatus `json:"status"`
	WithdrawalAmount decimal.Decimal         `json:"withdrawalAmount"`
	CreatedAt        time.Time               `json:"createdAt"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
}

// ToInvestmentResponse converts a domain.Investment to InvestmentResponse.
func ToInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		InvestmentID:             inv.InvestmentID,
		AccountID:                inv.AccountID,
		Name:                     inv.Name,
		Amount:                   inv.Amount,
		IsSIP:                    inv.IsSIP,
		IsExisting:               inv.IsExisting,
		SIPAmount:                inv.SIPAmount,
		SIPFrequency:             inv.SIPFrequency,
		SIPStartDate:             inv.SIPStartDate,
		SIPEndDate:               inv.SIPEndDate,
		SIPDayOfMonth:            inv.SIPDayOfMonth,
		SIPInstallmentsCompleted: inv.SIPInstallmentsCompleted,
		SIPTotalInstallments:     inv.SIPTotalInstallments,
		Status:                   inv.Status,
		WithdrawalAmount:         inv.WithdrawalAmount,
		CreatedAt:                inv.CreatedAt,
		LastUpdatedAt:            inv.LastUpdatedAt,
	}
}

// ToListInvestmentResponse converts a slice of domain.Investment.
func ToListInvestmentResponse(investments []domain.Investment) []InvestmentResponse {
	res := make([]InvestmentResponse, len(investments))
	for i := range investments {
		res[i] = ToInvestmentResponse(&investments[i])
	}
	return res
}

// SIPTransactionResponse mirrors domain.SIPTransaction.
type SIPTransactionResponse struct {
	SIPTransactionID string                      `json:"sipTransactionID"`
	InvestmentID     string                      `json:"investmentID"`
	AccountID        string                      `json:"accountID"`
	Amount           decimal.Decimal             `json:"amount"`
	TransactionDate  time.Time                   `json:"transactionDate"`
	Status           domain.SIPTransactionStatus `json:"status"`
}

// ToSIPTransactionResponse converts a domain.SIPTransaction.
func ToSIPTransactionResponse(t *domain.SIPTransaction) SIPTransactionResponse {
	return SIPTransactionResponse{
		SIPTransactionID: t.SIPTransactionID,
		InvestmentID:     t.InvestmentID,
		AccountID:        t.AccountID,
		Amount:           t.Amount,
		TransactionDate:  t.TransactionDate,
		Status:           t.Status,
	}
}

// ToSIPTransactionResponses converts a slice of domain.SIPTransaction.
func ToSIPTransactionResponses(txns []domain.SIPTransaction) []SIPTransactionResponse {
	res := make([]SIPTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToSIPTransactionResponse(&txns[i])
	}
	return res
}

// SIPInstallmentResponse reports the outcome of an installment run. The
// transaction is absent when the run was a no-op.
type SIPInstallmentResponse struct {
	Investment     InvestmentResponse      `json:"investment"`
	SIPTransaction *SIPTransactionResponse `json:"sipTransaction,omitempty"`
}

// WithdrawalResponse combines the income created by a withdrawal with the
// updated investment.
type WithdrawalResponse struct {
	Income     IncomeResponse     `json:"income"`
	Investment InvestmentResponse `json:"investment"`
}
