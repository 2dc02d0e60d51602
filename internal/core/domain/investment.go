package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus tracks the lifecycle of an investment.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "ACTIVE"
	InvestmentSold      InvestmentStatus = "SOLD"
	InvestmentWithdrawn InvestmentStatus = "WITHDRAWN"
)

// SIPFrequency is the cadence of a systematic investment plan.
type SIPFrequency string

const (
	SIPWeekly    SIPFrequency = "WEEKLY"
	SIPMonthly   SIPFrequency = "MONTHLY"
	SIPQuarterly SIPFrequency = "QUARTERLY"
	SIPYearly    SIPFrequency = "YEARLY"
)

// IsValid reports whether f is a known SIP frequency.
func (f SIPFrequency) IsValid() bool {
	switch f {
	case SIPWeekly, SIPMonthly, SIPQuarterly, SIPYearly:
		return true
	}
	return false
}

// Investment is a one-time purchase, a historical ("existing") holding, or a
// SIP. AccountID is nil for existing holdings with no funding account; Amount
// is nil for pure-SIP plans that only accumulate through installments.
type Investment struct {
	InvestmentID string           `json:"investmentID"`
	UserID       string           `json:"userID"`
	AccountID    *string          `json:"accountID,omitempty"`
	Name         string           `json:"name"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	IsSIP        bool             `json:"isSIP"`
	IsExisting   bool             `json:"isExisting"` // historical backfill: never touches balances or the ledger

	SIPAmount                *decimal.Decimal `json:"sipAmount,omitempty"`
	SIPFrequency             SIPFrequency     `json:"sipFrequency,omitempty"`
	SIPStartDate             *time.Time       `json:"sipStartDate,omitempty"`
	SIPEndDate               *time.Time       `json:"sipEndDate,omitempty"`
	SIPDayOfMonth            int              `json:"sipDayOfMonth,omitempty"`
	SIPInstallmentsCompleted int              `json:"sipInstallmentsCompleted"`
	SIPTotalInstallments     *int             `json:"sipTotalInstallments,omitempty"`

	Status           InvestmentStatus `json:"status"`
	WithdrawalAmount decimal.Decimal  `json:"withdrawalAmount"` // cumulative across partial withdrawals
	DeletedAt        *time.Time       `json:"deletedAt,omitempty"`
	AuditFields
}

// RemainingAmount returns how much of the original amount is still invested
// after prior withdrawals. Zero when no amount was recorded.
func (i Investment) RemainingAmount() decimal.Decimal {
	if i.Amount == nil {
		return decimal.Zero
	}
	return i.Amount.Sub(i.WithdrawalAmount)
}

// InstallmentCapReached reports whether the configured number of installments
// has already been executed.
func (i Investment) InstallmentCapReached() bool {
	return i.SIPTotalInstallments != nil && i.SIPInstallmentsCompleted >= *i.SIPTotalInstallments
}

// SIPExpired reports whether date falls after the plan's end date.
func (i Investment) SIPExpired(date time.Time) bool {
	return i.SIPEndDate != nil && date.After(*i.SIPEndDate)
}

// SIPTransactionStatus is the execution state of a single SIP installment.
type SIPTransactionStatus string

const (
	SIPPending   SIPTransactionStatus = "PENDING"
	SIPCompleted SIPTransactionStatus = "COMPLETED"
	SIPFailed    SIPTransactionStatus = "FAILED"
)

// SIPTransaction records one executed installment of a SIP. A row exists only
// for installments that were actually applied; skipped or future dates leave
// no trace. (investment_id, transaction_date) is unique so a same-date retry
// cannot double-charge.
type SIPTransaction struct {
	SIPTransactionID string               `json:"sipTransactionID"`
	InvestmentID     string               `json:"investmentID"`
	AccountID        string               `json:"accountID"`
	Amount           decimal.Decimal      `json:"amount"`
	TransactionDate  time.Time            `json:"transactionDate"`
	Status           SIPTransactionStatus `json:"status"`
	AuditFields
}
