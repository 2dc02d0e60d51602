package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment represents an investment row. AccountID is null for existing
// holdings with no funding account; amount is null for pure-SIP plans.
type Investment struct {
	InvestmentID string           `db:"investment_id"`
	UserID       string           `db:"user_id"`
	AccountID    *string          `db:"account_id"`
	Name         string           `db:"name"`
	Amount       *decimal.Decimal `db:"amount"`
	IsSIP        bool             `db:"is_sip"`
	IsExisting   bool             `db:"is_existing"`

	SIPAmount                *decimal.Decimal `db:"sip_amount"`
	SIPFrequency             string           `db:"sip_frequency"`
	SIPStartDate             *time.Time       `db:"sip_start_date"`
	SIPEndDate               *time.Time       `db:"sip_end_date"`
	SIPDayOfMonth            int              `db:"sip_day_of_month"`
	SIPInstallmentsCompleted int              `db:"sip_installments_completed"`
	SIPTotalInstallments     *int             `db:"sip_total_installments"`

	Status           string          `db:"status"`
	WithdrawalAmount decimal.Decimal `db:"withdrawal_amount"`
	DeletedAt        *time.Time      `db:"deleted_at"`
	AuditFields
}

// SIPTransaction represents one executed installment row. The
// (investment_id, transaction_date) pair is unique.
type SIPTransaction struct {
	SIPTransactionID string          `db:"sip_transaction_id"`
	InvestmentID     string          `db:"investment_id"`
	AccountID        string          `db:"account_id"`
	Amount           decimal.Decimal `db:"amount"`
	TransactionDate  time.Time       `db:"transaction_date"`
	Status           string          `db:"status"`
	AuditFields
}
