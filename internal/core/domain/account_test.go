package domain_test

import (
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Debit(t *testing.T) {
	amount := decimal.NewFromInt(200)

	tests := []struct {
		name string
		kind domain.AccountKind
	}{
		{name: "checking debits balance", kind: domain.Checking},
		{name: "savings debits balance", kind: domain.Savings},
		{name: "cash debits balance", kind: domain.Cash},
		// Spending on a card is tracked against balance, not available_credit.
		{name: "credit card debits balance", kind: domain.CreditCard},
		{name: "loan debits balance", kind: domain.Loan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.Account{AccountID: "acc-1", Kind: tt.kind}
			change := acc.Debit(amount)
			assert.Equal(t, "acc-1", change.AccountID)
			assert.Equal(t, domain.FieldBalance, change.Field)
			assert.True(t, change.Delta.Equal(decimal.NewFromInt(-200)), "delta was %s", change.Delta)
		})
	}
}

func TestAccountKind_IsValid(t *testing.T) {
	for _, kind := range []domain.AccountKind{
		domain.Checking,
		domain.Savings,
		domain.CreditCard,
		domain.Cash,
		domain.InvestmentAccount,
		domain.Loan,
	} {
		assert.True(t, kind.IsValid(), "kind %s", kind)
	}
	assert.Equal(t, domain.AccountKind("INVESTMENT"), domain.InvestmentAccount)
	assert.False(t, domain.AccountKind("PIGGY_BANK").IsValid())
}

func TestAccount_Credit(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		kind      domain.AccountKind
		wantField domain.BalanceField
	}{
		{name: "checking credits balance", kind: domain.Checking, wantField: domain.FieldBalance},
		{name: "credit card credits available_credit", kind: domain.CreditCard, wantField: domain.FieldAvailableCredit},
		{name: "loan credits balance", kind: domain.Loan, wantField: domain.FieldBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := domain.Account{AccountID: "acc-1", Kind: tt.kind}
			change := acc.Credit(amount)
			assert.Equal(t, tt.wantField, change.Field)
			assert.True(t, change.Delta.Equal(amount))
		})
	}
}

func TestBalanceChange_Reversed(t *testing.T) {
	change := domain.BalanceChange{AccountID: "acc-1", Field: domain.FieldAvailableCredit, Delta: decimal.NewFromInt(50)}
	rev := change.Reversed()
	assert.Equal(t, change.AccountID, rev.AccountID)
	assert.Equal(t, change.Field, rev.Field)
	assert.True(t, rev.Delta.Equal(decimal.NewFromInt(-50)))
	assert.True(t, change.Delta.Add(rev.Delta).IsZero())
}

func TestLedgerEntry_HasValidProvenance(t *testing.T) {
	expenseID := "exp-1"
	incomeID := "inc-1"

	tests := []struct {
		name  string
		entry domain.LedgerEntry
		want  bool
	}{
		{name: "no provenance", entry: domain.LedgerEntry{}, want: false},
		{name: "expense only", entry: domain.LedgerEntry{ExpenseID: &expenseID}, want: true},
		{name: "income only", entry: domain.LedgerEntry{IncomeID: &incomeID}, want: true},
		{name: "two parents", entry: domain.LedgerEntry{ExpenseID: &expenseID, IncomeID: &incomeID}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.HasValidProvenance())
		})
	}
}

func TestInvestment_RemainingAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	inv := domain.Investment{Amount: &amount, WithdrawalAmount: decimal.NewFromInt(70)}
	assert.True(t, inv.RemainingAmount().Equal(decimal.NewFromInt(30)))

	pureSIP := domain.Investment{WithdrawalAmount: decimal.Zero}
	assert.True(t, pureSIP.RemainingAmount().IsZero())
}

func TestInvestment_InstallmentCapReached(t *testing.T) {
	three := 3

	inv := domain.Investment{SIPTotalInstallments: &three, SIPInstallmentsCompleted: 2}
	assert.False(t, inv.InstallmentCapReached())

	inv.SIPInstallmentsCompleted = 3
	assert.True(t, inv.InstallmentCapReached())

	uncapped := domain.Investment{SIPInstallmentsCompleted: 100}
	assert.False(t, uncapped.InstallmentCapReached())
}

func TestInvestment_SIPExpired(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	inv := domain.Investment{SIPEndDate: &end}
	assert.False(t, inv.SIPExpired(end))
	assert.True(t, inv.SIPExpired(end.AddDate(0, 0, 1)))

	openEnded := domain.Investment{}
	assert.False(t, openEnded.SIPExpired(end.AddDate(10, 0, 0)))
}
