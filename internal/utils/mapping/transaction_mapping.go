package mapping

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/models"
)

// ToModelExpense converts a domain.Expense to its model shape.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		Amount:          d.Amount,
		Notes:           d.Notes,
		TransactionDate: d.TransactionDate,
		DeletedAt:       d.DeletedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model expense to the domain shape.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		Amount:          m.Amount,
		Notes:           m.Notes,
		TransactionDate: m.TransactionDate,
		DeletedAt:       m.DeletedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model expenses.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelIncome converts a domain.Income to its model shape.
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:        d.IncomeID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		Amount:          d.Amount,
		Notes:           d.Notes,
		TransactionDate: d.TransactionDate,
		DeletedAt:       d.DeletedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncome converts a model income to the domain shape.
func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:        m.IncomeID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		Amount:          m.Amount,
		Notes:           m.Notes,
		TransactionDate: m.TransactionDate,
		DeletedAt:       m.DeletedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainIncomeSlice converts a slice of model incomes.
func ToDomainIncomeSlice(ms []models.Income) []domain.Income {
	ds := make([]domain.Income, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncome(m)
	}
	return ds
}
