package services_test

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// passthroughTxManager runs the transactional closure directly. The mocks
// below accept a nil pgx.Tx, so service logic runs unchanged while every
// repository call stays observable.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.BalanceChange, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntriesByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	args := m.Called(ctx, tx, expenseID)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntriesByIncomeIDInTx(ctx context.Context, tx pgx.Tx, incomeID string) error {
	args := m.Called(ctx, tx, incomeID)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntriesByInvestmentIDInTx(ctx context.Context, tx pgx.Tx, investmentID string) error {
	args := m.Called(ctx, tx, investmentID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntriesByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockTransactionRepository) SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, expenseID, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockTransactionRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return expenses, token, args.Error(2)
}

func (m *MockTransactionRepository) SaveIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	args := m.Called(ctx, tx, income)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, income domain.Income) error {
	args := m.Called(ctx, tx, income)
	return args.Error(0)
}

func (m *MockTransactionRepository) SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, incomeID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, incomeID, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockTransactionRepository) ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Income, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var incomes []domain.Income
	if args.Get(0) != nil {
		incomes = args.Get(0).([]domain.Income)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return incomes, token, args.Error(2)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string, kind domain.CategoryKind) (*domain.Category, error) {
	args := m.Called(ctx, userID, name, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindFirstCategoryByKind(ctx context.Context, userID string, kind domain.CategoryKind) (*domain.Category, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	args := m.Called(ctx, categoryID, userID)
	return args.Error(0)
}

func (m *MockCategoryRepository) SeedDefaults(ctx context.Context, categories []domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

// MockInvestmentRepository is a mock type for the InvestmentRepositoryFacade interface
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	args := m.Called(ctx, investmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) ListInvestmentsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Investment, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) ListSIPTransactionsByInvestment(ctx context.Context, investmentID string) ([]domain.SIPTransaction, error) {
	args := m.Called(ctx, investmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SIPTransaction), args.Error(1)
}

func (m *MockInvestmentRepository) SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	args := m.Called(ctx, tx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) UpdateInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	args := m.Called(ctx, tx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) SoftDeleteInvestmentInTx(ctx context.Context, tx pgx.Tx, investmentID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, investmentID, userID, now)
	return args.Error(0)
}

func (m *MockInvestmentRepository) FindInvestmentByIDForUpdate(ctx context.Context, tx pgx.Tx, investmentID string) (*domain.Investment, error) {
	args := m.Called(ctx, tx, investmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) SaveSIPTransactionInTx(ctx context.Context, tx pgx.Tx, sipTxn domain.SIPTransaction) error {
	args := m.Called(ctx, tx, sipTxn)
	return args.Error(0)
}
