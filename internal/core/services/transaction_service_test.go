package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockLedgerRepo   *MockLedgerRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade

	userID     string
	accountID  string
	categoryID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(
		passthroughTxManager{},
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockCategoryRepo,
	)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.categoryID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) checkingAccount(balance int64) *domain.Account {
	return &domain.Account{
		AccountID:    suite.accountID,
		UserID:       suite.userID,
		Name:         "Main Checking",
		Kind:         domain.Checking,
		CurrencyCode: "USD",
		Balance:      decimal.NewFromInt(balance),
		IsActive:     true,
	}
}

func (suite *TransactionServiceTestSuite) expenseCategory() *domain.Category {
	return &domain.Category{
		CategoryID: suite.categoryID,
		UserID:     suite.userID,
		Name:       "Food",
		Kind:       domain.ExpenseCategory,
	}
}

func (suite *TransactionServiceTestSuite) incomeCategory() *domain.Category {
	return &domain.Category{
		CategoryID: suite.categoryID,
		UserID:     suite.userID,
		Name:       "Salary",
		Kind:       domain.IncomeCategory,
	}
}

// matchBalanceDelta matches a single-change slice targeting field with the
// given delta.
func matchBalanceDelta(field domain.BalanceField, delta int64) interface{} {
	return mock.MatchedBy(func(changes []domain.BalanceChange) bool {
		return len(changes) == 1 &&
			changes[0].Field == field &&
			changes[0].Delta.Equal(decimal.NewFromInt(delta))
	})
}

// --- Expense Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(200),
		Notes:           "groceries",
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.expenseCategory(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(1000), nil).Once()
	suite.mockTxnRepo.On("SaveExpenseInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.ExpenseID != nil && entry.IncomeID == nil && entry.InvestmentID == nil &&
			entry.Amount.Equal(decimal.NewFromInt(-200))
	})).Return(nil).Once()
	// A 200 expense against a 1000 balance lands the account at 800.
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, -200), suite.userID, mock.Anything).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.ExpenseID)
	suite.Equal(suite.userID, expense.UserID)
	suite.True(expense.Amount.Equal(decimal.NewFromInt(200)))

	suite.mockCategoryRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.Zero,
		TransactionDate: time.Now().UTC(),
	}

	expense, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// Validation failures must reject before any write happens.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveExpenseInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ApplyBalanceChangesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_RejectsIncomeCategory() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(50),
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.incomeCategory(), nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveExpenseInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_RejectsInactiveAccount() {
	ctx := context.Background()
	account := suite.checkingAccount(1000)
	account.IsActive = false
	req := dto.CreateExpenseRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(50),
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.expenseCategory(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(account, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveExpenseInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_ForeignAccountIsNotFound() {
	ctx := context.Background()
	account := suite.checkingAccount(1000)
	account.UserID = uuid.NewString() // someone else's account
	req := dto.CreateExpenseRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(50),
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.expenseCategory(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(account, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateExpense_RevertsThenReapplies() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:       expenseID,
		UserID:          suite.userID,
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(200),
		TransactionDate: time.Now().UTC(),
	}
	newAmount := decimal.NewFromInt(150)

	suite.mockTxnRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(800), nil).Once()
	suite.mockLedgerRepo.On("DeleteEntriesByExpenseIDInTx", ctx, mock.Anything, expenseID).Return(nil).Once()
	// The original 200 debit comes back before the 150 debit lands: 800 -> 1000 -> 850.
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, 200), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateExpenseInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Amount.Equal(newAmount)
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.ExpenseID != nil && entry.Amount.Equal(decimal.NewFromInt(-150))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, -150), suite.userID, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.userID, expenseID, dto.UpdateExpenseRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.Amount.Equal(newAmount))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteExpense_RevertsBalanceEffect() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:  expenseID,
		UserID:     suite.userID,
		AccountID:  suite.accountID,
		CategoryID: suite.categoryID,
		Amount:     decimal.NewFromInt(200),
	}

	suite.mockTxnRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(800), nil).Once()
	suite.mockLedgerRepo.On("DeleteEntriesByExpenseIDInTx", ctx, mock.Anything, expenseID).Return(nil).Once()
	// Deleting the 200 expense restores the balance: 800 -> 1000.
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, 200), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("SoftDeleteExpenseInTx", ctx, mock.Anything, expenseID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteExpense(ctx, suite.userID, expenseID)

	suite.Require().NoError(err)
	// No new ledger presence after a delete.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntryInTx", mock.Anything, mock.Anything, mock.Anything)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetExpenseByID_ForeignUserIsNotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID: expenseID,
		UserID:    uuid.NewString(), // someone else's expense
	}

	suite.mockTxnRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()

	expense, err := suite.service.GetExpenseByID(ctx, suite.userID, expenseID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Income Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateIncome_Success() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(500),
		Notes:           "salary",
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.incomeCategory(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(1000), nil).Once()
	suite.mockTxnRepo.On("SaveIncomeInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Income")).Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.IncomeID != nil && entry.Amount.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, 500), suite.userID, mock.Anything).Return(nil).Once()

	income, err := suite.service.CreateIncome(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(income)
	suite.True(income.Amount.Equal(decimal.NewFromInt(500)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_CreditCardRestoresAvailableCredit() {
	ctx := context.Background()
	card := &domain.Account{
		AccountID:    suite.accountID,
		UserID:       suite.userID,
		Name:         "Visa",
		Kind:         domain.CreditCard,
		CurrencyCode: "USD",
		Balance:      decimal.NewFromInt(-300),
		IsActive:     true,
		Details: &domain.AccountDetails{
			AccountID:       suite.accountID,
			CreditLimit:     decimal.NewFromInt(5000),
			AvailableCredit: decimal.NewFromInt(4700),
		},
	}
	req := dto.CreateIncomeRequest{
		AccountID:       suite.accountID,
		CategoryID:      suite.categoryID,
		Amount:          decimal.NewFromInt(300),
		Notes:           "card payment",
		TransactionDate: time.Now().UTC(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID, suite.userID).Return(suite.incomeCategory(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(card, nil).Once()
	suite.mockTxnRepo.On("SaveIncomeInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Income")).Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
	// A payment against a card restores headroom, not the generic balance.
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldAvailableCredit, 300), suite.userID, mock.Anything).Return(nil).Once()

	income, err := suite.service.CreateIncome(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(income)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateIncome_RevertsThenReapplies() {
	ctx := context.Background()
	incomeID := uuid.NewString()
	existing := &domain.Income{
		IncomeID:   incomeID,
		UserID:     suite.userID,
		AccountID:  suite.accountID,
		CategoryID: suite.categoryID,
		Amount:     decimal.NewFromInt(500),
	}
	newAmount := decimal.NewFromInt(450)

	suite.mockTxnRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(1500), nil).Once()
	suite.mockLedgerRepo.On("DeleteEntriesByIncomeIDInTx", ctx, mock.Anything, incomeID).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, -500), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateIncomeInTx", ctx, mock.Anything, mock.MatchedBy(func(in domain.Income) bool {
		return in.Amount.Equal(newAmount)
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(entry domain.LedgerEntry) bool {
		return entry.IncomeID != nil && entry.Amount.Equal(newAmount)
	})).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, 450), suite.userID, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateIncome(ctx, suite.userID, incomeID, dto.UpdateIncomeRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.Amount.Equal(newAmount))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteIncome_RevertsBalanceEffect() {
	ctx := context.Background()
	incomeID := uuid.NewString()
	existing := &domain.Income{
		IncomeID:   incomeID,
		UserID:     suite.userID,
		AccountID:  suite.accountID,
		CategoryID: suite.categoryID,
		Amount:     decimal.NewFromInt(500),
	}

	suite.mockTxnRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, suite.accountID).Return(suite.checkingAccount(1500), nil).Once()
	suite.mockLedgerRepo.On("DeleteEntriesByIncomeIDInTx", ctx, mock.Anything, incomeID).Return(nil).Once()
	suite.mockAccountRepo.On("ApplyBalanceChangesInTx", ctx, mock.Anything, matchBalanceDelta(domain.FieldBalance, -500), suite.userID, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("SoftDeleteIncomeInTx", ctx, mock.Anything, incomeID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteIncome(ctx, suite.userID, incomeID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntryInTx", mock.Anything, mock.Anything, mock.Anything)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListExpenses_PassesTokenThrough() {
	ctx := context.Background()
	token := "opaque-token"
	next := "next-token"
	expenses := []domain.Expense{
		{ExpenseID: uuid.NewString(), UserID: suite.userID, Amount: decimal.NewFromInt(10)},
		{ExpenseID: uuid.NewString(), UserID: suite.userID, Amount: decimal.NewFromInt(20)},
	}

	suite.mockTxnRepo.On("ListExpensesByUser", ctx, suite.userID, 20, &token).Return(expenses, &next, nil).Once()

	resp, err := suite.service.ListExpenses(ctx, suite.userID, dto.ListTransactionsParams{Limit: 20, NextToken: &token})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Expenses, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListAccountEntries_Success() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), AccountID: suite.accountID, Amount: decimal.NewFromInt(-200), ExpenseID: &expenseID},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.checkingAccount(800), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByAccountID", ctx, suite.accountID, 20, 0).Return(entries, nil).Once()

	found, err := suite.service.ListAccountEntries(ctx, suite.userID, suite.accountID, 20, 0)

	suite.Require().NoError(err)
	suite.Len(found, 1)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListAccountEntries_ForeignAccountIsNotFound() {
	ctx := context.Background()
	account := suite.checkingAccount(800)
	account.UserID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(account, nil).Once()

	found, err := suite.service.ListAccountEntries(ctx, suite.userID, suite.accountID, 20, 0)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
