package services_test

import (
	"context"
	"testing"

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade

	userID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

// --- Create Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Checking() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Main Checking",
		Kind:           domain.Checking,
		CurrencyCode:   "USD",
		OpeningBalance: decimal.NewFromInt(1500),
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.UserID == suite.userID && account.Kind == domain.Checking &&
			account.Balance.Equal(decimal.NewFromInt(1500)) && account.IsActive && account.Details == nil
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditCardDerivesAvailableCredit() {
	ctx := context.Background()
	limit := decimal.NewFromInt(5000)
	req := dto.CreateAccountRequest{
		Name:           "Travel Card",
		Kind:           domain.CreditCard,
		CurrencyCode:   "USD",
		OpeningBalance: decimal.NewFromInt(750), // already owed
		CreditLimit:    &limit,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.Details != nil &&
			account.Details.CreditLimit.Equal(limit) &&
			account.Details.AvailableCredit.Equal(decimal.NewFromInt(4250))
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account.Details)
	suite.True(account.Details.AvailableCredit.Equal(decimal.NewFromInt(4250)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditCardRequiresPositiveLimit() {
	ctx := context.Background()
	limit := decimal.Zero
	req := dto.CreateAccountRequest{
		Name:         "Broken Card",
		Kind:         domain.CreditCard,
		CurrencyCode: "USD",
		CreditLimit:  &limit,
	}

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LoanStartsFullyOutstanding() {
	ctx := context.Background()
	principal := decimal.NewFromInt(250000)
	rate := decimal.NewFromFloat(6.25)
	term := 360
	req := dto.CreateAccountRequest{
		Name:           "Mortgage",
		Kind:           domain.Loan,
		CurrencyCode:   "USD",
		LoanAmount:     &principal,
		InterestRate:   &rate,
		LoanTermMonths: &term,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.Details != nil &&
			account.Details.LoanAmount.Equal(principal) &&
			account.Details.LoanBalance.Equal(principal) &&
			account.Details.LoanTermMonths == 360
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account.Details)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LoanRequiresPrincipalAndRate() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Broken Loan",
		Kind:         domain.Loan,
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownKind() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Mystery",
		Kind:         domain.AccountKind("PIGGY_BANK"),
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Get / Update / Deactivate Test Cases ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_ForeignAccountIsNotFound() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(), // someone else's account
		Name:      "Not Yours",
		Kind:      domain.Savings,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	found, err := suite.service.GetAccountByID(ctx, suite.userID, account.AccountID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameAndReactivate() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		Name:      "Old Name",
		Kind:      domain.Checking,
		IsActive:  false,
	}
	name := "New Name"
	active := true

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(updated domain.Account) bool {
		return updated.Name == "New Name" && updated.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.userID, account.AccountID, dto.UpdateAccountRequest{Name: &name, IsActive: &active})

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.True(updated.IsActive)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		Name:      "Dormant",
		Kind:      domain.Savings,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.userID, account.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_ForeignAccountIsNotFound() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Name:      "Not Yours",
		Kind:      domain.Savings,
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.userID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
