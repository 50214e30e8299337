package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/core/services"
	"github.com/yangsb/account-ledger/internal/locking"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.AccountUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.AccountUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountUser), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account domain.Account, maxAccounts int) (*domain.Account, error) {
	args := m.Called(ctx, account, maxAccounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CloseAccount(ctx context.Context, accountNumber string, closedAt time.Time) error {
	args := m.Called(ctx, accountNumber, closedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockAcctRepo *MockAccountRepository
	service      portssvc.AccountSvc
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAcctRepo = new(MockAccountRepository)
	locks := locking.NewLocalManager(locking.DefaultOptions())
	suite.service = services.NewAccountService(suite.mockUserRepo, suite.mockAcctRepo, locks)
}

func (suite *AccountServiceTestSuite) activeUser() *domain.AccountUser {
	return &domain.AccountUser{
		UserID: uuid.NewString(),
		Name:   "Test User",
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("CreateAccount", ctx, mock.AnythingOfType("domain.Account"), domain.MaxAccountsPerUser).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal(user.UserID, account.OwnerUserID)
			suite.Equal(int64(500), account.Balance)
			suite.Equal(domain.AccountActive, account.Status)
		}).
		Return(&domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: "1000000000",
			OwnerUserID:   user.UserID,
			Balance:       500,
			Status:        domain.AccountActive,
		}, nil).Once()

	created, err := suite.service.CreateAccount(ctx, user.UserID, 500)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("1000000000", created.AccountNumber)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockAcctRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrUserNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, userID, 0)

	suite.Require().ErrorIs(err, apperrors.ErrUserNotFound)
	suite.Nil(created)
	suite.mockAcctRepo.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialBalance() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	created, err := suite.service.CreateAccount(ctx, user.UserID, -1)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidRequest)
	suite.Nil(created)
	suite.mockAcctRepo.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CapExceeded() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("CreateAccount", ctx, mock.AnythingOfType("domain.Account"), domain.MaxAccountsPerUser).
		Return(nil, apperrors.ErrMaxAccountsExceeded).Once()

	created, err := suite.service.CreateAccount(ctx, user.UserID, 0)

	suite.Require().ErrorIs(err, apperrors.ErrMaxAccountsExceeded)
	suite.Nil(created)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	user := suite.activeUser()
	accountNumber := "1000000001"

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("FindAccountByNumber", ctx, accountNumber).Return(&domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: accountNumber,
		OwnerUserID:   user.UserID,
		Balance:       0,
		Status:        domain.AccountActive,
	}, nil).Once()
	suite.mockAcctRepo.On("CloseAccount", ctx, accountNumber, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.DeleteAccount(ctx, user.UserID, accountNumber)

	suite.Require().NoError(err)
	suite.Require().NotNil(closed)
	suite.Equal(domain.AccountClosed, closed.Status)
	suite.Require().NotNil(closed.ClosedAt)
	suite.mockAcctRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_OwnerMismatch() {
	ctx := context.Background()
	user := suite.activeUser()
	accountNumber := "1000000002"

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("FindAccountByNumber", ctx, accountNumber).Return(&domain.Account{
		AccountNumber: accountNumber,
		OwnerUserID:   uuid.NewString(),
		Status:        domain.AccountActive,
	}, nil).Once()

	closed, err := suite.service.DeleteAccount(ctx, user.UserID, accountNumber)

	suite.Require().ErrorIs(err, apperrors.ErrOwnerMismatch)
	suite.Nil(closed)
	suite.mockAcctRepo.AssertNotCalled(suite.T(), "CloseAccount")
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_AlreadyClosed() {
	ctx := context.Background()
	user := suite.activeUser()
	accountNumber := "1000000003"

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("FindAccountByNumber", ctx, accountNumber).Return(&domain.Account{
		AccountNumber: accountNumber,
		OwnerUserID:   user.UserID,
		Status:        domain.AccountClosed,
	}, nil).Once()

	_, err := suite.service.DeleteAccount(ctx, user.UserID, accountNumber)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyClosed)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BalanceNotEmpty() {
	ctx := context.Background()
	user := suite.activeUser()
	accountNumber := "1000000004"

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("FindAccountByNumber", ctx, accountNumber).Return(&domain.Account{
		AccountNumber: accountNumber,
		OwnerUserID:   user.UserID,
		Balance:       250,
		Status:        domain.AccountActive,
	}, nil).Once()

	_, err := suite.service.DeleteAccount(ctx, user.UserID, accountNumber)

	suite.Require().ErrorIs(err, apperrors.ErrBalanceNotEmpty)
	suite.mockAcctRepo.AssertNotCalled(suite.T(), "CloseAccount")
}

func (suite *AccountServiceTestSuite) TestListActiveAccounts_EmptyIsNotNil() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockAcctRepo.On("ListActiveAccountsByUser", ctx, user.UserID).Return(nil, nil).Once()

	accounts, err := suite.service.ListActiveAccounts(ctx, user.UserID)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Len(accounts, 0)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAcctRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrAccountNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.Nil(account)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
