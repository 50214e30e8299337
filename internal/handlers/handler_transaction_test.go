package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/core/services"
	"github.com/yangsb/account-ledger/internal/handlers"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) UseBalance(ctx context.Context, userID string, accountNumber string, amount int64) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CancelBalance(ctx context.Context, transactionID string, accountNumber string, amount int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvc = (*MockTransactionService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, name string) (*domain.AccountUser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountUser), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.AccountUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountUser), args.Error(1)
}

var _ portssvc.UserSvc = (*MockUserService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, initialBalance int64) (*domain.Account, error) {
	args := m.Called(ctx, userID, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvc = (*MockAccountService)(nil)

// --- Test Suite Setup ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockTxn *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockTxn = new(MockTransactionService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &services.ServicesContainer{
		UserSvc:        new(MockUserService),
		AccountSvc:     new(MockAccountService),
		TransactionSvc: suite.mockTxn,
	})
}

func (suite *TransactionHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestUseBalance_Success() {
	userID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockTxn.On("UseBalance", mock.Anything, userID, "1000000000", int64(500)).
		Return(&domain.Transaction{
			TransactionID: txnID,
			AccountNumber: "1000000000",
			Kind:          domain.KindUse,
			Result:        domain.ResultSuccess,
			Amount:        500,
			PostBalance:   4500,
			OccurredAt:    time.Now().UTC(),
		}, nil).Once()

	w := suite.postJSON("/api/v1/transaction/use", gin.H{
		"userId":        userID,
		"accountNumber": "1000000000",
		"amount":        500,
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txnID, resp["transactionId"])
	suite.Equal("SUCCESS", resp["transactionResult"])
	suite.Equal("1000000000", resp["accountNumber"])
	suite.mockTxn.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUseBalance_MalformedAccountNumber() {
	w := suite.postJSON("/api/v1/transaction/use", gin.H{
		"userId":        uuid.NewString(),
		"accountNumber": "12345", // not ten digits
		"amount":        500,
	})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INVALID_REQUEST", resp["errorCode"])
	suite.mockTxn.AssertNotCalled(suite.T(), "UseBalance")
}

func (suite *TransactionHandlerTestSuite) TestUseBalance_InsufficientBalance() {
	userID := uuid.NewString()

	suite.mockTxn.On("UseBalance", mock.Anything, userID, "1000000000", int64(500)).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := suite.postJSON("/api/v1/transaction/use", gin.H{
		"userId":        userID,
		"accountNumber": "1000000000",
		"amount":        500,
	})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("AMOUNT_EXCEED_BALANCE", resp["errorCode"])
}

func (suite *TransactionHandlerTestSuite) TestUseBalance_LockTimeoutMapsToConflict() {
	userID := uuid.NewString()

	suite.mockTxn.On("UseBalance", mock.Anything, userID, "1000000000", int64(500)).
		Return(nil, apperrors.ErrLockTimeout).Once()

	w := suite.postJSON("/api/v1/transaction/use", gin.H{
		"userId":        userID,
		"accountNumber": "1000000000",
		"amount":        500,
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCancelBalance_Success() {
	originalID := uuid.NewString()
	cancelID := uuid.NewString()

	suite.mockTxn.On("CancelBalance", mock.Anything, originalID, "1000000000", int64(500)).
		Return(&domain.Transaction{
			TransactionID:        cancelID,
			AccountNumber:        "1000000000",
			Kind:                 domain.KindCancel,
			Result:               domain.ResultSuccess,
			Amount:               500,
			PostBalance:          5000,
			RelatedTransactionID: &originalID,
			OccurredAt:           time.Now().UTC(),
		}, nil).Once()

	w := suite.postJSON("/api/v1/transaction/cancel", gin.H{
		"transactionId": originalID,
		"accountNumber": "1000000000",
		"amount":        500,
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(cancelID, resp["transactionId"])
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()

	suite.mockTxn.On("QueryTransaction", mock.Anything, txnID).
		Return(nil, apperrors.ErrTransactionNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/"+txnID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TRANSACTION_NOT_FOUND", resp["errorCode"])
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_IncludesType() {
	txnID := uuid.NewString()

	suite.mockTxn.On("QueryTransaction", mock.Anything, txnID).
		Return(&domain.Transaction{
			TransactionID: txnID,
			AccountNumber: "1000000000",
			Kind:          domain.KindUse,
			Result:        domain.ResultFail,
			Amount:        500,
			OccurredAt:    time.Now().UTC(),
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transaction/"+txnID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USE", resp["transactionType"])
	suite.Equal("FAIL", resp["transactionResult"])
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
