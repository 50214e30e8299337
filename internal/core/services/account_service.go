package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portsrepo "github.com/yangsb/account-ledger/internal/core/ports/repositories"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/locking"
)

// accountService implements the AccountSvc interface.
type accountService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	accountRepo portsrepo.AccountRepository
	locks       locking.Manager
}

// NewAccountService creates a new account service. The lock manager must be
// the same instance the transaction processor uses, so account closure and
// balance movement serialize on the same per-account lease.
func NewAccountService(userRepo portsrepo.UserRepository, accountRepo portsrepo.AccountRepository, locks locking.Manager) portssvc.AccountSvc {
	return &accountService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		locks:       locks,
	}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, initialBalance int64) (*domain.Account, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.LogError(ctx, err, "Failed to look up user for account creation", slog.String("user_id", userID))
		}
		return nil, err
	}

	if initialBalance < 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, nil, "initial balance must not be negative")
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		OwnerUserID:  userID,
		Balance:      initialBalance,
		Status:       domain.AccountActive,
		RegisteredAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// The repository assigns the account number and enforces the active-account
	// cap inside one store transaction, keeping both correct across processes.
	created, err := s.accountRepo.CreateAccount(ctx, account, domain.MaxAccountsPerUser)
	if err != nil {
		if errors.Is(err, apperrors.ErrMaxAccountsExceeded) {
			s.LogWarn(ctx, "Account cap reached", slog.String("user_id", userID))
		} else {
			s.LogError(ctx, err, "Failed to create account", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("user_id", userID),
		slog.String("account_number", created.AccountNumber))
	return created, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountNumber string) (*domain.Account, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	// Closure takes the same lease as balance movement: without it a concurrent
	// use could pass its balance check against an account this call is about to
	// close, or this call could read a stale zero balance.
	lease, err := s.locks.Acquire(ctx, accountNumber)
	if err != nil {
		s.LogWarn(ctx, "Could not acquire account lease for closure", slog.String("account_number", accountNumber))
		return nil, err
	}
	defer lease.Release()

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if account.OwnerUserID != userID {
		return nil, apperrors.ErrOwnerMismatch
	}
	if account.Status == domain.AccountClosed {
		return nil, apperrors.ErrAlreadyClosed
	}
	if account.Balance != 0 {
		return nil, apperrors.ErrBalanceNotEmpty
	}

	closedAt := time.Now().UTC()
	if err := s.accountRepo.CloseAccount(ctx, accountNumber, closedAt); err != nil {
		s.LogError(ctx, err, "Failed to close account", slog.String("account_number", accountNumber))
		return nil, err
	}

	account.Status = domain.AccountClosed
	account.ClosedAt = &closedAt
	account.LastUpdatedAt = closedAt

	s.LogInfo(ctx, "Account closed successfully",
		slog.String("user_id", userID),
		slog.String("account_number", accountNumber))
	return account, nil
}

func (s *accountService) ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListActiveAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active accounts", slog.String("user_id", userID))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	s.LogDebug(ctx, "Active accounts listed", slog.String("user_id", userID), slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}
