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

// TransactionConfig carries the tunable business parameters of the
// transaction processor.
type TransactionConfig struct {
	// MinAmount and MaxAmount bound a single transaction, in minor units.
	MinAmount int64
	MaxAmount int64
	// CancelWindow is how long after a use it may still be canceled.
	CancelWindow time.Duration
	// UseDelay is a simulated processing delay applied inside the lease before
	// validation. It exists to make lock contention observable under load and
	// is zero in production.
	UseDelay time.Duration
}

// DefaultTransactionConfig returns the stock amount bounds and the one-year
// cancellation window.
func DefaultTransactionConfig() TransactionConfig {
	return TransactionConfig{
		MinAmount:    10,
		MaxAmount:    1_000_000_000,
		CancelWindow: 365 * 24 * time.Hour,
	}
}

// transactionService implements the TransactionSvc interface. Both entry
// points run their validation and balance mutation under an exclusively-held
// lease keyed by account number, and append exactly one ledger record per
// attempt, success or failure.
type transactionService struct {
	BaseService
	userRepo portsrepo.UserRepository
	acctRepo portsrepo.AccountRepository
	txnRepo  portsrepo.TransactionRepository
	locks    locking.Manager
	cfg      TransactionConfig
}

// NewTransactionService creates the transaction processor.
func NewTransactionService(
	userRepo portsrepo.UserRepository,
	acctRepo portsrepo.AccountRepository,
	txnRepo portsrepo.TransactionRepository,
	locks locking.Manager,
	cfg TransactionConfig,
) portssvc.TransactionSvc {
	if cfg.MinAmount <= 0 {
		cfg.MinAmount = DefaultTransactionConfig().MinAmount
	}
	if cfg.MaxAmount <= 0 {
		cfg.MaxAmount = DefaultTransactionConfig().MaxAmount
	}
	if cfg.CancelWindow <= 0 {
		cfg.CancelWindow = DefaultTransactionConfig().CancelWindow
	}
	return &transactionService{
		userRepo: userRepo,
		acctRepo: acctRepo,
		txnRepo:  txnRepo,
		locks:    locks,
		cfg:      cfg,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

// UseBalance debits amount from the account after validating the request
// under the account's lease. Any business-rule failure still appends a FAIL
// record before the error is surfaced; a lock timeout appends nothing because
// no validation was reached.
func (s *transactionService) UseBalance(ctx context.Context, userID string, accountNumber string, amount int64) (*domain.Transaction, error) {
	lease, err := s.locks.Acquire(ctx, accountNumber)
	if err != nil {
		s.LogWarn(ctx, "Could not acquire account lease for use",
			slog.String("account_number", accountNumber))
		return nil, err
	}
	defer lease.Release()

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	if err := s.validateUseBalance(ctx, userID, accountNumber, amount); err != nil {
		s.appendFailRecord(ctx, domain.KindUse, accountNumber, amount)
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountNumber: accountNumber,
		Kind:          domain.KindUse,
		Result:        domain.ResultSuccess,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	}

	// Debit and ledger append are one durable unit; the deferred release runs
	// after this returns, so the next lease holder sees the committed state.
	saved, err := s.txnRepo.SaveTransactionWithBalance(ctx, txn, -amount)
	if err != nil {
		// The store's balance guard can still refuse the debit when another
		// process not sharing this lock manager debited first. That is the
		// same business outcome as failing validation, not an internal fault.
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.appendFailRecord(ctx, domain.KindUse, accountNumber, amount)
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist use transaction",
			slog.String("account_number", accountNumber))
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.LogInfo(ctx, "Balance used",
		slog.String("account_number", accountNumber),
		slog.String("transaction_id", saved.TransactionID),
		slog.Int64("amount", amount),
		slog.Int64("post_balance", saved.PostBalance))
	return saved, nil
}

// validateUseBalance checks the business rules in order, short-circuiting on
// the first failure.
func (s *transactionService) validateUseBalance(ctx context.Context, userID, accountNumber string, amount int64) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}

	account, err := s.acctRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if account.OwnerUserID != userID {
		return apperrors.ErrOwnerMismatch
	}
	if !account.IsActive() {
		return apperrors.ErrAlreadyClosed
	}
	if amount < s.cfg.MinAmount || amount > s.cfg.MaxAmount {
		return apperrors.Wrapf(apperrors.ErrAmountOutOfRange, nil,
			"amount must be between %d and %d", s.cfg.MinAmount, s.cfg.MaxAmount)
	}
	if amount > account.Balance {
		return apperrors.ErrInsufficientBalance
	}
	return nil
}

// CancelBalance reverses a prior successful use in full. Partial cancellation
// is not supported and each use may be canceled at most once.
func (s *transactionService) CancelBalance(ctx context.Context, transactionID string, accountNumber string, amount int64) (*domain.Transaction, error) {
	lease, err := s.locks.Acquire(ctx, accountNumber)
	if err != nil {
		s.LogWarn(ctx, "Could not acquire account lease for cancel",
			slog.String("account_number", accountNumber))
		return nil, err
	}
	defer lease.Release()

	original, err := s.validateCancelBalance(ctx, transactionID, accountNumber, amount)
	if err != nil {
		s.appendFailRecord(ctx, domain.KindCancel, accountNumber, amount)
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		AccountNumber:        accountNumber,
		Kind:                 domain.KindCancel,
		Result:               domain.ResultSuccess,
		Amount:               amount,
		RelatedTransactionID: &original.TransactionID,
		OccurredAt:           time.Now().UTC(),
	}

	saved, err := s.txnRepo.SaveTransactionWithBalance(ctx, txn, amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.appendFailRecord(ctx, domain.KindCancel, accountNumber, amount)
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist cancel transaction",
			slog.String("account_number", accountNumber),
			slog.String("original_transaction_id", original.TransactionID))
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.LogInfo(ctx, "Balance use canceled",
		slog.String("account_number", accountNumber),
		slog.String("transaction_id", saved.TransactionID),
		slog.String("original_transaction_id", original.TransactionID),
		slog.Int64("post_balance", saved.PostBalance))
	return saved, nil
}

// validateCancelBalance checks the cancellation rules in order and returns
// the referenced use transaction on success.
func (s *transactionService) validateCancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*domain.Transaction, error) {
	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if original.AccountNumber != accountNumber {
		return nil, apperrors.ErrAccountTxnMismatch
	}
	if !original.IsCancelable() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, nil,
			"only a successful use transaction can be canceled")
	}
	if _, err := s.acctRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	if original.Amount != amount {
		return nil, apperrors.ErrAmountMismatch
	}
	if time.Since(original.OccurredAt) > s.cfg.CancelWindow {
		return nil, apperrors.ErrCancelWindowExpired
	}

	canceled, err := s.txnRepo.HasSuccessfulCancel(ctx, original.TransactionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if canceled {
		return nil, apperrors.ErrAlreadyCanceled
	}
	return original, nil
}

// QueryTransaction returns the ledger record, FAIL results included.
func (s *transactionService) QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			s.LogError(ctx, err, "Failed to find transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// appendFailRecord writes the compensating FAIL entry for a rejected request.
// It is best-effort and keyed by whatever account number the caller supplied:
// the write must not mask the business error it accompanies.
func (s *transactionService) appendFailRecord(ctx context.Context, kind domain.TransactionKind, accountNumber string, amount int64) {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountNumber: accountNumber,
		Kind:          kind,
		Result:        domain.ResultFail,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to append FAIL ledger record",
			slog.String("account_number", accountNumber),
			slog.String("kind", string(kind)))
	}
}

// simulateProcessing applies the configured artificial delay while the lease
// is held, so contention on the account shows up in waiting callers.
func (s *transactionService) simulateProcessing(ctx context.Context) error {
	if s.cfg.UseDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.cfg.UseDelay):
		return nil
	case <-ctx.Done():
		return apperrors.Wrap(apperrors.ErrInternal, ctx.Err())
	}
}
