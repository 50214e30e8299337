package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portsrepo "github.com/yangsb/account-ledger/internal/core/ports/repositories"
	"github.com/yangsb/account-ledger/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:        d.TransactionID,
		AccountNumber:        d.AccountNumber,
		Kind:                 string(d.Kind),
		Result:               string(d.Result),
		Amount:               d.Amount,
		RelatedTransactionID: d.RelatedTransactionID,
		OccurredAt:           d.OccurredAt,
	}
	if d.Result == domain.ResultSuccess {
		pb := d.PostBalance
		m.PostBalance = &pb
	}
	return m
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:        m.TransactionID,
		AccountNumber:        m.AccountNumber,
		Kind:                 domain.TransactionKind(m.Kind),
		Result:               domain.TransactionResult(m.Result),
		Amount:               m.Amount,
		RelatedTransactionID: m.RelatedTransactionID,
		OccurredAt:           m.OccurredAt,
	}
	if m.PostBalance != nil {
		d.PostBalance = *m.PostBalance
	}
	return d
}

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, account_number, kind, result, amount, post_balance, related_transaction_id, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// SaveTransaction appends a ledger record without touching balances. FAIL
// records land here with whatever account number the caller supplied; there
// is deliberately no foreign key from transactions to accounts.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.AccountNumber,
		m.Kind,
		m.Result,
		m.Amount,
		m.PostBalance,
		m.RelatedTransactionID,
		m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransactionWithBalance applies balanceDelta and appends the SUCCESS
// record in one database transaction. The balance guard in the UPDATE keeps
// the non-negativity invariant even if a caller slipped past validation, and
// the returned record carries the post-balance actually committed.
func (r *PgxTransactionRepository) SaveTransactionWithBalance(ctx context.Context, txn domain.Transaction, balanceDelta int64) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_number = $1 AND balance + $2 >= 0
		RETURNING balance;
	`
	var postBalance int64
	err = tx.QueryRow(ctx, updateQuery, txn.AccountNumber, balanceDelta, txn.OccurredAt).Scan(&postBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the account vanished or the delta would go negative.
			return nil, apperrors.Wrapf(apperrors.ErrInsufficientBalance, nil,
				"balance update rejected for account %s", txn.AccountNumber)
		}
		return nil, fmt.Errorf("failed to update balance for account %s: %w", txn.AccountNumber, err)
	}

	txn.PostBalance = postBalance
	m := toModelTransaction(txn)
	_, err = tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.AccountNumber,
		m.Kind,
		m.Result,
		m.Amount,
		m.PostBalance,
		m.RelatedTransactionID,
		m.OccurredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByID retrieves a ledger record, FAIL results included.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_number, kind, result, amount, post_balance, related_transaction_id, occurred_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.AccountNumber,
		&m.Kind,
		&m.Result,
		&m.Amount,
		&m.PostBalance,
		&m.RelatedTransactionID,
		&m.OccurredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// HasSuccessfulCancel reports whether a SUCCESS CANCEL row already references
// the given USE transaction. A partial unique index on the table enforces the
// same at-most-one property at the store boundary.
func (r *PgxTransactionRepository) HasSuccessfulCancel(ctx context.Context, useTransactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE related_transaction_id = $1 AND kind = $2 AND result = $3
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, useTransactionID, domain.KindCancel, domain.ResultSuccess).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing cancel of %s: %w", useTransactionID, err)
	}
	return exists, nil
}
