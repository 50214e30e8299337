package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portsrepo "github.com/yangsb/account-ledger/internal/core/ports/repositories"
	"github.com/yangsb/account-ledger/internal/models"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		OwnerUserID:   m.OwnerUserID,
		Balance:       m.Balance,
		Status:        domain.AccountStatus(m.Status),
		RegisteredAt:  m.RegisteredAt,
		ClosedAt:      m.ClosedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const accountColumns = `account_id, account_number, owner_user_id, balance, status, registered_at, closed_at, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.OwnerUserID,
		&m.Balance,
		&m.Status,
		&m.RegisteredAt,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// CreateAccount inserts the account with a freshly assigned account number.
// The owner row is locked for the duration of the transaction so the active
// count cannot change between the check and the insert, which keeps the
// per-user cap correct even with several processes on one store.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account, maxAccounts int) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var ownerID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, account.OwnerUserID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock owner row for %s: %w", account.OwnerUserID, err)
	}

	var activeCount int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM accounts WHERE owner_user_id = $1 AND status = $2;`,
		account.OwnerUserID, domain.AccountActive,
	).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count active accounts for %s: %w", account.OwnerUserID, err)
	}
	if activeCount >= maxAccounts {
		return nil, apperrors.ErrMaxAccountsExceeded
	}

	// account_number defaults to the next value of a dedicated sequence, so
	// numbers are globally unique and never reused.
	query := `
		INSERT INTO accounts (account_id, owner_user_id, balance, status, registered_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_number;
	`
	var accountNumber string
	err = tx.QueryRow(ctx, query,
		account.AccountID,
		account.OwnerUserID,
		account.Balance,
		account.Status,
		account.RegisteredAt,
		account.CreatedAt,
		account.LastUpdatedAt,
	).Scan(&accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account for %s: %w", account.OwnerUserID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	account.AccountNumber = accountNumber
	return &account, nil
}

// FindAccountByID retrieves an account by its internal identity.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByNumber retrieves an account by its external account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return acc, nil
}

// ListActiveAccountsByUser returns ACTIVE accounts only, oldest first.
func (r *PgxAccountRepository) ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_user_id = $1 AND status = $2
		ORDER BY registered_at, account_number;
	`
	rows, err := r.Pool.Query(ctx, query, userID, domain.AccountActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts for %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for %s: %w", userID, err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for %s: %w", userID, err)
	}
	return accounts, nil
}

// CloseAccount transitions an ACTIVE account with zero balance to CLOSED.
// The guard in the WHERE clause re-checks both conditions so the row cannot
// be closed twice or closed with money left on it, whatever the caller read.
func (r *PgxAccountRepository) CloseAccount(ctx context.Context, accountNumber string, closedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, closed_at = $3, last_updated_at = $3
		WHERE account_number = $1 AND status = $4 AND balance = 0;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountNumber, domain.AccountClosed, closedAt, domain.AccountActive)
	if err != nil {
		return fmt.Errorf("failed to close account %s: %w", accountNumber, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Work out which precondition failed.
		acc, findErr := r.FindAccountByNumber(ctx, accountNumber)
		if findErr != nil {
			return findErr
		}
		if acc.Status == domain.AccountClosed {
			return apperrors.ErrAlreadyClosed
		}
		return apperrors.ErrBalanceNotEmpty
	}
	return nil
}
