package apperrors

import "fmt"

// AppError is the error type surfaced by the core services. Every business-rule
// violation carries a stable machine-readable code that the HTTP boundary maps
// 1:1 to a transport response without reinterpreting it.
type AppError struct {
	Code    string
	Message string
	Err     error // optional underlying cause, not exposed to callers
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code, so errors.Is(err, ErrUserNotFound) works on
// wrapped and freshly constructed instances alike.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an AppError with the given code and description.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches an underlying cause to a sentinel, keeping its code.
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// Wrapf attaches a cause and a more specific description, keeping the code.
func Wrapf(sentinel *AppError, err error, format string, args ...any) *AppError {
	return &AppError{Code: sentinel.Code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Sentinel errors for every terminal outcome of the core. Codes follow the
// upstream wire contract and must not change between releases.
var (
	ErrUserNotFound        = New("USER_NOT_FOUND", "user not found")
	ErrAccountNotFound     = New("ACCOUNT_NOT_FOUND", "account not found")
	ErrOwnerMismatch       = New("USER_ACCOUNT_UNMATCH", "user is not the owner of the account")
	ErrAlreadyClosed       = New("ACCOUNT_ALREADY_UNREGISTERED", "account is already closed")
	ErrBalanceNotEmpty     = New("BALANCE_NOT_EMPTY", "account balance is not empty")
	ErrMaxAccountsExceeded = New("MAX_ACCOUNT_PER_USER_10", "user already holds the maximum number of accounts")
	ErrAmountOutOfRange    = New("AMOUNT_OUT_OF_RANGE", "transaction amount is out of the allowed range")
	ErrInsufficientBalance = New("AMOUNT_EXCEED_BALANCE", "transaction amount exceeds account balance")
	ErrTransactionNotFound = New("TRANSACTION_NOT_FOUND", "transaction not found")
	ErrAccountTxnMismatch  = New("TRANSACTION_ACCOUNT_UNMATCH", "transaction does not belong to the account")
	ErrAmountMismatch      = New("CANCEL_MUST_FULLY", "cancel amount must match the original transaction amount")
	ErrCancelWindowExpired = New("TOO_OLD_ORDER_TO_CANCEL", "transaction is too old to cancel")
	ErrAlreadyCanceled     = New("TRANSACTION_ALREADY_CANCELED", "transaction was already canceled")
	ErrLockTimeout         = New("TRANSACTION_LOCK_TIMEOUT", "could not acquire account lock in time")
	ErrInvalidRequest      = New("INVALID_REQUEST", "invalid request")
	ErrInternal            = New("INTERNAL_SERVER_ERROR", "internal server error")
)
