package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ledger error taxonomy. Callers match with errors.Is.
var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrRecordNotFound        = errors.New("payment record not found")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrConversionUnavailable = errors.New("currency conversion unavailable")
	ErrGateway               = errors.New("payment gateway error")
	ErrPersistenceConflict   = errors.New("persistence conflict")
	ErrInvariantViolation    = errors.New("ledger invariant violation")
	ErrInvalidMovement       = errors.New("invalid movement")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	ErrNotReversible         = errors.New("transaction is not reversible")
	ErrAlreadyReversed       = errors.New("transaction already reversed")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrWalletExists          = errors.New("wallet already exists")
	ErrDuplicateReference    = errors.New("duplicate transaction reference")
)

// Postgres SQLSTATE codes the ledger reacts to.
const (
	PGUniqueViolation      = "23505"
	PGForeignKeyViolation  = "23503"
	PGCheckViolation       = "23514"
	PGSerializationFailure = "40001"
	PGDeadlockDetected     = "40P01"
	PGLockNotAvailable     = "55P03"
)

// ParsePGErrorCode returns the SQLSTATE of a wrapped *pgconn.PgError, or "".
func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return ParsePGErrorCode(err) == PGUniqueViolation
}

// IsRetryable reports whether err is a transient conflict that justifies
// re-running the whole database transaction.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrPersistenceConflict) {
		return true
	}
	switch ParsePGErrorCode(err) {
	case PGSerializationFailure, PGDeadlockDetected, PGLockNotAvailable:
		return true
	}
	return false
}
