// Package uow runs a closure inside one database transaction. Repositories
// discover the transaction through the context (see GetTx), so a whole money
// movement commits or rolls back as one.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// withTx stores a transaction in the context
func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTx retrieves the transaction from the context. Returns nil if not present.
func GetTx(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// TxBeginner is implemented by *sqlx.DB.
type TxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// UnitOfWork begins, commits and retries database transactions.
type UnitOfWork struct {
	db          TxBeginner
	maxAttempts int
	backoff     time.Duration
	isolation   sql.IsolationLevel
}

// Option configures a UnitOfWork.
type Option func(*UnitOfWork)

// WithMaxAttempts bounds how many times a conflicting transaction is re-run.
func WithMaxAttempts(n int) Option {
	return func(u *UnitOfWork) {
		if n > 0 {
			u.maxAttempts = n
		}
	}
}

// WithBackoff sets the base delay between attempts; attempt n waits n*d.
func WithBackoff(d time.Duration) Option {
	return func(u *UnitOfWork) {
		u.backoff = d
	}
}

// WithIsolation sets the isolation level of new transactions.
func WithIsolation(level sql.IsolationLevel) Option {
	return func(u *UnitOfWork) {
		u.isolation = level
	}
}

// ParseIsolation maps a config value such as "read_committed" or
// "serializable" to an isolation level.
func ParseIsolation(name string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(name))) {
	case "", "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unsupported isolation level %q", name)
	}
}

// New creates a UnitOfWork over db.
func New(db TxBeginner, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		db:          db,
		maxAttempts: 3,
		backoff:     20 * time.Millisecond,
		isolation:   sql.LevelReadCommitted,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Do runs fn inside a transaction. If ctx already carries a transaction, fn
// joins it and the outer Do owns commit and rollback. Serialization failures,
// deadlocks, lock timeouts and ErrPersistenceConflict re-run fn from scratch
// up to the configured number of attempts.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTx(ctx) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		err = u.once(ctx, fn)
		if err == nil || !xerrors.IsRetryable(err) {
			return err
		}

		if attempt == u.maxAttempts {
			break
		}

		logger.Log.Warnw("transaction conflict, retrying",
			"attempt", attempt,
			"max_attempts", u.maxAttempts,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * u.backoff):
		}
	}

	if errors.Is(err, xerrors.ErrPersistenceConflict) {
		return err
	}
	return fmt.Errorf("%w: %v", xerrors.ErrPersistenceConflict, err)
}

func (u *UnitOfWork) once(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := u.db.BeginTxx(ctx, &sql.TxOptions{Isolation: u.isolation})
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
