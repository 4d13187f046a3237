package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"usergraph/internal/app/user"
)

// IsUniqueViolation checks if the error is a unique constraint violation:
// PostgreSQL code 23505 or SQLITE_CONSTRAINT_UNIQUE.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsTransient reports whether a read failed in a way worth repeating: the connection
// could not be made, the statement was never sent, or it timed out.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return IsSafeToRetryWrite(err) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded)
}

// IsSafeToRetryWrite reports whether a write failed before the statement could take effect,
// so repeating it cannot duplicate the row. A timed-out INSERT may have committed and is
// not included.
func IsSafeToRetryWrite(err error) bool {
	if err == nil {
		return false
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}

	return false
}

// classifyRead wraps a failed read with the user package sentinel it maps to.
func classifyRead(op string, err error) error {
	if IsTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, user.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classifyWrite wraps a failed write with the user package sentinel it maps to.
func classifyWrite(op string, err error) error {
	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, user.ErrUsernameTaken, err)
	case IsSafeToRetryWrite(err):
		return fmt.Errorf("%s: %w: %w", op, user.ErrTransient, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
