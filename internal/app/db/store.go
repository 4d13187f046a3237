package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"usergraph/internal/app/user"
)

// Store drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Store persists users. FindByUsername returns (nil, nil) when no user matches.
// Create returns an error wrapping user.ErrUsernameTaken when the username exists
// and user.ErrTransient when the failure is safe to retry.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, nu user.NewUser) (*user.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and locates the backend.
type Options struct {
	Driver     string
	DSN        string
	SQLitePath string
}

// Open connects to the configured backend and brings its schema up to date.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, error) {
	switch opts.Driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.DSN, logger)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil

	case DriverSQLite:
		sqlDB, err := OpenSQLite(ctx, opts.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(sqlDB), nil

	case DriverMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
