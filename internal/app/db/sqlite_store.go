package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"usergraph/internal/app/user"
)

// SQLiteStore implements Store on a single-connection SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps a database opened by OpenSQLite.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// FindByUsername returns (nil, nil) when no user matches.
func (s *SQLiteStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, username, name, password_hash, created_at
FROM users
WHERE username = ?`,
		username,
	)

	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyRead("get user by username", err)
	}
	return &u, nil
}

// Create inserts the user with a fresh UUID and the current UTC time.
func (s *SQLiteStore) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	u := &user.User{
		ID:           uuid.NewString(),
		Username:     nu.Username,
		Name:         nu.Name,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (id, username, name, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.Name,
		u.PasswordHash,
		u.CreatedAt,
	)
	if err != nil {
		return nil, classifyWrite("insert user", err)
	}
	return u, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
