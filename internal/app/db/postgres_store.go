package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbc "usergraph/internal/app/db/sqlc"
	"usergraph/internal/app/user"
)

// PostgresStore implements Store on a pgx pool using the sqlc queries.
type PostgresStore struct {
	pool    *pgxpool.Pool
	queries *dbc.Queries
}

// NewPostgresStore wraps an already migrated pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		queries: dbc.New(pool),
	}
}

// FindByUsername returns (nil, nil) when no user matches.
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	row, err := s.queries.GetUserByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyRead("get user by username", err)
	}
	return fromRow(row), nil
}

// Create inserts the user; Postgres assigns the id and created_at.
func (s *PostgresStore) Create(ctx context.Context, nu user.NewUser) (*user.User, error) {
	row, err := s.queries.CreateUser(ctx, dbc.CreateUserParams{
		Username:     nu.Username,
		Name:         nu.Name,
		PasswordHash: nu.PasswordHash,
	})
	if err != nil {
		return nil, classifyWrite("insert user", err)
	}
	return fromRow(row), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func fromRow(row dbc.User) *user.User {
	return &user.User{
		ID:           row.ID.String(),
		Username:     row.Username,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}
