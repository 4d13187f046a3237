/*
Package configs is responsible for loading and parsing the application's configuration settings.

Values come from environment variables, optionally seeded from a .env file in the working
directory. Defaults favor a local development setup; outside development a signing secret
must be supplied explicitly.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"usergraph/internal/pkg/randx"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production test"`
	Port        int    `env:"PORT" envDefault:"8080" validate:"min=1024,max=65535"`

	// Security Settings
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	JWTSecret      string        `env:"JWT_SECRET" validate:"required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"23h" validate:"gt=0"`
	PasswordHasher string        `env:"PASSWORD_HASHER" envDefault:"argon2id" validate:"oneof=argon2id bcrypt"`

	// Store Settings
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite memory"`
	DatabaseDSN string `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/usergraph.db" validate:"required_if=StoreDriver sqlite"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"usergraph"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	// Logging Settings
	LogDir   string `env:"LOG_DIR" envDefault:"logs"`
	LogLevel string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`

	// GraphQL Settings
	GraphiQL           string `env:"GRAPHIQL_ENABLED" validate:"omitempty,boolean"`
	ExposePasswordHash bool   `env:"EXPOSE_PASSWORD_HASH" envDefault:"false"`

	// GraphiQLEnabled is resolved from GraphiQL and the environment.
	GraphiQLEnabled bool

	// GeneratedSecret reports that JWTSecret was generated for this process.
	GeneratedSecret bool
}

// IsDevelopment reports whether the application runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadConfig reads and parses the application configuration from the environment.
// A missing .env file is not an error.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.AllowedOrigins = trimOrigins(cfg.AllowedOrigins)

	// JWTSecret
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		secret, err := randx.Secret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate development JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	// DatabaseDSN
	if cfg.DatabaseDSN == "" && cfg.StoreDriver == "postgres" {
		cfg.DatabaseDSN = cfg.buildDSN()
	}

	// LogLevel
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.IsDevelopment() {
			cfg.LogLevel = "debug"
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// GraphiQLEnabled
	cfg.GraphiQLEnabled = cfg.IsDevelopment()
	if cfg.GraphiQL != "" {
		enabled, err := strconv.ParseBool(cfg.GraphiQL)
		if err != nil {
			return nil, fmt.Errorf("invalid GRAPHIQL_ENABLED environment variable: %w", err)
		}
		cfg.GraphiQLEnabled = enabled
	}

	return cfg, nil
}

func (c *AppConfig) buildDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}

func trimOrigins(origins []string) []string {
	trimmed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if o := strings.TrimSpace(origin); o != "" {
			trimmed = append(trimmed, o)
		}
	}
	return trimmed
}
