package handler

import (
	"github.com/rs/zerolog"

	"usergraph/internal/app/db"
	"usergraph/internal/configs"
	"usergraph/internal/graph"
	"usergraph/internal/pkg/auth/jwt"
)

type AppDeps struct {
	Config   *configs.AppConfig
	Logger   zerolog.Logger
	Accounts graph.AccountService
	Store    db.Store
	Issuer   *jwt.Issuer
}
