package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"usergraph/internal/pkg/errs"
	"usergraph/internal/pkg/resp"
)

const healthPingTimeout = 2 * time.Second

// HandleHealth reports whether the user store is reachable.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := deps.Store.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Health check: store ping failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrServiceUnavailable))
			return
		}

		zerolog.Ctx(r.Context()).Debug().Msg("Health check endpoint hit")

		data := map[string]string{
			"status":  "ok",
			"service": "usergraph",
			"store":   deps.Config.StoreDriver,
		}
		resp.RespondSuccess(w, r, data)
	}
}
