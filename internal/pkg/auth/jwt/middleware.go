package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Define Context Key for storing the Payload struct, preventing key collisions with other packages.
type contextKey string

const (
	// ContextAuthPayloadKey is the key used to store the parsed jwt.Payload (user identity) in the request Context.
	ContextAuthPayloadKey contextKey = "auth_payload"
)

// IdentityExtractorMiddleware attempts to extract and validate a JWT from the request header.
// It injects the Payload into the Context upon success. It does NOT interrupt the request
// (no 401 response) on failure or missing token, treating the user as anonymous instead.
func IdentityExtractorMiddleware(issuer *Issuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			// Extract Token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := issuer.Parse(parts[1])
			if err != nil {
				// Token exists but is invalid (e.g., expired, wrong signature).
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Invalid or expired JWT provided, treating as anonymous")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextAuthPayloadKey, payload)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PayloadFromContext extracts the authenticated Payload from ctx.
// In contexts where IdentityExtractorMiddleware is used, a nil return means the caller is anonymous.
func PayloadFromContext(ctx context.Context) *Payload {
	payload, ok := ctx.Value(ContextAuthPayloadKey).(*Payload)

	if !ok {
		return nil
	}

	return payload
}

// GetPayloadFromContext is PayloadFromContext for an HTTP request.
func GetPayloadFromContext(r *http.Request) *Payload {
	return PayloadFromContext(r.Context())
}
