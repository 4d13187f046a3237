package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer(testSecret, 0)
	assert.Equal(t, UserIdentityExpiration, issuer.TTL())

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	payload, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.ID)
	assert.Equal(t, TokenIssuer, payload.Issuer)
	assert.Equal(t, payload.IssuedAt+int64((23*time.Hour).Seconds()), payload.ExpiresAt)
}

func TestTokenCarriesTopLevelClaims(t *testing.T) {
	token, err := NewIssuer(testSecret, time.Hour).Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(raw, &claims))
	assert.Equal(t, "alice", claims["id"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer(testSecret, 23*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)

	var validationErr *jwt.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotZero(t, validationErr.Errors&jwt.ValidationErrorExpired)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewIssuer(testSecret, time.Hour).Issue("alice")
	require.NoError(t, err)

	_, err = NewIssuer("other-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Payload{ID: "mallory"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestIdentityExtractorMiddleware(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	valid, err := issuer.Issue("alice")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header"},
		{name: "not bearer", header: "Basic abc"},
		{name: "invalid token", header: "Bearer garbage"},
		{name: "valid token", header: "Bearer " + valid, want: "alice"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			handler := IdentityExtractorMiddleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if payload := GetPayloadFromContext(r); payload != nil {
					got = payload.ID
				}
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tc.want, got)
		})
	}
}
