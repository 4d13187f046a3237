package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// UserIdentityExpiration defines the default validity window of identity tokens.
	UserIdentityExpiration = 23 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "usergraph"
)

// GenerateToken creates and signs a new JWT Token string based on the provided Payload struct.
// The validity window starts at now and lasts for duration.
func GenerateToken(payload *Payload, secretKey string, now time.Time, duration time.Duration) (string, error) {
	payload.StandardClaims = jwt.StandardClaims{
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	return token.SignedString([]byte(secretKey))
}

// ParseToken parses and validates the JWT Token string using the provided secretKey.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

// Issuer signs and verifies identity tokens with a process-wide secret.
// It is safe for concurrent use.
type Issuer struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. A non-positive ttl falls back to UserIdentityExpiration.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = UserIdentityExpiration
	}
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the validity window of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token carrying the claim id = subject.
func (i *Issuer) Issue(subject string) (string, error) {
	return GenerateToken(&Payload{ID: subject}, i.secret, i.now(), i.ttl)
}

// Parse verifies tokenString and returns its claims.
func (i *Issuer) Parse(tokenString string) (*Payload, error) {
	return ParseToken(tokenString, i.secret)
}
