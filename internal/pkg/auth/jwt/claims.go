package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims.
// It embeds the registered claims (exp, iat, iss) at the top level of the token
// and adds the identity claim.
type Payload struct {
	// StandardClaims carries Exp (Expiration), Iat (Issued At), and Iss (Issuer).
	// These are checked by ParseToken.
	jwt.StandardClaims

	// ID identifies the token holder. For registration tokens it is the username.
	ID string `json:"id"`
}
