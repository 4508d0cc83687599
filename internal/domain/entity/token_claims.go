package entity

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the signed claim set of a stateless bearer token.
// It carries enough of the account record (id, username, optional email) for
// the authenticator to re-validate the claims against the live record
// without treating the token as the sole source of truth.
type TokenClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
