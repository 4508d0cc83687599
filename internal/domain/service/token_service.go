package service

import (
	"time"

	"taskbox/internal/domain/entity"
)

// TokenService defines the interface for issuing and decoding signed tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token embedding the user's id, username and
	// email, expiring after the configured TTL.
	Issue(user *entity.User) (string, error)

	// Decode verifies a token string and returns its claims. Malformed
	// encoding, signature mismatch and expiry all fail atomically: claims
	// from a token that fails any check are never returned.
	Decode(tokenString string) (*entity.TokenClaims, error)

	// TTL returns the configured token lifetime.
	TTL() time.Duration
}
