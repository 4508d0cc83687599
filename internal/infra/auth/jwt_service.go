// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskbox/config"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/service"
	"taskbox/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Decoded symmetric signing secret.
	ttl    time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// The configured secret is base64-encoded and decoded once here; it is never
// logged or echoed back in errors.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	secret, err := base64.StdEncoding.DecodeString(cfg.SecretKey.Token)
	if err != nil {
		return nil, errors.Wrap(err, "jwt secret is not valid base64")
	}

	ttl := time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{secret: secret, ttl: ttl}, nil
}

// Issue creates a signed token carrying the user's id, username and email.
func (s *jwtService) Issue(user *entity.User) (string, error) {
	now := time.Now()
	claims := &entity.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies a token string and returns its claims. All failure modes
// collapse into ErrTokenInvalid: a claim set is either fully trusted or not
// at all.
func (s *jwtService) Decode(tokenString string) (*entity.TokenClaims, error) {
	claims := &entity.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		// Signature, expiry and format failures are deliberately
		// indistinguishable to the caller.
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to decode token")
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
