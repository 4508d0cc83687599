// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskbox/internal/domain/entity"
	"taskbox/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to log in. Login identifies the
// account by username or, when the value contains an "@", by email.
type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// --- Output DTOs ---

// AuthOutput returns the public identity and the freshly issued credential
// after a successful registration or login.
type AuthOutput struct {
	User       *entity.Identity
	Credential *service.IssuedCredential
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates an account and logs it in atomically. Any failure
	// after the user row is written rolls the whole thing back, so a
	// credential issuance error never leaves an orphaned account.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh identity artifact.
	// Every failure mode surfaces as the same invalid-credentials error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Logout revokes the presented credential server-side.
	Logout(ctx context.Context, cred service.AuthCredential) error

	// Me resolves the calling identity from the request's credential.
	// An absent credential yields (nil, nil).
	Me(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error)
}
