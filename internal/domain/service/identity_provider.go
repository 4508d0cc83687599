package service

import (
	"context"
	"time"

	"taskbox/internal/domain/entity"
)

// AuthCredential carries the raw credential material extracted from a
// request: the session cookie value and the Authorization header. Which of
// the two is consulted depends on the configured strategy.
type AuthCredential struct {
	SessionID           string // Value of the session cookie, empty when absent.
	AuthorizationHeader string // Raw Authorization header, empty when absent.
}

// CredentialKind tells the delivery layer how to hand an issued credential
// back to the client.
type CredentialKind string

const (
	// CredentialKindSession means Secret is a session id to be set as a cookie.
	CredentialKindSession CredentialKind = "session"
	// CredentialKindToken means Secret is a bearer token for the response body.
	CredentialKindToken CredentialKind = "token"
)

// IssuedCredential is the identity artifact produced at registration/login.
type IssuedCredential struct {
	Kind   CredentialKind
	Secret string
	TTL    time.Duration
}

// IdentityProvider is the single authentication capability. Two mutually
// exclusive implementations exist, session-backed and token-backed, selected
// once at process configuration time; a deployment runs exactly one.
type IdentityProvider interface {
	// Authenticate resolves the calling identity from the request's
	// credential material. An absent credential is the routine anonymous
	// case and yields (nil, nil); callers that require identity convert that
	// to an authentication failure themselves. Errors are reserved for
	// malformed or invalid credentials and store failures.
	Authenticate(ctx context.Context, cred AuthCredential) (*entity.Identity, error)

	// Issue creates a fresh identity artifact for the user.
	Issue(ctx context.Context, user *entity.User) (*IssuedCredential, error)

	// Revoke invalidates the presented credential server-side. For the
	// stateless token strategy there is nothing to invalidate and Revoke
	// succeeds without effect.
	Revoke(ctx context.Context, cred AuthCredential) error
}
