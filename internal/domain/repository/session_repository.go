package repository

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id has no live entry in the
// store: never created, destroyed, or passively expired. It is a routine
// outcome, not a fault; store unreachability is reported separately.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the server-side session store adapter. Identifiers are
// opaque and unguessable; the adapter generates them on Create. Every
// operation may fail because the backing store is a networked service, and
// such failures must surface as a distinct store-unavailable condition.
type SessionRepository interface {
	// Create stores a new session for the user and returns its identifier.
	// Expiry is fixed at creation time; loads never extend it.
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)

	// Load resolves a session id to the owning user id, or ErrSessionNotFound.
	Load(ctx context.Context, sessionID string) (int64, error)

	// Destroy removes the session. Destroying an absent session succeeds.
	Destroy(ctx context.Context, sessionID string) error
}
