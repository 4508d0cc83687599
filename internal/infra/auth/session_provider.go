package auth

import (
	"context"
	"log/slog"
	"time"

	"taskbox/config"
	"taskbox/internal/domain/entity"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	"taskbox/internal/errors"
)

// sessionProvider is the stateful IdentityProvider: identity is resolved
// through an opaque cookie-carried session id held in a shared store.
type sessionProvider struct {
	sessions repository.SessionRepository
	userRepo repository.UserRepository
	ttl      time.Duration
	logger   *slog.Logger
}

// NewSessionProvider is the constructor for sessionProvider.
func NewSessionProvider(cfg *config.Config, sessions repository.SessionRepository, userRepo repository.UserRepository, logger *slog.Logger) service.IdentityProvider {
	return &sessionProvider{
		sessions: sessions,
		userRepo: userRepo,
		ttl:      cfg.Auth.SessionTTL,
		logger:   logger,
	}
}

// Authenticate resolves identity from the session cookie. A missing cookie,
// a destroyed or expired session, and a session whose account has since been
// deleted are all the routine anonymous outcome. Store unreachability is
// not: it propagates as a distinct failure and is never read as "no session".
func (p *sessionProvider) Authenticate(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error) {
	if cred.SessionID == "" {
		return nil, nil
	}

	userID, err := p.sessions.Load(ctx, cred.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	user, err := p.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The account behind this session is gone; the session is dead
			// weight. Treat as anonymous rather than failing the request.
			p.logger.Warn("Session references deleted account", slog.Int64("userID", userID))

			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load account for session")
	}

	return user.AsIdentity(), nil
}

// Issue creates a fresh server-side session and hands back its id for the
// delivery layer to set as a cookie.
func (p *sessionProvider) Issue(ctx context.Context, user *entity.User) (*service.IssuedCredential, error) {
	sessionID, err := p.sessions.Create(ctx, user.ID, p.ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return &service.IssuedCredential{
		Kind:   service.CredentialKindSession,
		Secret: sessionID,
		TTL:    p.ttl,
	}, nil
}

// Revoke destroys the presented session. The server-side destruction is the
// authoritative state change; a request without a cookie has nothing to
// destroy and succeeds.
func (p *sessionProvider) Revoke(ctx context.Context, cred service.AuthCredential) error {
	if cred.SessionID == "" {
		return nil
	}

	if err := p.sessions.Destroy(ctx, cred.SessionID); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}

	return nil
}
