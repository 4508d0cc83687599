package middleware

import (
	"taskbox/config"
	deliverycontext "taskbox/internal/delivery/context"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware resolves the calling identity through the configured
// IdentityProvider. It neither knows nor cares which strategy is active:
// it hands over both the session cookie and the Authorization header and
// lets the provider pick.
type AuthMiddleware struct {
	provider   service.IdentityProvider
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(provider service.IdentityProvider, cfg *config.Config) *AuthMiddleware {
	cookieName := ""
	if cfg.Auth != nil {
		cookieName = cfg.Auth.CookieName
	}

	return &AuthMiddleware{provider: provider, cookieName: cookieName}
}

// ExtractCredential collects the raw credential material from the request.
func (m *AuthMiddleware) ExtractCredential(c echo.Context) service.AuthCredential {
	cred := service.AuthCredential{
		AuthorizationHeader: c.Request().Header.Get(echo.HeaderAuthorization),
	}

	if m.cookieName != "" {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			cred.SessionID = cookie.Value
		}
	}

	return cred
}

// Authenticate resolves identity when a credential is present. Anonymous
// requests pass through with no identity set; invalid credentials fail the
// request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.provider.Authenticate(c.Request().Context(), m.ExtractCredential(c))
		if err != nil {
			return errors.WithStack(err)
		}

		if identity != nil {
			c.Set(string(deliverycontext.KeyIdentity), identity)
		}

		return next(c)
	}
}

// RequireAuth is Authenticate plus a hard requirement: an anonymous caller
// is rejected before the handler runs.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Authenticate(func(c echo.Context) error {
		if IdentityFrom(c) == nil {
			return domainerrors.ErrAuthRequired
		}

		return next(c)
	})
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c echo.Context) *entity.Identity {
	if identity, ok := c.Get(string(deliverycontext.KeyIdentity)).(*entity.Identity); ok {
		return identity
	}

	return nil
}
