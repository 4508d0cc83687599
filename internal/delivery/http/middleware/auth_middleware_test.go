package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskbox/config"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/service"
	mockSvc "taskbox/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{CookieName: "sid"},
	}
}

func newEchoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ExtractCredential(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "some-session"})
	c, _ := newEchoContext(req)

	cred := m.ExtractCredential(c)

	assert.Equal(t, "Bearer some-token", cred.AuthorizationHeader)
	assert.Equal(t, "some-session", cred.SessionID)
}

func TestAuthMiddleware_Authenticate_AnonymousPassesThrough(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	c, _ := newEchoContext(req)

	provider.EXPECT().
		Authenticate(req.Context(), service.AuthCredential{}).
		Return(nil, nil)

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		assert.Nil(t, IdentityFrom(c))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_Authenticate_SetsIdentity(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	c, _ := newEchoContext(req)

	identity := &entity.Identity{ID: 42, Username: "alice"}
	provider.EXPECT().
		Authenticate(req.Context(), service.AuthCredential{AuthorizationHeader: "Bearer good-token"}).
		Return(identity, nil)

	err := m.Authenticate(func(c echo.Context) error {
		assert.Equal(t, identity, IdentityFrom(c))

		return nil
	})(c)

	require.NoError(t, err)
}

func TestAuthMiddleware_Authenticate_InvalidCredentialFails(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
	c, _ := newEchoContext(req)

	provider.EXPECT().
		Authenticate(req.Context(), service.AuthCredential{AuthorizationHeader: "Bearer bad-token"}).
		Return(nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to decode token"))

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler must not run for an invalid credential")

		return nil
	})(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthMiddleware_RequireAuth_RejectsAnonymous(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	c, _ := newEchoContext(req)

	provider.EXPECT().
		Authenticate(req.Context(), service.AuthCredential{}).
		Return(nil, nil)

	err := m.RequireAuth(func(c echo.Context) error {
		t.Fatal("handler must not run without identity")

		return nil
	})(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}

func TestAuthMiddleware_RequireAuth_AllowsAuthenticated(t *testing.T) {
	provider := mockSvc.NewMockIdentityProvider(t)
	m := NewAuthMiddleware(provider, newAuthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "live-session"})
	c, _ := newEchoContext(req)

	identity := &entity.Identity{ID: 42, Username: "alice"}
	provider.EXPECT().
		Authenticate(req.Context(), service.AuthCredential{SessionID: "live-session"}).
		Return(identity, nil)

	called := false
	err := m.RequireAuth(func(c echo.Context) error {
		called = true
		assert.Equal(t, identity, IdentityFrom(c))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}
