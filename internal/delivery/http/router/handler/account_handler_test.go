package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskbox/config"
	"taskbox/internal/delivery/http/validator"
	"taskbox/internal/domain/entity"
	"taskbox/internal/domain/service"
	"taskbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccountUsecase lets each test pin down exactly the flow it exercises.
type stubAccountUsecase struct {
	register func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error)
	login    func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error)
	logout   func(ctx context.Context, cred service.AuthCredential) error
	me       func(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error)
}

func (s *stubAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return s.register(ctx, input)
}

func (s *stubAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.login(ctx, input)
}

func (s *stubAccountUsecase) Logout(ctx context.Context, cred service.AuthCredential) error {
	return s.logout(ctx, cred)
}

func (s *stubAccountUsecase) Me(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error) {
	return s.me(ctx, cred)
}

func newHandlerTestConfig(env string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{CookieName: "sid"},
	}
	cfg.Env.Env = env

	return cfg
}

func newAccountHandler(uc usecase.AccountUsecase, cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doJSON(handler echo.HandlerFunc, method, target, body string, mutate func(*http.Request)) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))

	return rec, err
}

func TestAccountHandler_Register_TokenStrategy(t *testing.T) {
	uc := &stubAccountUsecase{
		register: func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "alice", input.Username)

			return &usecase.AuthOutput{
				User: &entity.Identity{ID: 42, Username: "alice", Email: "alice@example.com"},
				Credential: &service.IssuedCredential{
					Kind:   service.CredentialKindToken,
					Secret: "issued-token",
					TTL:    time.Hour,
				},
			}, nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("development"))

	rec, err := doJSON(handler.Register, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Password123!"}`, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "issued-token")
	assert.Empty(t, rec.Result().Cookies())
}

func TestAccountHandler_Register_SessionStrategy(t *testing.T) {
	uc := &stubAccountUsecase{
		register: func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			return &usecase.AuthOutput{
				User: &entity.Identity{ID: 42, Username: "alice"},
				Credential: &service.IssuedCredential{
					Kind:   service.CredentialKindSession,
					Secret: "session-id",
					TTL:    24 * time.Hour,
				},
			}, nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("development"))

	rec, err := doJSON(handler.Register, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Password123!"}`, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	// The session id travels only in the cookie, never in the body.
	assert.NotContains(t, rec.Body.String(), "session-id")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "sid", cookie.Name)
	assert.Equal(t, "session-id", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(24*time.Hour/time.Second), cookie.MaxAge)
}

func TestAccountHandler_Login_SecureCookieInProduction(t *testing.T) {
	uc := &stubAccountUsecase{
		login: func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return &usecase.AuthOutput{
				User: &entity.Identity{ID: 42, Username: "alice"},
				Credential: &service.IssuedCredential{
					Kind:   service.CredentialKindSession,
					Secret: "session-id",
					TTL:    24 * time.Hour,
				},
			}, nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("production"))

	rec, err := doJSON(handler.Login, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"Password123!"}`, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestAccountHandler_Register_RejectsInvalidPayload(t *testing.T) {
	handler := newAccountHandler(&stubAccountUsecase{}, newHandlerTestConfig("development"))

	_, err := doJSON(handler.Register, http.MethodPost, "/auth/register",
		`{"username":"a","email":"not-an-email","password":"x"}`, nil)

	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAccountHandler_Logout_ClearsCookie(t *testing.T) {
	var revoked service.AuthCredential
	uc := &stubAccountUsecase{
		logout: func(ctx context.Context, cred service.AuthCredential) error {
			revoked = cred

			return nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("development"))

	rec, err := doJSON(handler.Logout, http.MethodPost, "/auth/logout", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sid", Value: "live-session"})
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "live-session", revoked.SessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAccountHandler_Me(t *testing.T) {
	identity := &entity.Identity{ID: 42, Username: "alice", Email: "alice@example.com"}
	uc := &stubAccountUsecase{
		me: func(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error) {
			assert.Equal(t, "Bearer good-token", cred.AuthorizationHeader)

			return identity, nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("development"))

	rec, err := doJSON(handler.Me, http.MethodGet, "/auth/me", "", func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestAccountHandler_Me_AnonymousIsNull(t *testing.T) {
	uc := &stubAccountUsecase{
		me: func(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error) {
			return nil, nil
		},
	}
	handler := newAccountHandler(uc, newHandlerTestConfig("development"))

	rec, err := doJSON(handler.Me, http.MethodGet, "/auth/me", "", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":null`)
}
