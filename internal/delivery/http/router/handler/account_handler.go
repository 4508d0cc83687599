// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"taskbox/config"
	"taskbox/internal/delivery/http/response"
	"taskbox/internal/domain/entity"
	"taskbox/internal/domain/service"
	"taskbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the body for successful register/login. Token is present
// only under the bearer-token strategy; the session strategy delivers its
// credential as a cookie instead.
type authResponse struct {
	User  *entity.Identity `json:"user"`
	Token string           `json:"token,omitempty"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondAuthenticated(c, http.StatusCreated, output, "Account registered")
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		UsernameOrEmail: req.Username,
		Password:        req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondAuthenticated(c, http.StatusOK, output, "Login successful")
}

// Logout revokes the presented credential and clears the session cookie.
// Logging out without a credential is not an error.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), h.extractCredential(c)); err != nil {
		return errors.WithStack(err)
	}

	h.clearSessionCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the caller's identity, or null when no valid credential is
// presented. A malformed or invalid credential is still rejected.
func (h *AccountHandler) Me(c echo.Context) error {
	identity, err := h.uc.Me(c.Request().Context(), h.extractCredential(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, identity, "")
}

func (h *AccountHandler) respondAuthenticated(c echo.Context, statusCode int, output *usecase.AuthOutput, message string) error {
	body := &authResponse{User: output.User}

	switch output.Credential.Kind {
	case service.CredentialKindSession:
		h.setSessionCookie(c, output.Credential)
	case service.CredentialKindToken:
		body.Token = output.Credential.Secret
	}

	return response.Success(c, statusCode, body, message)
}

func (h *AccountHandler) extractCredential(c echo.Context) service.AuthCredential {
	cred := service.AuthCredential{
		AuthorizationHeader: c.Request().Header.Get(echo.HeaderAuthorization),
	}

	if cookie, err := c.Cookie(h.cookieName()); err == nil {
		cred.SessionID = cookie.Value
	}

	return cred
}

func (h *AccountHandler) cookieName() string {
	if h.cfg.Auth != nil && h.cfg.Auth.CookieName != "" {
		return h.cfg.Auth.CookieName
	}

	return "sid"
}

func (h *AccountHandler) setSessionCookie(c echo.Context, credential *service.IssuedCredential) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName(),
		Value:    credential.Secret,
		Path:     "/",
		MaxAge:   int(credential.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
