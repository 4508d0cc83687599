// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"taskbox/config"
	deliverycontext "taskbox/internal/delivery/context"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	"taskbox/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	identityProvider  service.IdentityProvider
	minPasswordLength int
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	Hasher           service.PasswordHasher
	IdentityProvider service.IdentityProvider
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	minPasswordLength := 0
	if params.Config != nil && params.Config.Auth != nil {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &accountService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		identityProvider:  params.IdentityProvider,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and issues its first credential in one
// transaction. If issuance fails the user row is rolled back, so a retry
// with the same username hits no half-created account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if len(input.Password) < srv.minPasswordLength {
		srv.log(ctx).Warn("Password too short during registration", slog.String("username", input.Username))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("password does not meet the minimum length")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var (
		registeredUser *entity.User
		credential     *service.IssuedCredential
	)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		newUser := &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hashedPassword,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return err
		}

		issued, err := srv.identityProvider.Issue(ctx, newUser)
		if err != nil {
			return errors.Wrap(err, "failed to issue credential during registration")
		}

		registeredUser = newUser
		credential = issued

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.Int64("userID", registeredUser.ID))

	return &usecase.AuthOutput{User: registeredUser.AsIdentity(), Credential: credential}, nil
}

// Login verifies the password and issues a fresh credential. An unknown
// account and a wrong password produce the identical error so the response
// never reveals which usernames exist.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.findAccount(ctx, input.UsernameOrEmail)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login attempt for unknown account")

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account lookup failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up account for login")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is malformed", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("credential verification failed")
	}
	if !ok {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	credential, err := srv.identityProvider.Issue(ctx, user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue credential during login", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue credential during login")
	}

	srv.log(ctx).Info("Login succeeded", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{User: user.AsIdentity(), Credential: credential}, nil
}

// findAccount resolves the login identifier. A value containing "@" is
// treated as an email address, anything else as a username.
func (srv *accountService) findAccount(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	if strings.Contains(usernameOrEmail, "@") {
		return srv.userRepo.FindByEmail(ctx, usernameOrEmail)
	}

	return srv.userRepo.FindByUsername(ctx, usernameOrEmail)
}

// Logout revokes the presented credential.
func (srv *accountService) Logout(ctx context.Context, cred service.AuthCredential) error {
	if err := srv.identityProvider.Revoke(ctx, cred); err != nil {
		srv.log(ctx).Error("Failed to revoke credential", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke credential")
	}

	return nil
}

// Me resolves the caller's identity. (nil, nil) means no credential was presented.
func (srv *accountService) Me(ctx context.Context, cred service.AuthCredential) (*entity.Identity, error) {
	return srv.identityProvider.Authenticate(ctx, cred)
}
