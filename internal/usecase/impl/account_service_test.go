package impl

import (
	"context"
	"testing"
	"time"

	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	mockRepo "taskbox/internal/mocks/repository"
	mockSvc "taskbox/internal/mocks/service"
	"taskbox/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service          usecase.AccountUsecase
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	hasher           *mockSvc.MockPasswordHasher
	identityProvider *mockSvc.MockIdentityProvider
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	identityProvider := mockSvc.NewMockIdentityProvider(t)

	service := NewAccountService(AccountServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		Hasher:           hasher,
		IdentityProvider: identityProvider,
		Config:           newTestConfig(),
		Logger:           newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:          service,
		txManager:        txManager,
		userRepo:         userRepo,
		hasher:           hasher,
		identityProvider: identityProvider,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash("Password123!").Return("hashed-password", nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txFactory.EXPECT().UserRepo().Return(txUserRepo)

	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "hashed-password", user.PasswordHash)
			user.ID = 42
		}).
		Return(nil)

	fx.identityProvider.EXPECT().
		Issue(ctx, mock.AnythingOfType("*entity.User")).
		Return(&service.IssuedCredential{
			Kind:   service.CredentialKindToken,
			Secret: "issued-token",
			TTL:    time.Hour,
		}, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(42), output.User.ID)
	assert.Equal(t, "alice", output.User.Username)
	require.NotNil(t, output.Credential)
	assert.Equal(t, "issued-token", output.Credential.Secret)
}

func TestAccountService_Register_PasswordTooShort(t *testing.T) {
	fx := createTestAccountService(t)

	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	}

	output, err := fx.service.Register(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Register_DuplicateAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash("Password123!").Return("hashed-password", nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txFactory.EXPECT().UserRepo().Return(txUserRepo)

	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrConflict.WrapMessage("failed to create user"))

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(txFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestAccountService_Register_IssueFailureAbortsTransaction(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash("Password123!").Return("hashed-password", nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txFactory.EXPECT().UserRepo().Return(txUserRepo)

	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	fx.identityProvider.EXPECT().
		Issue(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil, errors.New("session store down"))

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			txErr = fn(txFactory)
			return txErr
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	// The issuance failure must propagate out of the transaction callback
	// so the user row is rolled back with it.
	require.Error(t, txErr)
	assert.Contains(t, txErr.Error(), "failed to issue credential")
}

func TestAccountService_Login_Success_ByUsername(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", Email: "alice@example.com", PasswordHash: "stored-hash"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", "stored-hash").Return(true, nil)
	fx.identityProvider.EXPECT().
		Issue(ctx, user).
		Return(&service.IssuedCredential{Kind: service.CredentialKindSession, Secret: "session-id"}, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "alice", Password: "Password123!"})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(42), output.User.ID)
	assert.Equal(t, "session-id", output.Credential.Secret)
}

func TestAccountService_Login_Success_ByEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", Email: "alice@example.com", PasswordHash: "stored-hash"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", "stored-hash").Return(true, nil)
	fx.identityProvider.EXPECT().
		Issue(ctx, user).
		Return(&service.IssuedCredential{Kind: service.CredentialKindToken, Secret: "token"}, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "alice@example.com", Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "token", output.Credential.Secret)
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "ghost", Password: "whatever"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", PasswordHash: "stored-hash"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "stored-hash").Return(false, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", PasswordHash: "stored-hash"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "stored-hash").Return(false, nil)

	_, unknownErr := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "ghost", Password: "wrong"})
	_, mismatchErr := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "alice", Password: "wrong"})

	var unknownApp domainerrors.AppError
	var mismatchApp domainerrors.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, mismatchErr, &mismatchApp)
	assert.Equal(t, unknownApp.ErrorCode(), mismatchApp.ErrorCode())
	assert.Equal(t, unknownApp.Message(), mismatchApp.Message())
	assert.Equal(t, unknownApp.HTTPCode(), mismatchApp.HTTPCode())
}

func TestAccountService_Login_CorruptStoredHash(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", PasswordHash: "not-a-bcrypt-hash"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", "not-a-bcrypt-hash").Return(false, errors.New("hash is malformed"))

	output, err := fx.service.Login(ctx, &usecase.LoginInput{UsernameOrEmail: "alice", Password: "Password123!"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Logout_DelegatesToProvider(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	cred := service.AuthCredential{SessionID: "session-id"}

	fx.identityProvider.EXPECT().Revoke(ctx, cred).Return(nil)

	err := fx.service.Logout(ctx, cred)

	require.NoError(t, err)
}

func TestAccountService_Me_Anonymous(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	cred := service.AuthCredential{}

	fx.identityProvider.EXPECT().Authenticate(ctx, cred).Return(nil, nil)

	identity, err := fx.service.Me(ctx, cred)

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestAccountService_Me_Authenticated(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	cred := service.AuthCredential{AuthorizationHeader: "Bearer token"}
	identity := &entity.Identity{ID: 42, Username: "alice"}

	fx.identityProvider.EXPECT().Authenticate(ctx, cred).Return(identity, nil)

	got, err := fx.service.Me(ctx, cred)

	require.NoError(t, err)
	assert.Equal(t, identity, got)
}
