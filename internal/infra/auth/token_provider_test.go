package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	mockRepo "taskbox/internal/mocks/repository"
	mockSvc "taskbox/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenProviderFixtures struct {
	provider     service.IdentityProvider
	tokenService *mockSvc.MockTokenService
	userRepo     *mockRepo.MockUserRepository
}

func createTestTokenProvider(t *testing.T) tokenProviderFixtures {
	tokenService := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return tokenProviderFixtures{
		provider:     NewTokenProvider(tokenService, userRepo, logger),
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

func TestTokenProvider_Authenticate_NoHeaderIsAnonymous(t *testing.T) {
	fx := createTestTokenProvider(t)

	identity, err := fx.provider.Authenticate(context.Background(), service.AuthCredential{})

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestTokenProvider_Authenticate_MalformedHeader(t *testing.T) {
	fx := createTestTokenProvider(t)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", "token-without-scheme"} {
		identity, err := fx.provider.Authenticate(context.Background(), service.AuthCredential{AuthorizationHeader: header})

		require.Error(t, err, "header %q", header)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, domainerrors.ErrMalformedAuthHeader)
	}
}

func TestTokenProvider_Authenticate_InvalidToken(t *testing.T) {
	fx := createTestTokenProvider(t)

	fx.tokenService.EXPECT().
		Decode("bad-token").
		Return(nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to decode token"))

	identity, err := fx.provider.Authenticate(context.Background(), service.AuthCredential{AuthorizationHeader: "Bearer bad-token"})

	require.Error(t, err)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestTokenProvider_Authenticate_ClaimsMatchNoAccount(t *testing.T) {
	fx := createTestTokenProvider(t)

	ctx := context.Background()
	claims := &entity.TokenClaims{UserID: 42, Username: "alice", Email: "alice@example.com"}

	fx.tokenService.EXPECT().Decode("stale-token").Return(claims, nil)
	fx.userRepo.EXPECT().
		FindByClaims(ctx, int64(42), "alice", "alice@example.com").
		Return(nil, repository.ErrUserNotFound)

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{AuthorizationHeader: "Bearer stale-token"})

	require.Error(t, err)
	assert.Nil(t, identity)
	// A stale token must look exactly like a forged one.
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestTokenProvider_Authenticate_Success(t *testing.T) {
	fx := createTestTokenProvider(t)

	ctx := context.Background()
	claims := &entity.TokenClaims{UserID: 42, Username: "alice", Email: "alice@example.com"}
	user := &entity.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	fx.tokenService.EXPECT().Decode("good-token").Return(claims, nil)
	fx.userRepo.EXPECT().
		FindByClaims(ctx, int64(42), "alice", "alice@example.com").
		Return(user, nil)

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{AuthorizationHeader: "Bearer good-token"})

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestTokenProvider_Issue(t *testing.T) {
	fx := createTestTokenProvider(t)

	user := &entity.User{ID: 42, Username: "alice"}

	fx.tokenService.EXPECT().Issue(user).Return("fresh-token", nil)
	fx.tokenService.EXPECT().TTL().Return(time.Hour)

	cred, err := fx.provider.Issue(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, service.CredentialKindToken, cred.Kind)
	assert.Equal(t, "fresh-token", cred.Secret)
	assert.Equal(t, time.Hour, cred.TTL)
}

func TestTokenProvider_Revoke_IsNoOp(t *testing.T) {
	fx := createTestTokenProvider(t)

	err := fx.provider.Revoke(context.Background(), service.AuthCredential{AuthorizationHeader: "Bearer token"})

	require.NoError(t, err)
}
