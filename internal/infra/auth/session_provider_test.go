package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"taskbox/config"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	mockRepo "taskbox/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionProviderFixtures struct {
	provider service.IdentityProvider
	sessions *mockRepo.MockSessionRepository
	userRepo *mockRepo.MockUserRepository
}

func createTestSessionProvider(t *testing.T) sessionProviderFixtures {
	sessions := mockRepo.NewMockSessionRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth: &config.AuthConfig{SessionTTL: 24 * time.Hour},
	}

	return sessionProviderFixtures{
		provider: NewSessionProvider(cfg, sessions, userRepo, logger),
		sessions: sessions,
		userRepo: userRepo,
	}
}

func TestSessionProvider_Authenticate_NoCookieIsAnonymous(t *testing.T) {
	fx := createTestSessionProvider(t)

	identity, err := fx.provider.Authenticate(context.Background(), service.AuthCredential{})

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestSessionProvider_Authenticate_UnknownSessionIsAnonymous(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	fx.sessions.EXPECT().Load(ctx, "destroyed-session").Return(int64(0), repository.ErrSessionNotFound)

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{SessionID: "destroyed-session"})

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestSessionProvider_Authenticate_StoreFailurePropagates(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	fx.sessions.EXPECT().
		Load(ctx, "some-session").
		Return(int64(0), domainerrors.ErrStoreUnavailable.WrapMessage("redis unreachable"))

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{SessionID: "some-session"})

	// An unreachable store must never be read as "not logged in".
	require.Error(t, err)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestSessionProvider_Authenticate_DeletedAccountIsAnonymous(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	fx.sessions.EXPECT().Load(ctx, "orphan-session").Return(int64(42), nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(42)).Return(nil, repository.ErrUserNotFound)

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{SessionID: "orphan-session"})

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestSessionProvider_Authenticate_Success(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	fx.sessions.EXPECT().Load(ctx, "live-session").Return(int64(42), nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(42)).Return(user, nil)

	identity, err := fx.provider.Authenticate(ctx, service.AuthCredential{SessionID: "live-session"})

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestSessionProvider_Issue(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	user := &entity.User{ID: 42, Username: "alice"}

	fx.sessions.EXPECT().Create(ctx, int64(42), 24*time.Hour).Return("new-session-id", nil)

	cred, err := fx.provider.Issue(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, service.CredentialKindSession, cred.Kind)
	assert.Equal(t, "new-session-id", cred.Secret)
	assert.Equal(t, 24*time.Hour, cred.TTL)
}

func TestSessionProvider_Revoke(t *testing.T) {
	fx := createTestSessionProvider(t)

	ctx := context.Background()
	fx.sessions.EXPECT().Destroy(ctx, "live-session").Return(nil)

	err := fx.provider.Revoke(ctx, service.AuthCredential{SessionID: "live-session"})

	require.NoError(t, err)
}

func TestSessionProvider_Revoke_WithoutCookie(t *testing.T) {
	fx := createTestSessionProvider(t)

	err := fx.provider.Revoke(context.Background(), service.AuthCredential{})

	require.NoError(t, err)
}
