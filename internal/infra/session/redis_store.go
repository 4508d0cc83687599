package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/errors"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "session:"
	// 32 random bytes: the id must be unguessable, it is the only thing
	// standing between a cookie thief and the account.
	sessionIDBytes = 32
)

// redisStore implements repository.SessionRepository on Redis.
// Expiry is enforced by the key TTL set at creation; Load never touches it,
// so there is no sliding renewal.
type redisStore struct {
	client *redis.Client
}

// NewStore is the constructor for redisStore.
func NewStore(client *redis.Client) repository.SessionRepository {
	return &redisStore{client: client}
}

// Create stores a new session under a fresh crypto-random id.
func (s *redisStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate session id")
	}

	if err := s.client.Set(ctx, keyPrefix+sessionID, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return "", domainerrors.ErrStoreUnavailable.WrapMessage("failed to write session to redis")
	}

	return sessionID, nil
}

// Load resolves a session id to its user id. A missing key is the routine
// ErrSessionNotFound; any other redis failure is the store-unavailable
// condition and must never be read as "no session".
func (s *redisStore) Load(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrSessionNotFound
		}

		return 0, domainerrors.ErrStoreUnavailable.WrapMessage("failed to read session from redis")
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// A corrupt session entry is unusable; treat like an absent session
		// after destroying it.
		_ = s.client.Del(ctx, keyPrefix+sessionID).Err()

		return 0, repository.ErrSessionNotFound
	}

	return userID, nil
}

// Destroy removes the session. Deleting an absent key succeeds.
func (s *redisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage("failed to delete session from redis")
	}

	return nil
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
