package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "auth:session:"

// SessionStore keeps the auth provider's session token per user in Redis.
// Without Redis nothing is remembered and sign-out has nothing to end.
type SessionStore struct {
	redis *Redis
}

func NewSessionStore(r *Redis) *SessionStore {
	return &SessionStore{redis: r}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

func (s *SessionStore) Remember(ctx context.Context, userID, token string, ttl time.Duration) error {
	if s == nil || s.redis.isUnavailable() || userID == "" || token == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := s.redis.client.Set(ctx, sessionKey(userID), token, ttl).Err(); err != nil {
		s.redis.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (s *SessionStore) Forget(ctx context.Context, userID string) (string, bool, error) {
	if s == nil || s.redis.isUnavailable() || userID == "" {
		return "", false, nil
	}
	token, err := s.redis.client.GetDel(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		s.redis.warnUnavailableOnce(err)
		return "", false, err
	}
	return token, token != "", nil
}
