package activity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces activity keys in a shared Redis database.
const DefaultKeyPrefix = "activity:"

// RedisStore implements Store on top of Redis so multiple processes share
// one view of session activity. Timestamps are stored as unix nanoseconds
// with a TTL equal to the retention period, letting Redis expire abandoned
// sessions on its own.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	retention time.Duration
}

// NewRedisStore creates a Redis-backed activity store. An empty prefix
// falls back to DefaultKeyPrefix; a zero or negative retention stores keys
// without expiry.
func NewRedisStore(client redis.UniversalClient, prefix string, retention time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		retention: retention,
	}
}

// Touch records activity for a session token.
func (s *RedisStore) Touch(ctx context.Context, token string, at time.Time) error {
	if token == "" {
		return ErrInvalidToken
	}

	var ttl time.Duration
	if s.retention > 0 {
		ttl = s.retention
	}

	value := strconv.FormatInt(at.UnixNano(), 10)
	if err := s.client.Set(ctx, s.prefix+token, value, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// LastActivity returns the most recent activity time for a token.
func (s *RedisStore) LastActivity(ctx context.Context, token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidToken
	}

	value, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, ErrNotTracked
		}
		return time.Time{}, errors.Join(ErrStoreFailure, err)
	}

	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, errors.Join(ErrStoreFailure, err)
	}
	return time.Unix(0, nanos), nil
}

// Forget removes all recorded activity for a token.
func (s *RedisStore) Forget(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
