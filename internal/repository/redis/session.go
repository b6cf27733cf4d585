// Package redis keeps refresh-token sessions in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const refreshPrefix = "refresh:"

// SessionStore holds the single valid refresh token of each user under
// refresh:<userID>. Saving a new token replaces the old one, which is
// what makes refresh rotation invalidate earlier tokens.
type SessionStore struct {
	client *goredis.Client
}

// NewSessionStore connects to redisURL (redis://[:password@]host:port/db)
// and pings the server.
func NewSessionStore(ctx context.Context, redisURL string) (*SessionStore, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SessionStore{client: client}, nil
}

func refreshKey(userID uuid.UUID) string {
	return refreshPrefix + userID.String()
}

func (s *SessionStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// consumeScript deletes KEYS[1] only while it still holds ARGV[1].
var consumeScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *SessionStore) ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	deleted, err := consumeScript.Run(ctx, s.client, []string{refreshKey(userID)}, token).Int()
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}
	return deleted == 1, nil
}

func (s *SessionStore) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}
