package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	token     string
	expiresAt time.Time
}

// SessionStore is the in-process counterpart of the Redis session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]session),
		now:      time.Now,
	}
}

func (s *SessionStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = session{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, userID)
		return false, nil
	}
	if sess.token != token {
		return false, nil
	}
	delete(s.sessions, userID)
	return true, nil
}

func (s *SessionStore) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error { return nil }
