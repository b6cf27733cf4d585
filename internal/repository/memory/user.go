package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
)

type UserStore struct {
	db *DB
}

// taken reports whether another user already holds username or email.
func (s *UserStore) taken(self uuid.UUID, username, email string) bool {
	for _, u := range s.db.users {
		if u.ID == self {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return true
		}
	}
	return false
}

func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.taken(uuid.Nil, u.Username, u.Email) {
		return nil, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
	}

	created := cloneUser(u)
	created.ID = uuid.New()
	created.CreatedAt = s.db.now()
	created.UpdatedAt = created.CreatedAt
	s.db.users[created.ID] = created
	return cloneUser(created), nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (s *UserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// update applies fn to the stored user and returns a copy.
func (s *UserStore) update(id uuid.UUID, fn func(u *models.User) error) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = s.db.now()
	return cloneUser(u), nil
}

func (s *UserStore) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.User, error) {
	return s.update(id, func(u *models.User) error {
		if s.taken(id, "", email) {
			return fmt.Errorf("update account: %w", repository.ErrDuplicate)
		}
		u.FullName = fullName
		u.Email = email
		return nil
	})
}

func (s *UserStore) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*models.User, error) {
	return s.update(id, func(u *models.User) error {
		u.Avatar = url
		return nil
	})
}

func (s *UserStore) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*models.User, error) {
	return s.update(id, func(u *models.User) error {
		u.CoverImage = url
		return nil
	})
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := s.update(id, func(u *models.User) error {
		u.PasswordHash = passwordHash
		return nil
	})
	return err
}

func (s *UserStore) AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if u, ok := s.db.users[userID]; ok {
		u.WatchHistory = append(u.WatchHistory, videoID)
	}
	return nil
}
