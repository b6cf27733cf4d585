package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
)

var errMissingRow = errors.New("referenced row does not exist")

type PlaylistStore struct {
	db *DB
}

func (s *PlaylistStore) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*models.Playlist, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	p := &models.Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Videos:      make([]uuid.UUID, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.playlists[p.ID] = p
	return clonePlaylist(p), nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.playlists[id]
	if !ok {
		return nil, nil
	}
	return clonePlaylist(p), nil
}

func (s *PlaylistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	playlists := make([]models.Playlist, 0)
	for _, p := range s.db.playlists {
		if p.OwnerID == ownerID {
			playlists = append(playlists, *clonePlaylist(p))
		}
	}
	slices.SortFunc(playlists, func(a, b models.Playlist) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return playlists, nil
}

func (s *PlaylistStore) Update(ctx context.Context, id uuid.UUID, name, description *string) (*models.Playlist, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.playlists[id]
	if !ok {
		return nil, nil
	}
	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}
	p.UpdatedAt = s.db.now()
	return clonePlaylist(p), nil
}

func (s *PlaylistStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.playlists, id)
	return nil
}

func (s *PlaylistStore) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.playlists[playlistID]
	if !ok {
		return fmt.Errorf("add playlist video: %w", errMissingRow)
	}
	if _, ok := s.db.videos[videoID]; !ok {
		return fmt.Errorf("add playlist video: %w", errMissingRow)
	}
	if slices.Contains(p.Videos, videoID) {
		return fmt.Errorf("add playlist video: %w", repository.ErrDuplicate)
	}
	p.Videos = append(p.Videos, videoID)
	p.UpdatedAt = s.db.now()
	return nil
}

func (s *PlaylistStore) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.playlists[playlistID]
	if !ok {
		return nil
	}
	i := slices.Index(p.Videos, videoID)
	if i < 0 {
		return nil
	}
	p.Videos = slices.Delete(p.Videos, i, i+1)
	p.UpdatedAt = s.db.now()
	return nil
}
