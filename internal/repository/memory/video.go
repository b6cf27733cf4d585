package memory

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
)

type VideoStore struct {
	db *DB
}

func (s *VideoStore) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	created := *v
	created.ID = uuid.New()
	created.Views = 0
	created.CreatedAt = s.db.now()
	created.UpdatedAt = created.CreatedAt
	s.db.videos[created.ID] = &created

	out := created
	return &out, nil
}

func (s *VideoStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	v, ok := s.db.videos[id]
	if !ok {
		return nil, nil
	}
	out := *v
	return &out, nil
}

func (s *VideoStore) GetView(ctx context.Context, id uuid.UUID) (*models.VideoView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	v, ok := s.db.videos[id]
	if !ok {
		return nil, nil
	}
	view := s.db.videoView(v)
	return &view, nil
}

func matchesSearch(v *models.Video, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Title), needle) ||
		strings.Contains(strings.ToLower(v.Description), needle)
}

func compareVideos(field repository.VideoSortField, a, b *models.Video) int {
	var c int
	switch field {
	case repository.SortByViews:
		c = cmp.Compare(a.Views, b.Views)
	case repository.SortByDuration:
		c = cmp.Compare(a.Duration, b.Duration)
	case repository.SortByTitle:
		c = strings.Compare(a.Title, b.Title)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

func (s *VideoStore) List(ctx context.Context, q repository.VideoQuery) ([]models.VideoView, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	needle := strings.ToLower(q.Search)
	matched := make([]*models.Video, 0)
	for _, v := range s.db.videos {
		if q.OwnerID != nil && v.OwnerID != *q.OwnerID {
			continue
		}
		if !q.IncludeUnpublished && !v.IsPublished {
			continue
		}
		if !matchesSearch(v, needle) {
			continue
		}
		matched = append(matched, v)
	}

	slices.SortFunc(matched, func(a, b *models.Video) int {
		c := compareVideos(q.SortField, a, b)
		if q.Descending {
			return -c
		}
		return c
	})

	total := int64(len(matched))
	start := min(max(q.Offset, 0), len(matched))
	end := min(start+q.Limit, len(matched))

	views := make([]models.VideoView, 0, end-start)
	for _, v := range matched[start:end] {
		views = append(views, s.db.videoView(v))
	}
	return views, total, nil
}

func (s *VideoStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.VideoView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	seen := make(map[uuid.UUID]bool, len(ids))
	views := make([]models.VideoView, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := s.db.videos[id]; ok {
			views = append(views, s.db.videoView(v))
		}
	}
	return views, nil
}

func (s *VideoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	videos := make([]models.Video, 0)
	for _, v := range s.db.videos {
		if v.OwnerID == ownerID {
			videos = append(videos, *v)
		}
	}
	slices.SortFunc(videos, func(a, b models.Video) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return videos, nil
}

func (s *VideoStore) mutate(id uuid.UUID, touch bool, fn func(v *models.Video)) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, ok := s.db.videos[id]
	if !ok {
		return nil, nil
	}
	fn(v)
	if touch {
		v.UpdatedAt = s.db.now()
	}
	out := *v
	return &out, nil
}

func (s *VideoStore) Update(ctx context.Context, id uuid.UUID, upd repository.VideoUpdate) (*models.Video, error) {
	return s.mutate(id, true, func(v *models.Video) {
		if upd.Title != nil {
			v.Title = *upd.Title
		}
		if upd.Description != nil {
			v.Description = *upd.Description
		}
		if upd.Duration != nil {
			v.Duration = *upd.Duration
		}
		if upd.Thumbnail != nil {
			v.Thumbnail = *upd.Thumbnail
		}
		if upd.VideoFile != nil {
			v.VideoFile = *upd.VideoFile
		}
	})
}

func (s *VideoStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Video, error) {
	return s.mutate(id, true, func(v *models.Video) {
		v.IsPublished = published
	})
}

func (s *VideoStore) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.mutate(id, false, func(v *models.Video) {
		v.Views++
	})
}

// Delete cascades the way the videos foreign keys do.
func (s *VideoStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.videos[id]; !ok {
		return nil
	}
	delete(s.db.videos, id)

	for cid, c := range s.db.comments {
		if c.VideoID == id {
			delete(s.db.comments, cid)
			s.db.deleteLikesOn(models.LikeTarget{Type: models.LikeTargetComment, ID: cid})
		}
	}
	s.db.deleteLikesOn(models.LikeTarget{Type: models.LikeTargetVideo, ID: id})

	for _, p := range s.db.playlists {
		p.Videos = slices.DeleteFunc(p.Videos, func(vid uuid.UUID) bool { return vid == id })
	}
	return nil
}
