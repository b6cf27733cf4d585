package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
)

type CommentStore struct {
	db *DB
}

func (s *CommentStore) Create(ctx context.Context, videoID, ownerID uuid.UUID, content string) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	c := &models.Comment{
		ID:        uuid.New(),
		Content:   content,
		VideoID:   videoID,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.db.comments[c.ID] = c

	out := *c
	return &out, nil
}

func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (s *CommentStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.comments[id]
	if !ok {
		return nil, nil
	}
	c.Content = content
	c.UpdatedAt = s.db.now()

	out := *c
	return &out, nil
}

func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.comments, id)
	s.db.deleteLikesOn(models.LikeTarget{Type: models.LikeTargetComment, ID: id})
	return nil
}

type TweetStore struct {
	db *DB
}

func (s *TweetStore) Create(ctx context.Context, ownerID uuid.UUID, content string) (*models.Tweet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	t := &models.Tweet{
		ID:        uuid.New(),
		Content:   content,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.db.tweets[t.ID] = t

	out := *t
	return &out, nil
}

func (s *TweetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	t, ok := s.db.tweets[id]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

func (s *TweetStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	tweets := make([]models.Tweet, 0)
	for _, t := range s.db.tweets {
		if t.OwnerID == ownerID {
			tweets = append(tweets, *t)
		}
	}
	slices.SortFunc(tweets, func(a, b models.Tweet) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return tweets, nil
}

func (s *TweetStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tweets[id]
	if !ok {
		return nil, nil
	}
	t.Content = content
	t.UpdatedAt = s.db.now()

	out := *t
	return &out, nil
}

func (s *TweetStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.tweets, id)
	s.db.deleteLikesOn(models.LikeTarget{Type: models.LikeTargetTweet, ID: id})
	return nil
}

type LikeStore struct {
	db *DB
}

// Toggle runs under the write lock, which plays the role of the unique
// index: no two likes for the same owner and target can coexist.
func (s *LikeStore) Toggle(ctx context.Context, ownerID uuid.UUID, target models.LikeTarget) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for id, l := range s.db.likes {
		if l.OwnerID == ownerID && l.Target == target {
			delete(s.db.likes, id)
			return false, nil
		}
	}

	l := &models.Like{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Target:    target,
		CreatedAt: s.db.now(),
	}
	s.db.likes[l.ID] = l
	return true, nil
}

func (s *LikeStore) ListLikedVideos(ctx context.Context, ownerID uuid.UUID) ([]models.VideoView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	liked := make([]*models.Like, 0)
	for _, l := range s.db.likes {
		if l.OwnerID == ownerID && l.Target.Type == models.LikeTargetVideo {
			liked = append(liked, l)
		}
	}
	slices.SortFunc(liked, func(a, b *models.Like) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	videos := make([]models.VideoView, 0, len(liked))
	for _, l := range liked {
		v, ok := s.db.videos[l.Target.ID]
		if !ok || !v.VisibleTo(ownerID) {
			continue
		}
		videos = append(videos, s.db.videoView(v))
	}
	return videos, nil
}
