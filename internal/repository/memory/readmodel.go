package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/models"
)

type ReadModelStore struct {
	db *DB
}

func (s *ReadModelStore) ChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var channel *models.User
	for _, u := range s.db.users {
		if u.Username == username {
			channel = u
			break
		}
	}
	if channel == nil {
		return nil, nil
	}

	p := &models.ChannelProfile{
		ID:         channel.ID,
		FullName:   channel.FullName,
		Username:   channel.Username,
		Email:      channel.Email,
		Avatar:     channel.Avatar,
		CoverImage: channel.CoverImage,
	}
	for _, sub := range s.db.subscriptions {
		if sub.ChannelID == channel.ID {
			p.SubscribersCount++
			if sub.SubscriberID == requesterID {
				p.IsSubscribed = true
			}
		}
		if sub.SubscriberID == channel.ID {
			p.ChannelsSubscribedToCount++
		}
	}
	return p, nil
}

func (s *ReadModelStore) CountVideos(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int64
	for _, v := range s.db.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *ReadModelStore) SumViews(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var sum int64
	for _, v := range s.db.videos {
		if v.OwnerID == ownerID {
			sum += v.Views
		}
	}
	return sum, nil
}

func (s *ReadModelStore) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int64
	for _, sub := range s.db.subscriptions {
		if sub.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (s *ReadModelStore) CountVideoLikes(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var n int64
	for _, l := range s.db.likes {
		if l.Target.Type != models.LikeTargetVideo {
			continue
		}
		if v, ok := s.db.videos[l.Target.ID]; ok && v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *ReadModelStore) VideoComments(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]models.CommentView, int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := make([]*models.Comment, 0)
	for _, c := range s.db.comments {
		if c.VideoID == videoID {
			matched = append(matched, c)
		}
	}
	slices.SortFunc(matched, func(a, b *models.Comment) int {
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	start := min(max(offset, 0), len(matched))
	end := min(start+limit, len(matched))

	comments := make([]models.CommentView, 0, end-start)
	for _, c := range matched[start:end] {
		owner := s.db.ownerSummary(c.OwnerID)
		owner.FullName = ""
		comments = append(comments, models.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			VideoID:   c.VideoID,
			Owner:     owner,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return comments, int64(len(matched)), nil
}

func (s *ReadModelStore) WatchHistory(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []models.VideoView, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[userID]
	if !ok {
		return nil, nil, false, nil
	}

	// Resolved newest first; the caller restores history order.
	seen := make(map[uuid.UUID]bool, len(u.WatchHistory))
	videos := make([]models.VideoView, 0, len(u.WatchHistory))
	for i := len(u.WatchHistory) - 1; i >= 0; i-- {
		id := u.WatchHistory[i]
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := s.db.videos[id]; ok {
			videos = append(videos, s.db.videoView(v))
		}
	}
	return cloneIDs(u.WatchHistory), videos, true, nil
}
