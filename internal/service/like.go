package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
)

type LikeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	logger   *zap.Logger
}

func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
		logger:   logger,
	}
}

// Toggle likes target if actorID has not liked it yet and unlikes it
// otherwise. It reports whether the like exists afterwards.
func (s *LikeService) Toggle(ctx context.Context, actorID uuid.UUID, target models.LikeTarget) (bool, error) {
	if !target.Type.Valid() {
		return false, apperr.InvalidInput("Invalid like target type")
	}
	if err := s.ensureTarget(ctx, actorID, target); err != nil {
		return false, err
	}

	liked, err := s.likes.Toggle(ctx, actorID, target)
	if err != nil {
		return false, apperr.Internal("failed to toggle like", err)
	}
	return liked, nil
}

func (s *LikeService) ensureTarget(ctx context.Context, actorID uuid.UUID, target models.LikeTarget) error {
	var (
		found bool
		err   error
	)
	switch target.Type {
	case models.LikeTargetVideo:
		var v *models.Video
		v, err = s.videos.GetByID(ctx, target.ID)
		found = v != nil && v.VisibleTo(actorID)
	case models.LikeTargetComment:
		var c *models.Comment
		c, err = s.comments.GetByID(ctx, target.ID)
		found = c != nil
	case models.LikeTargetTweet:
		var t *models.Tweet
		t, err = s.tweets.GetByID(ctx, target.ID)
		found = t != nil
	}
	if err != nil {
		return apperr.Internal("failed to load "+string(target.Type), err)
	}
	if !found {
		return notFound(string(target.Type))
	}
	return nil
}

func (s *LikeService) LikedVideos(ctx context.Context, actorID uuid.UUID) ([]models.VideoView, error) {
	videos, err := s.likes.ListLikedVideos(ctx, actorID)
	if err != nil {
		return nil, apperr.Internal("failed to list liked videos", err)
	}
	return videos, nil
}
