package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
)

type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	logger   *zap.Logger
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository, logger *zap.Logger) *CommentService {
	return &CommentService{comments: comments, videos: videos, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, actorID, videoID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("Comment content is required")
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load video", err)
	}
	if video == nil || !video.VisibleTo(actorID) {
		return nil, notFound("video")
	}

	comment, err := s.comments.Create(ctx, videoID, actorID, content)
	if err != nil {
		return nil, apperr.Internal("failed to add comment", err)
	}
	return comment, nil
}

// CheckOwner reports NotFound or Forbidden exactly as Update and Delete
// would, without changing anything.
func (s *CommentService) CheckOwner(ctx context.Context, actorID, commentID uuid.UUID) error {
	_, err := loadOwned(ctx, s.comments.GetByID, commentID, actorID, "comment")
	return err
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*models.Comment, error) {
	if _, err := loadOwned(ctx, s.comments.GetByID, commentID, actorID, "comment"); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("Comment content is required")
	}

	comment, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, apperr.Internal("failed to update comment", err)
	}
	if comment == nil {
		return nil, notFound("comment")
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	if _, err := loadOwned(ctx, s.comments.GetByID, commentID, actorID, "comment"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return apperr.Internal("failed to delete comment", err)
	}
	return nil
}
