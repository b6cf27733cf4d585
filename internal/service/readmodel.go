package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReadModel answers the aggregate reads: channel profiles, dashboard
// totals, comment pages and watch history. It never writes.
type ReadModel struct {
	reads  repository.ReadModelRepository
	videos repository.VideoRepository
	logger *zap.Logger
}

func NewReadModel(reads repository.ReadModelRepository, videos repository.VideoRepository, logger *zap.Logger) *ReadModel {
	return &ReadModel{reads: reads, videos: videos, logger: logger}
}

// ChannelProfile looks a channel up by username. requesterID is
// uuid.Nil for anonymous callers, who are never subscribed.
func (r *ReadModel) ChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.InvalidInput("Username is missing")
	}

	profile, err := r.reads.ChannelProfile(ctx, username, requesterID)
	if err != nil {
		return nil, apperr.Internal("failed to load channel profile", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("Channel does not exist")
	}
	if requesterID == uuid.Nil {
		profile.IsSubscribed = false
	}
	return profile, nil
}

// ChannelStats runs the four dashboard aggregates concurrently. If any
// of them fails the whole call fails; partial totals are never returned.
func (r *ReadModel) ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	var stats models.ChannelStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalVideos, err = r.reads.CountVideos(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalViews, err = r.reads.SumViews(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalSubscribers, err = r.reads.CountSubscribers(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalLikes, err = r.reads.CountVideoLikes(gctx, channelID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("failed to compute channel stats", err)
	}
	return &stats, nil
}

// VideoComments returns one page of a video's comments, newest first.
func (r *ReadModel) VideoComments(ctx context.Context, videoID uuid.UUID, page, limit int, viewerID uuid.UUID) (models.Page[models.CommentView], error) {
	video, err := r.videos.GetByID(ctx, videoID)
	if err != nil {
		return models.Page[models.CommentView]{}, apperr.Internal("failed to load video", err)
	}
	if video == nil || !video.VisibleTo(viewerID) {
		return models.Page[models.CommentView]{}, notFound("video")
	}

	page, limit, offset := models.NormalizePaging(page, limit)
	comments, total, err := r.reads.VideoComments(ctx, videoID, offset, limit)
	if err != nil {
		return models.Page[models.CommentView]{}, apperr.Internal("failed to load comments", err)
	}
	return models.NewPage(comments, total, page, limit), nil
}

// WatchHistory returns the videos userID watched, oldest first, one
// entry per view. Deleted videos and videos that were unpublished since
// are left out.
func (r *ReadModel) WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.VideoView, error) {
	ids, videos, found, err := r.reads.WatchHistory(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load watch history", err)
	}
	if !found {
		return nil, apperr.NotFound("User not found")
	}
	return filterVisible(orderByIDs(ids, videos), userID), nil
}
