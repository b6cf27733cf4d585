package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"github.com/lalith-99/vidora/internal/storage"
	"go.uber.org/zap"
)

type VideoService struct {
	videos repository.VideoRepository
	users  repository.UserRepository
	assets assets
	logger *zap.Logger
}

func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	store storage.AssetStore,
	logger *zap.Logger,
) *VideoService {
	return &VideoService{
		videos: videos,
		users:  users,
		assets: assets{store: store, logger: logger},
		logger: logger,
	}
}

type ListVideosInput struct {
	Query    string
	OwnerID  *uuid.UUID
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

var sortFields = map[string]repository.VideoSortField{
	"createdAt": repository.SortByCreatedAt,
	"views":     repository.SortByViews,
	"duration":  repository.SortByDuration,
	"title":     repository.SortByTitle,
}

// List searches published videos. A channel's unpublished videos are
// included only when that channel asks for its own listing.
func (s *VideoService) List(ctx context.Context, in ListVideosInput, requesterID uuid.UUID) (models.Page[models.VideoView], error) {
	field := repository.SortByCreatedAt
	if in.SortBy != "" {
		f, ok := sortFields[in.SortBy]
		if !ok {
			return models.Page[models.VideoView]{}, apperr.InvalidInput("Invalid sortBy field")
		}
		field = f
	}

	descending := true
	switch strings.ToLower(in.SortType) {
	case "", "desc":
	case "asc":
		descending = false
	default:
		return models.Page[models.VideoView]{}, apperr.InvalidInput("sortType must be asc or desc")
	}

	page, limit, offset := models.NormalizePaging(in.Page, in.Limit)
	ownListing := in.OwnerID != nil && requesterID != uuid.Nil && *in.OwnerID == requesterID

	videos, total, err := s.videos.List(ctx, repository.VideoQuery{
		Search:             strings.TrimSpace(in.Query),
		OwnerID:            in.OwnerID,
		IncludeUnpublished: ownListing,
		SortField:          field,
		Descending:         descending,
		Offset:             offset,
		Limit:              limit,
	})
	if err != nil {
		return models.Page[models.VideoView]{}, apperr.Internal("failed to list videos", err)
	}
	return models.NewPage(videos, total, page, limit), nil
}

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	// IsPublished defaults to true when nil.
	IsPublished *bool
	VideoFile   *storage.File
	Thumbnail   *storage.File
}

// sanitizeDuration maps anything that is not a finite, non-negative
// number of seconds to 0.
func sanitizeDuration(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, in PublishVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperr.InvalidInput("Title and description are required")
	}
	if in.VideoFile == nil {
		return nil, apperr.InvalidInput("Video file is required")
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	videoURL, err := s.assets.upload(ctx, storage.FolderVideos, in.VideoFile)
	if err != nil {
		return nil, apperr.Internal("Failed to upload video", err)
	}
	var thumbURL string
	if in.Thumbnail != nil {
		thumbURL, err = s.assets.upload(ctx, storage.FolderThumbnails, in.Thumbnail)
		if err != nil {
			s.assets.discard(ctx, videoURL)
			return nil, apperr.Internal("Failed to upload thumbnail", err)
		}
	}

	video, err := s.videos.Create(ctx, &models.Video{
		Title:       title,
		Description: description,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    sanitizeDuration(in.Duration),
		IsPublished: published,
		OwnerID:     ownerID,
	})
	if err != nil {
		s.assets.discard(ctx, videoURL, thumbURL)
		return nil, apperr.Internal("failed to save video", err)
	}

	s.logger.Info("video published",
		zap.String("video_id", video.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return video, nil
}

// Get returns a video with its owner. Unpublished videos look missing to
// everyone but their owner.
func (s *VideoService) Get(ctx context.Context, videoID, viewerID uuid.UUID) (*models.VideoView, error) {
	video, err := s.videos.GetView(ctx, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load video", err)
	}
	if video == nil || !video.VisibleTo(viewerID) {
		return nil, notFound("video")
	}
	return video, nil
}

// IncrementView counts one view. For signed-in viewers the video is also
// appended to their watch history; that append is best-effort.
func (s *VideoService) IncrementView(ctx context.Context, videoID, viewerID uuid.UUID) (*models.Video, error) {
	current, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load video", err)
	}
	if current == nil || !current.VisibleTo(viewerID) {
		return nil, notFound("video")
	}

	video, err := s.videos.IncrementViews(ctx, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to count view", err)
	}
	if video == nil {
		return nil, notFound("video")
	}

	if viewerID != uuid.Nil {
		if err := s.users.AppendWatchHistory(ctx, viewerID, videoID); err != nil {
			s.logger.Warn("failed to append watch history",
				zap.String("user_id", viewerID.String()),
				zap.String("video_id", videoID.String()),
				zap.Error(err),
			)
		}
	}
	return video, nil
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Duration    *float64
	Thumbnail   *storage.File
	VideoFile   *storage.File
}

func (s *VideoService) CheckOwner(ctx context.Context, actorID, videoID uuid.UUID) error {
	_, err := loadOwned(ctx, s.videos.GetByID, videoID, actorID, "video")
	return err
}

func (s *VideoService) Update(ctx context.Context, actorID, videoID uuid.UUID, in UpdateVideoInput) (*models.Video, error) {
	current, err := loadOwned(ctx, s.videos.GetByID, videoID, actorID, "video")
	if err != nil {
		return nil, err
	}

	var upd repository.VideoUpdate
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.InvalidInput("Title cannot be empty")
		}
		upd.Title = &title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, apperr.InvalidInput("Description cannot be empty")
		}
		upd.Description = &description
	}
	if in.Duration != nil {
		d := sanitizeDuration(*in.Duration)
		upd.Duration = &d
	}
	if upd == (repository.VideoUpdate{}) && in.Thumbnail == nil && in.VideoFile == nil {
		return nil, apperr.InvalidInput("Nothing to update")
	}

	var uploaded, replaced []string
	if in.VideoFile != nil {
		url, err := s.assets.upload(ctx, storage.FolderVideos, in.VideoFile)
		if err != nil {
			return nil, apperr.Internal("Failed to upload video", err)
		}
		upd.VideoFile = &url
		uploaded = append(uploaded, url)
		replaced = append(replaced, current.VideoFile)
	}
	if in.Thumbnail != nil {
		url, err := s.assets.upload(ctx, storage.FolderThumbnails, in.Thumbnail)
		if err != nil {
			s.assets.discard(ctx, uploaded...)
			return nil, apperr.Internal("Failed to upload thumbnail", err)
		}
		upd.Thumbnail = &url
		uploaded = append(uploaded, url)
		replaced = append(replaced, current.Thumbnail)
	}

	video, err := s.videos.Update(ctx, videoID, upd)
	if err == nil && video == nil {
		err = errors.New("video disappeared during update")
	}
	if err != nil {
		s.assets.discard(ctx, uploaded...)
		return nil, apperr.Internal("failed to update video", err)
	}

	s.assets.discard(ctx, replaced...)
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, actorID, videoID uuid.UUID) error {
	video, err := loadOwned(ctx, s.videos.GetByID, videoID, actorID, "video")
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		return apperr.Internal("failed to delete video", err)
	}

	s.assets.discard(ctx, video.VideoFile, video.Thumbnail)
	s.logger.Info("video deleted", zap.String("video_id", videoID.String()))
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*models.Video, error) {
	video, err := loadOwned(ctx, s.videos.GetByID, videoID, actorID, "video")
	if err != nil {
		return nil, err
	}

	updated, err := s.videos.SetPublished(ctx, videoID, !video.IsPublished)
	if err != nil {
		return nil, apperr.Internal("failed to toggle publish status", err)
	}
	if updated == nil {
		return nil, notFound("video")
	}
	return updated, nil
}

// ChannelVideos lists every video of the channel, published or not,
// newest first. It backs the owner's dashboard.
func (s *VideoService) ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	videos, err := s.videos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("failed to list channel videos", err)
	}
	return videos, nil
}
