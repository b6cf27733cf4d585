package service

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"go.uber.org/zap"
)

type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
	logger    *zap.Logger
}

func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		videos:    videos,
		users:     users,
		logger:    logger,
	}
}

func (s *PlaylistService) Create(ctx context.Context, actorID uuid.UUID, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperr.InvalidInput("Name and description are required")
	}

	playlist, err := s.playlists.Create(ctx, actorID, name, description)
	if err != nil {
		return nil, apperr.Internal("failed to create playlist", err)
	}
	return playlist, nil
}

// Get resolves the playlist's videos in playlist order, leaving out
// the ones viewerID may not see.
func (s *PlaylistService) Get(ctx context.Context, playlistID, viewerID uuid.UUID) (*models.PlaylistView, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Internal("failed to load playlist", err)
	}
	if playlist == nil {
		return nil, notFound("playlist")
	}

	resolved, err := s.videos.ListByIDs(ctx, playlist.Videos)
	if err != nil {
		return nil, apperr.Internal("failed to load playlist videos", err)
	}
	videos := filterVisible(orderByIDs(playlist.Videos, resolved), viewerID)

	return &models.PlaylistView{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		OwnerID:     playlist.OwnerID,
		Videos:      videos,
		TotalVideos: len(videos),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}

func (s *PlaylistService) UserPlaylists(ctx context.Context, userID uuid.UUID) ([]models.Playlist, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list playlists", err)
	}
	return playlists, nil
}

func (s *PlaylistService) CheckOwner(ctx context.Context, actorID, playlistID uuid.UUID) error {
	_, err := loadOwned(ctx, s.playlists.GetByID, playlistID, actorID, "playlist")
	return err
}

// Update changes name and/or description. Fields left nil keep their
// value, but a field that is sent must not be blank.
func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID uuid.UUID, name, description *string) (*models.Playlist, error) {
	if _, err := loadOwned(ctx, s.playlists.GetByID, playlistID, actorID, "playlist"); err != nil {
		return nil, err
	}

	if name == nil && description == nil {
		return nil, apperr.InvalidInput("Name or description is required")
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperr.InvalidInput("Name cannot be empty")
		}
		name = &trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			return nil, apperr.InvalidInput("Description cannot be empty")
		}
		description = &trimmed
	}

	playlist, err := s.playlists.Update(ctx, playlistID, name, description)
	if err != nil {
		return nil, apperr.Internal("failed to update playlist", err)
	}
	if playlist == nil {
		return nil, notFound("playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID uuid.UUID) error {
	if _, err := loadOwned(ctx, s.playlists.GetByID, playlistID, actorID, "playlist"); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return apperr.Internal("failed to delete playlist", err)
	}
	return nil
}

func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	if _, err := loadOwned(ctx, s.playlists.GetByID, playlistID, actorID, "playlist"); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperr.Internal("failed to load video", err)
	}
	if video == nil || !video.VisibleTo(actorID) {
		return nil, notFound("video")
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("Video already in playlist")
		}
		return nil, apperr.Internal("failed to add video to playlist", err)
	}
	return s.reload(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*models.Playlist, error) {
	playlist, err := loadOwned(ctx, s.playlists.GetByID, playlistID, actorID, "playlist")
	if err != nil {
		return nil, err
	}
	if !slices.Contains(playlist.Videos, videoID) {
		return nil, apperr.NotFound("Video is not in this playlist")
	}

	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, apperr.Internal("failed to remove video from playlist", err)
	}
	return s.reload(ctx, playlistID)
}

func (s *PlaylistService) reload(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, apperr.Internal("failed to load playlist", err)
	}
	if playlist == nil {
		return nil, notFound("playlist")
	}
	return playlist, nil
}
