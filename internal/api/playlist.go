package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type PlaylistHandler struct {
	playlists *service.PlaylistService
	logger    *zap.Logger
}

func NewPlaylistHandler(playlists *service.PlaylistService, logger *zap.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, logger: logger}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
}

// Pointers tell "not sent" apart from "sent empty".
type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /api/v1/playlist
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), middleware.GetUserID(c), req.Name, req.Description)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// UserPlaylists handles GET /api/v1/playlist/user/:userId
func (h *PlaylistHandler) UserPlaylists(c *gin.Context) {
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	playlists, err := h.playlists.UserPlaylists(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, playlists, "User playlists fetched successfully")
}

// Get handles GET /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId", "playlist")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	playlist, err := h.playlists.Get(c.Request.Context(), playlistID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Playlist fetched successfully")
}

// Update handles PATCH /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId", "playlist")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, inputError(c, h.playlists.CheckOwner, playlistID, bindError(err)))
		return
	}

	playlist, err := h.playlists.Update(c.Request.Context(), middleware.GetUserID(c), playlistID, req.Name, req.Description)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId", "playlist")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), middleware.GetUserID(c), playlistID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

// AddVideo handles PATCH /api/v1/playlist/add/:videoId/:playlistId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	playlistID, err := pathID(c, "playlistId", "playlist")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	playlist, err := h.playlists.AddVideo(c.Request.Context(), middleware.GetUserID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideo handles PATCH /api/v1/playlist/remove/:videoId/:playlistId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	playlistID, err := pathID(c, "playlistId", "playlist")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	playlist, err := h.playlists.RemoveVideo(c.Request.Context(), middleware.GetUserID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Video removed from playlist successfully")
}
