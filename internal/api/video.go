package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videos *service.VideoService
	logger *zap.Logger
}

func NewVideoHandler(videos *service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, logger: logger}
}

// listVideosQuery binds ?page=1&limit=10&query=&sortBy=createdAt&sortType=desc&userId=
// Page and limit are clamped later; here they only have to be numbers.
type listVideosQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// List handles GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	var q listVideosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, h.logger, apperr.InvalidInput("Invalid query parameters"))
		return
	}

	var ownerID *uuid.UUID
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			response.Error(c, h.logger, apperr.InvalidInput("Invalid user id"))
			return
		}
		ownerID = &id
	}

	page, err := h.videos.List(c.Request.Context(), service.ListVideosInput{
		Query:    q.Query,
		OwnerID:  ownerID,
		SortBy:   q.SortBy,
		SortType: q.SortType,
		Page:     q.Page,
		Limit:    q.Limit,
	}, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page, "Videos fetched successfully")
}

// Publish handles POST /api/v1/videos (multipart: videoFile, thumbnail,
// title, description, duration, isPublished).
func (h *VideoHandler) Publish(c *gin.Context) {
	var isPublished *bool
	if raw, ok := c.GetPostForm("isPublished"); ok && raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, h.logger, apperr.InvalidInput("isPublished must be true or false"))
			return
		}
		isPublished = &b
	}

	videoFile, err := formFile(c, "videoFile")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer videoFile.Close()

	thumbnail, err := formFile(c, "thumbnail")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer thumbnail.Close()

	video, err := h.videos.Publish(c.Request.Context(), middleware.GetUserID(c), service.PublishVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    parseDuration(c.PostForm("duration")),
		IsPublished: isPublished,
		VideoFile:   videoFile.File(),
		Thumbnail:   thumbnail.File(),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, video, "Video published successfully")
}

// Get handles GET /api/v1/videos/:videoId
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	video, err := h.videos.Get(c.Request.Context(), videoID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, video, "Video fetched successfully")
}

// IncrementView handles POST /api/v1/videos/view/:videoId
func (h *VideoHandler) IncrementView(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	video, err := h.videos.IncrementView(c.Request.Context(), videoID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, video, "View counted")
}

// Update handles PATCH /api/v1/videos/:videoId. Only the fields that are
// sent change.
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	videoFile, err := formFile(c, "videoFile")
	if err != nil {
		response.Error(c, h.logger, inputError(c, h.videos.CheckOwner, videoID, err))
		return
	}
	defer videoFile.Close()

	thumbnail, err := formFile(c, "thumbnail")
	if err != nil {
		response.Error(c, h.logger, inputError(c, h.videos.CheckOwner, videoID, err))
		return
	}
	defer thumbnail.Close()

	in := service.UpdateVideoInput{
		Title:       optionalForm(c, "title"),
		Description: optionalForm(c, "description"),
		VideoFile:   videoFile.File(),
		Thumbnail:   thumbnail.File(),
	}
	if raw := optionalForm(c, "duration"); raw != nil {
		d := parseDuration(*raw)
		in.Duration = &d
	}

	video, err := h.videos.Update(c.Request.Context(), middleware.GetUserID(c), videoID, in)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, video, "Video updated successfully")
}

// Delete handles DELETE /api/v1/videos/:videoId
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.videos.Delete(c.Request.Context(), middleware.GetUserID(c), videoID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/:videoId
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	video, err := h.videos.TogglePublish(c.Request.Context(), middleware.GetUserID(c), videoID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	message := "Video is now unpublished"
	if video.IsPublished {
		message = "Video is now published"
	}
	response.JSON(c, http.StatusOK, video, message)
}
