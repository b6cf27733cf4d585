package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likes  *service.LikeService
	logger *zap.Logger
}

func NewLikeHandler(likes *service.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, logger: logger}
}

// Toggle returns the handler for one target type. param is the path
// parameter holding the target id.
//
//	POST /api/v1/likes/toggle/v/:videoId
//	POST /api/v1/likes/toggle/c/:commentId
//	POST /api/v1/likes/toggle/t/:tweetId
func (h *LikeHandler) Toggle(targetType models.LikeTargetType, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := pathID(c, param, string(targetType))
		if err != nil {
			response.Error(c, h.logger, err)
			return
		}

		target := models.LikeTarget{Type: targetType, ID: targetID}
		liked, err := h.likes.Toggle(c.Request.Context(), middleware.GetUserID(c), target)
		if err != nil {
			response.Error(c, h.logger, err)
			return
		}

		message := "Unliked successfully"
		if liked {
			message = "Liked successfully"
		}
		response.JSON(c, http.StatusOK, gin.H{"liked": liked}, message)
	}
}

// LikedVideos handles GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.likes.LikedVideos(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, videos, "Liked videos fetched successfully")
}
