package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the signed-in user's own channel numbers.
type DashboardHandler struct {
	reads  *service.ReadModel
	videos *service.VideoService
	logger *zap.Logger
}

func NewDashboardHandler(reads *service.ReadModel, videos *service.VideoService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{reads: reads, videos: videos, logger: logger}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.reads.ChannelStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(c *gin.Context) {
	videos, err := h.videos.ChannelVideos(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, videos, "Channel videos fetched successfully")
}
