package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
	logger        *zap.Logger
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, logger: logger}
}

// Toggle handles POST /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := pathID(c, "channelId", "channel")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	subscribed, err := h.subscriptions.Toggle(c.Request.Context(), middleware.GetUserID(c), channelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	response.JSON(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

// Subscribers handles GET /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := pathID(c, "channelId", "channel")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	subscribers, err := h.subscriptions.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// SubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, err := pathID(c, "subscriberId", "subscriber")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	channels, err := h.subscriptions.SubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
