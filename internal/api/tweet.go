package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type TweetHandler struct {
	tweets *service.TweetService
	logger *zap.Logger
}

func NewTweetHandler(tweets *service.TweetService, logger *zap.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, logger: logger}
}

type createTweetRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type updateTweetRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	tweet, err := h.tweets.Create(c.Request.Context(), middleware.GetUserID(c), req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// UserTweets handles GET /api/v1/tweets/user/:userId
func (h *TweetHandler) UserTweets(c *gin.Context) {
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	tweets, err := h.tweets.UserTweets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/:tweetId
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := pathID(c, "tweetId", "tweet")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req updateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, inputError(c, h.tweets.CheckOwner, tweetID, bindError(err)))
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), middleware.GetUserID(c), tweetID, req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/:tweetId
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := pathID(c, "tweetId", "tweet")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), middleware.GetUserID(c), tweetID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
