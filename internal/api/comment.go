package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

type CommentHandler struct {
	comments *service.CommentService
	reads    *service.ReadModel
	logger   *zap.Logger
}

func NewCommentHandler(comments *service.CommentService, reads *service.ReadModel, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, reads: reads, logger: logger}
}

// Content is validated by the service, after the ownership check on
// updates, so the body carries no binding rules.
type commentRequest struct {
	Content string `json:"content"`
}

type pageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// List handles GET /api/v1/comments/:videoId?page=1&limit=10
func (h *CommentHandler) List(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, h.logger, apperr.InvalidInput("page and limit must be numbers"))
		return
	}

	page, err := h.reads.VideoComments(c.Request.Context(), videoID, q.Page, q.Limit, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page, "Comments fetched successfully")
}

// Add handles POST /api/v1/comments/:videoId
func (h *CommentHandler) Add(c *gin.Context) {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), middleware.GetUserID(c), videoID, req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, comment, "Comment added successfully")
}

// Update handles PATCH /api/v1/comments/c/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := pathID(c, "commentId", "comment")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, inputError(c, h.comments.CheckOwner, commentID, bindError(err)))
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), middleware.GetUserID(c), commentID, req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/c/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := pathID(c, "commentId", "comment")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), middleware.GetUserID(c), commentID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
