package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

// UserHandler serves the signed-in user's account and the public
// channel pages.
type UserHandler struct {
	users  *service.UserService
	reads  *service.ReadModel
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, reads *service.ReadModel, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, reads: reads, logger: logger}
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,notblank,min=8,max=72"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
}

// CurrentUser handles GET /api/v1/users/current-user
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.users.CurrentUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "User fetched successfully")
}

// ChangePassword handles POST /api/v1/users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	user, err := h.users.UpdateAccount(c.Request.Context(), middleware.GetUserID(c), req.FullName, req.Email)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart "avatar").
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	avatar, err := formFile(c, "avatar")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer avatar.Close()

	user, err := h.users.UpdateAvatar(c.Request.Context(), middleware.GetUserID(c), avatar.File())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "Avatar image updated successfully")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image (multipart "coverImage").
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	cover, err := formFile(c, "coverImage")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer cover.Close()

	user, err := h.users.UpdateCoverImage(c.Request.Context(), middleware.GetUserID(c), cover.File())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "Cover image updated successfully")
}

// ChannelProfile handles GET /api/v1/users/c/:username. Authentication is
// optional; it only decides isSubscribed.
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.reads.ChannelProfile(c.Request.Context(), c.Param("username"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, "User channel fetched successfully")
}

// WatchHistory handles GET /api/v1/users/history
func (h *UserHandler) WatchHistory(c *gin.Context) {
	videos, err := h.reads.WatchHistory(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusOK, videos, "Watch history fetched successfully")
}
