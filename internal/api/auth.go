package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/response"
	"github.com/lalith-99/vidora/internal/service"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler handles the session endpoints: register, login, refresh
// and logout. Only logout sits behind RequireAuth.
type AuthHandler struct {
	users         *service.UserService
	tokens        *auth.TokenIssuer
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthHandler(users *service.UserService, tokens *auth.TokenIssuer, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, pair auth.Pair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(h.tokens.AccessTTL()/time.Second), "/", "", h.secureCookies, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken,
		int(h.tokens.RefreshTTL()/time.Second), "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
}

// Register handles POST /api/v1/users/register (multipart form).
func (h *AuthHandler) Register(c *gin.Context) {
	avatar, err := formFile(c, "avatar")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer avatar.Close()

	cover, err := formFile(c, "coverImage")
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	defer cover.Close()

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		FullName:   c.PostForm("fullName"),
		Email:      c.PostForm("email"),
		Username:   c.PostForm("username"),
		Password:   c.PostForm("password"),
		Avatar:     avatar.File(),
		CoverImage: cover.File(),
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, user, "User registered Successfully")
}

// Login handles POST /api/v1/users/login. Either email or username
// identifies the account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, bindError(err))
		return
	}

	user, pair, err := h.users.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.setSessionCookies(c, pair)
	response.JSON(c, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged In Successfully")
}

// Logout handles POST /api/v1/users/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.clearSessionCookies(c)
	response.JSON(c, http.StatusOK, gin.H{}, "User logged Out")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The token comes
// from the cookie, or from the JSON body for non-browser clients.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		var req refreshRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				response.Error(c, h.logger, bindError(err))
				return
			}
		}
		token = req.RefreshToken
	}

	pair, err := h.users.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.setSessionCookies(c, pair)
	response.JSON(c, http.StatusOK, pair, "Access token refreshed")
}
