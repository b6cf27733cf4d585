package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/response"
	"go.uber.org/zap"
)

// Context keys for the authenticated caller.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyEmail    = "email"
)

// AccessTokenCookie is the cookie login sets. Browsers send it on their
// own; other clients use the Authorization header.
const AccessTokenCookie = "accessToken"

// accessToken reads the token from the cookie first, then from an
// "Authorization: Bearer <token>" header. Empty means none was sent.
func accessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func setClaims(c *gin.Context, claims *auth.AccessClaims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeyEmail, claims.Email)
}

// RequireAuth rejects the request with 401 unless it carries a valid
// access token.
func RequireAuth(tokens *auth.TokenIssuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error(c, logger, apperr.Unauthenticated("Unauthorized request"))
			return
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			response.Error(c, logger, apperr.Unauthenticated("Invalid access token"))
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// lets the request through anonymously otherwise. A bad token is treated
// like no token.
func OptionalAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := accessToken(c); token != "" {
			if claims, err := tokens.ParseAccess(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user, or uuid.Nil for anonymous
// requests.
func GetUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}
