// Package response writes the envelope every endpoint answers with:
//
//	{"statusCode": 200, "data": ..., "message": "...", "success": true}
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/apperr"
	"go.uber.org/zap"
)

type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func New(status int, data any, message string) Envelope {
	return Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	}
}

// JSON writes data wrapped in the envelope.
func JSON(c *gin.Context, status int, data any, message string) {
	c.JSON(status, New(status, data, message))
}

// Error maps err to its status and aborts the chain. Internal errors are
// logged with their cause; the client only sees the generic message.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := kind.Status()

	if kind == apperr.KindInternal {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, New(status, nil, apperr.Message(err)))
}
