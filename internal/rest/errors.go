package rest

import (
	"net/http"
	"strings"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errBadBody = apperr.New(apperr.Validation, "invalid request body")

func statusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.InsufficientStock, apperr.DuplicateReview, apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"message": ...}. Joined errors also list each
// part under "details".
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msgs := apperr.Messages(err)

	body := gin.H{"message": strings.Join(msgs, "; ")}
	if len(msgs) > 1 {
		body["details"] = msgs
	}

	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, body)
}

// bind decodes the JSON body into v, writing a 400 on failure.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		logger.FromCtx(c.Request.Context()).Debug("bad request body", zap.Error(err))
		writeError(c, errBadBody)
		return false
	}
	return true
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
