package rest

import (
	"net/http"

	"stockstores-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// requireAuth rejects requests the auth middleware did not attach a caller to.
func requireAuth(c *gin.Context) {
	if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}
	c.Next()
}

func callerID(c *gin.Context) string {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}

// requireSelf writes a 403 unless userID is the caller.
func requireSelf(c *gin.Context, userID string) bool {
	if userID == "" || userID != callerID(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You can only act on your own account."})
		return false
	}
	return true
}
