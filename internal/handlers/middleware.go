package handler

import (
	"net/http"
	"strconv"

	"business-admin-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys shared across handlers.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionRole     = "role"
)

// AuthRequired rejects requests without an authenticated session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get(SessionUserID) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects sessions whose role is not admin. Must run after
// AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if role, _ := sess.Get(SessionRole).(string); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "admin access required",
			})
			return
		}
		c.Next()
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
