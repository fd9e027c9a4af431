package middleware

import (
	"net/http"

	"github.com/clubstack/backend/internal/authz"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the user-management and admin-stats routes. The 401
// (not 403) matches the rest of the public contract.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.CanManageUsers(GetPrincipal(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized"})
			return
		}
		c.Next()
	}
}
