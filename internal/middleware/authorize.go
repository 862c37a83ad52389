package middleware

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RequirePrivileged allows only admins and managers through
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentRole(c).IsPrivileged() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin or manager role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only admins through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAccountant allows only members of the Accountants group through
func RequireAccountant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleAccountant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accountant role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrivilegedWrites allows safe methods for everyone and restricts mutating
// methods to admins and managers
func PrivilegedWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !CurrentRole(c).IsPrivileged() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin or manager role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
