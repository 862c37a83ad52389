package middleware

import (
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BearerTokenMiddleware struct {
	authService *auth.AuthService
	userRepo    *repository.UserRepository
}

func NewBearerTokenMiddleware(authService *auth.AuthService, db *gorm.DB) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{
		authService: authService,
		userRepo:    repository.NewUserRepository(db),
	}
}

// BearerTokenAuthMiddleware validates the JWT and loads the user, with
// group memberships and analyst profile, into the request context
func (m *BearerTokenMiddleware) BearerTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		tokenInfo, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := m.userRepo.GetByID(tokenInfo.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("role", models.ResolveRole(user))

		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the context
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

// CurrentRole extracts the resolved role from the context
func CurrentRole(c *gin.Context) models.Role {
	return c.MustGet("role").(models.Role)
}
