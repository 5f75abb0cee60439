package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/service"
)

const currentUserKey = "current_user"

// AuthMiddleware extracts the bearer token, resolves the current user and
// stores it in the request context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Not authenticated",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		user, err := authService.ResolveCurrentUser(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAccountInactive):
				c.JSON(http.StatusForbidden, gin.H{"detail": "Usuario inactivo"})
			case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AdminMiddleware requires the resolved user to have the admin flag. Must
// run after AuthMiddleware.
func AdminMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if err := authService.RequireAdmin(user); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"detail": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
