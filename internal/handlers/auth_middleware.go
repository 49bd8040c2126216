package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/services"
)

const sessionCookieName = "jwt"

// SessionAuthMiddleware authenticates requests from the session cookie issued
// at login, with a Bearer header fallback for non-browser clients.
type SessionAuthMiddleware struct {
	authService services.AuthService
}

func NewSessionAuthMiddleware(authService services.AuthService) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{authService: authService}
}

// AuthMiddleware resolves the session token to a live user and stores it on
// the context. Stale tokens (issued before the last password change) fail.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		user, err := sam.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.ErrUnauthenticated.Error(),
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// RequireRoleMiddleware gates a route on the caller's role. Must run after
// AuthMiddleware.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.ErrUnauthenticated.Error(),
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: services.ErrUnauthenticated.Error(),
			})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: roleDenialMessage(allowedRoles),
		})
		c.Abort()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// roleDenialMessage phrases the denial with the grammatically right article,
// e.g. "an admin" but "a trainer".
func roleDenialMessage(roles []models.UserRole) string {
	phrases := make([]string, len(roles))
	for i, role := range roles {
		phrases[i] = withArticle(string(role))
	}
	return "Unauthorized access. You must be " + strings.Join(phrases, " or ") + " to perform this action."
}

func withArticle(noun string) string {
	if noun == "" {
		return noun
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}
