package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GymFlow-2025/gym-service/internal/config"
	"github.com/GymFlow-2025/gym-service/internal/services"
	"github.com/GymFlow-2025/gym-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService services.AuthService, cfg *config.Config, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		cfg:         cfg,
	}
}

// Signup registers a trainee account and opens a session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": resp.User},
	})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": resp.User},
	})
}

// Logout replaces the session cookie with a short-lived placeholder so the
// browser drops it almost immediately.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookieName, "loggedOut", 5, "/", "", h.cfg.Production(), true)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ForgotPassword mails a time-boxed reset link. The plain token travels only
// in the mail; the store keeps a hash.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req, h.resetBaseURL(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Token sent to email",
	})
}

// ResetPassword consumes a reset token and opens a fresh session.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": resp.User},
	})
}

// ChangePassword updates the caller's password and rotates the session.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetString("user_id")
	resp, err := h.authService.ChangePassword(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"user": resp.User},
	})
}

// setSessionCookie writes the jwt cookie. SameSite=None so browser clients on
// other origins can send it; secure transport is required in production.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.CookieExpiresIn / time.Second)
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", h.cfg.Production(), true)
}

// resetBaseURL prefers the configured public base URL and falls back to the
// request's own scheme and host.
func (h *AuthHandler) resetBaseURL(c *gin.Context) string {
	if h.cfg.AppBaseURL != "" {
		return h.cfg.AppBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
