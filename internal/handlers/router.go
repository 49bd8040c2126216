package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GymFlow-2025/gym-service/internal/config"
	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/services"
	"github.com/GymFlow-2025/gym-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	classHandler   *ClassHandler
	authMiddleware *SessionAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), cfg, logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		classHandler:   NewClassHandler(serviceManager.Class(), serviceManager.Report(), logger),
		authMiddleware: NewSessionAuthMiddleware(serviceManager.Auth()),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	{
		// Open routes
		users.POST("/signup", hm.authHandler.Signup)
		users.POST("/login", hm.authHandler.Login)
		users.GET("/logout", hm.authHandler.Logout)
		users.POST("/forgotPassword", hm.authHandler.ForgotPassword)
		users.PATCH("/resetPassword/:token", hm.authHandler.ResetPassword)

		// Everything below requires a session
		users.Use(hm.authMiddleware.AuthMiddleware())

		users.PATCH("/changePassword", hm.authHandler.ChangePassword)
		users.PATCH("/me", hm.userHandler.UpdateMe)

		// Admin-only account management
		users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
		users.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.CreateTrainer)
		users.GET("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.GetUser)
		users.PATCH("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.UpdateUser)
		users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.DeleteUser)
	}

	classes := v1.Group("/classes")
	classes.Use(hm.authMiddleware.AuthMiddleware())
	{
		classes.GET("", hm.classHandler.ListClasses)
		classes.GET("/available", hm.classHandler.ListAvailableClasses)
		classes.GET("/trainer/assigned", hm.authMiddleware.RequireRoleMiddleware(models.RoleTrainer), hm.classHandler.ListAssignedClasses)
		classes.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.ExportSchedule)
		classes.GET("/:id", hm.classHandler.GetClass)

		classes.PATCH("/:id/book", hm.authMiddleware.RequireRoleMiddleware(models.RoleTrainee), hm.classHandler.BookClass)

		classes.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.CreateClass)
		classes.PATCH("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.UpdateClass)
		classes.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.DeleteClass)
	}
}

// HealthCheck reports liveness plus downstream dependency health.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gym-service",
	})
}
