package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GymFlow-2025/gym-service/internal/repositories"
	"github.com/GymFlow-2025/gym-service/internal/services"
	"github.com/GymFlow-2025/gym-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService  services.ClassService
	reportService services.ReportService
}

func NewClassHandler(classService services.ClassService, reportService services.ReportService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:   NewBaseHandler(logger),
		classService:  classService,
		reportService: reportService,
	}
}

// CreateClass schedules a class. Admin only.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    gin.H{"class": class},
	})
}

// UpdateClass edits class fields. Admin only.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"class": class},
	})
}

// BookClass enrolls the calling trainee into a class.
func (h *ClassHandler) BookClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	class, err := h.classService.Book(c.Request.Context(), id, c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booked successfully",
		Data:    gin.H{"class": class},
	})
}

// GetClass fetches one class with trainer and trainees populated.
func (h *ClassHandler) GetClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"class": class},
	})
}

// ListClasses returns classes with optional trainer/date filters.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	filters := repositories.ClassFilters{
		Limit:     queryInt(c, "limit", 0),
		Offset:    queryInt(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if trainerID := c.Query("trainer"); trainerID != "" {
		filters.TrainerID = &trainerID
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid date_from parameter"})
			return
		}
		filters.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid date_to parameter"})
			return
		}
		filters.DateTo = &t
	}

	resp, err := h.classService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"classes": resp.Classes, "total": resp.Total},
	})
}

// ListAvailableClasses returns classes that have not ended and still have
// capacity.
func (h *ClassHandler) ListAvailableClasses(c *gin.Context) {
	classes, err := h.classService.ListAvailable(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"classes": classes},
	})
}

// ListAssignedClasses returns the classes taught by the calling trainer.
func (h *ClassHandler) ListAssignedClasses(c *gin.Context) {
	classes, err := h.classService.ListAssigned(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    gin.H{"classes": classes},
	})
}

// DeleteClass cancels a class. Admin only.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportSchedule streams the schedule as an xlsx workbook. Admin only.
func (h *ClassHandler) ExportSchedule(c *gin.Context) {
	filename := fmt.Sprintf("schedule_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.WriteScheduleReport(c.Request.Context(), c.Writer); err != nil {
		h.LogError(c, "failed to export schedule", err)
		c.Status(http.StatusInternalServerError)
		return
	}
}
