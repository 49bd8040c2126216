package repositories

import (
	"time"

	"github.com/GymFlow-2025/gym-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // matches name or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ClassFilters struct {
	TrainerID *string    `json:"trainer_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "start", "name", "created_at"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}
