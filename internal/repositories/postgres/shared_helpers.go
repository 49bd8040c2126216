package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/GymFlow-2025/gym-service/internal/repositories"
)

// SharedHelpers contains query-building helpers shared by the repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyClassFilters applies common filters to class queries.
func (h *SharedHelpers) ApplyClassFilters(query *gorm.DB, filters repositories.ClassFilters) *gorm.DB {
	if filters.TrainerID != nil {
		query = query.Where("trainer_id = ?", *filters.TrainerID)
	}
	if filters.DateFrom != nil {
		query = query.Where("start >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("start <= ?", *filters.DateTo)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with a column
// whitelist so sort parameters cannot inject SQL.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"start":      true,
		"enrolled":   true,
	}

	if !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
