package repositories

import (
	"context"
	"time"

	"github.com/GymFlow-2025/gym-service/internal/models"
)

// ClassRepository owns class persistence. GetByID and the list operations
// preload trainer and trainee records.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (*models.Class, error)

	// GetByIDForUpdate locks the class row for the rest of the enclosing
	// transaction. Only meaningful inside Repository.WithTransaction; it is
	// what serializes concurrent bookings of the same class.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error)

	List(ctx context.Context, filters ClassFilters) ([]*models.Class, int64, error)
	ListAvailable(ctx context.Context, now time.Time) ([]*models.Class, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]*models.Class, error)

	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id uint) error

	// CountByStartBetween counts classes starting inside [from, to), the
	// primitive behind the daily scheduling quota.
	CountByStartBetween(ctx context.Context, from, to time.Time) (int64, error)

	// AddTrainee persists a new enrollment: the join row plus the already
	// recomputed enrolled counter on class.
	AddTrainee(ctx context.Context, class *models.Class, trainee *models.User) error
}
