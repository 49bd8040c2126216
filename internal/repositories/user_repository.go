package repositories

import (
	"context"
	"time"

	"github.com/GymFlow-2025/gym-service/internal/models"
)

// UserRepository owns account persistence. Reads always return the full
// record including credential fields; it is the caller's job never to let a
// password hash escape (the model strips them from JSON).
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByResetToken finds the user holding an unexpired reset-token hash.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	Delete(ctx context.Context, id string) error

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}
