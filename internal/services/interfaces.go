package services

import (
	"context"
	"io"
	"time"

	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type SignUpRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPass" validate:"required"`
	NewPassword     string `json:"passNew" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passConfirm" validate:"required,eqfield=NewPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type CreateTrainerRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UpdateMeRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// AdminUpdateUserRequest may change the role; password fields are not even
// representable here, and the service strips them from any raw payload.
type AdminUpdateUserRequest struct {
	Name  *string          `json:"name" validate:"omitempty,max=100"`
	Email *string          `json:"email" validate:"omitempty,email"`
	Role  *models.UserRole `json:"role" validate:"omitempty,oneof=trainee trainer admin"`
}

type CreateClassRequest struct {
	Name    string    `json:"name" validate:"required,max=100"`
	Trainer string    `json:"trainer" validate:"required"`
	Start   time.Time `json:"start" validate:"required"`
}

type UpdateClassRequest struct {
	Name    *string    `json:"name" validate:"omitempty,max=100"`
	Trainer *string    `json:"trainer"`
	Start   *time.Time `json:"start"`
}

// AuthResponse carries the authenticated user plus a fresh session token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"-"` // travels as a cookie, never in the body
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

type ClassListResponse struct {
	Classes []*models.Class `json:"classes"`
	Total   int64           `json:"total"`
}

// ===== COLLABORATOR INTERFACES =====

// Mailer is the outbound mail capability injected into AuthService. Failures
// propagate: the request that triggered the mail fails with it.
type Mailer interface {
	SendWelcome(ctx context.Context, toEmail, toName string) error
	SendPasswordReset(ctx context.Context, toEmail, toName, resetURL, text string) error
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// Authenticate resolves a session token to a live user. Fails with
	// ErrUnauthenticated for missing/invalid/expired tokens, vanished users,
	// and tokens issued before the user's last password change.
	Authenticate(ctx context.Context, token string) (*models.User, error)

	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, resetBaseURL string) error
	ResetPassword(ctx context.Context, resetToken string, req *ResetPasswordRequest) (*AuthResponse, error)
}

type UserService interface {
	CreateTrainer(ctx context.Context, req *CreateTrainerRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	UpdateMe(ctx context.Context, userID string, req *UpdateMeRequest) (*models.User, error)
	AdminUpdate(ctx context.Context, id string, req *AdminUpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ClassService interface {
	Create(ctx context.Context, req *CreateClassRequest) (*models.Class, error)
	Update(ctx context.Context, id uint, req *UpdateClassRequest) (*models.Class, error)
	Book(ctx context.Context, classID uint, traineeID string) (*models.Class, error)

	GetByID(ctx context.Context, id uint) (*models.Class, error)
	List(ctx context.Context, filters repositories.ClassFilters) (*ClassListResponse, error)
	ListAvailable(ctx context.Context) ([]*models.Class, error)
	ListAssigned(ctx context.Context, trainerID string) ([]*models.Class, error)

	Delete(ctx context.Context, id uint) error
}

type ReportService interface {
	// WriteScheduleReport writes the full class schedule as an xlsx workbook.
	WriteScheduleReport(ctx context.Context, w io.Writer) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Class() ClassService
	Report() ReportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
