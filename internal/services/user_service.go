package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/GymFlow-2025/gym-service/internal/auth"
	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
	"github.com/GymFlow-2025/gym-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	mailer    Mailer
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.Repository,
	mailer Mailer,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	return &userService{
		repo:      repo,
		mailer:    mailer,
		logger:    logger,
		validator: validator,
	}
}

// CreateTrainer provisions a trainer account. Admin only; the handler layer
// enforces the role gate.
func (s *userService) CreateTrainer(ctx context.Context, req *CreateTrainerRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	trainer := &models.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    email,
		Role:     models.RoleTrainer,
		Password: hash,
	}

	if err := s.repo.User().Create(ctx, trainer); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("trainer created", "user_id", trainer.ID)

	if err := s.mailer.SendWelcome(ctx, trainer.Email, trainer.Name); err != nil {
		return nil, fmt.Errorf("failed to send welcome email: %w", err)
	}

	return trainer, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

// UpdateMe applies self-service profile changes. Only name and email are
// representable in the request type; passwords go through ChangePassword.
func (s *userService) UpdateMe(ctx context.Context, userID string, req *UpdateMeRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = normalizeEmail(*req.Email)
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, userID)
	}

	user, err := s.repo.User().UpdateFields(ctx, userID, fields)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) AdminUpdate(ctx context.Context, id string, req *AdminUpdateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	user, err := s.repo.User().UpdateFields(ctx, id, fields)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated by admin", "user_id", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
