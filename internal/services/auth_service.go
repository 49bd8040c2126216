package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GymFlow-2025/gym-service/internal/auth"
	"github.com/GymFlow-2025/gym-service/internal/events"
	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
	"github.com/GymFlow-2025/gym-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	mailer    Mailer
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	mailer Mailer,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
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

	// Self-service signups are always trainees, whatever the payload says.
	user := &models.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    email,
		Role:     models.RoleTrainee,
		Password: hash,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	// Welcome mail is sent before responding; its failure fails the signup
	// response (the account itself is already created).
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		return nil, fmt.Errorf("failed to send welcome email: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}))

	return s.respondWithToken(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same answer as a wrong password, no account enumeration.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(user)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if claims.IssuedAt != nil && user.TokenIssuedBeforePasswordChange(claims.IssuedAt.Time) {
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(req.CurrentPassword, user.Password) {
		return nil, ErrWrongPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err = s.repo.User().UpdateFields(ctx, user.ID, map[string]interface{}{
		"password":            hash,
		"password_changed_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", "user_id", user.ID)

	// Tokens issued before password_changed_at are now stale; hand out a
	// fresh one.
	return s.respondWithToken(user)
}

func (s *authService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, resetBaseURL string) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	plain, hash, expires, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if _, err := s.repo.User().UpdateFields(ctx, user.ID, map[string]interface{}{
		"password_reset_token":   hash,
		"password_reset_expires": expires,
	}); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", strings.TrimRight(resetBaseURL, "/"), plain)
	text := fmt.Sprintf("Please go to the following link to reset your password: %s", resetURL)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetURL, text); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken string, req *ResetPasswordRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByResetToken(ctx, auth.HashResetToken(resetToken), time.Now())
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err = s.repo.User().UpdateFields(ctx, user.ID, map[string]interface{}{
		"password":               hash,
		"password_changed_at":    now,
		"password_reset_token":   nil,
		"password_reset_expires": nil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)

	return s.respondWithToken(user)
}

func (s *authService) respondWithToken(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *authService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
