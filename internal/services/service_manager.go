package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GymFlow-2025/gym-service/internal/auth"
	"github.com/GymFlow-2025/gym-service/internal/events"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
	"github.com/GymFlow-2025/gym-service/internal/validator"
)

// serviceManager wires the services over their shared dependencies and owns
// their lifecycle.
type serviceManager struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	mailer    Mailer
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator

	authService   AuthService
	userService   UserService
	classService  ClassService
	reportService ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	mailer Mailer,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		tokens:    tokens,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Initialize constructs all services. Safe to call once; later calls no-op.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.tokens, sm.mailer, sm.publisher, sm.logger, sm.validator)
	sm.userService = NewUserService(sm.repo, sm.mailer, sm.logger, sm.validator)
	sm.classService = NewClassService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("service manager initialized")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Class() ClassService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.classService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.shutdown {
		return fmt.Errorf("service manager not running")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("failed to close event publisher", "error", err)
	}
	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("failed to close repository", "error", err)
	}

	sm.shutdown = true
	return nil
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}
