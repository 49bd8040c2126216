package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GymFlow-2025/gym-service/internal/events"
	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
	"github.com/GymFlow-2025/gym-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ClassService {
	return &classService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Create schedules a class. The trainer check and the per-day quota count run
// inside one transaction so two concurrent creations cannot both squeeze past
// the five-per-day limit.
func (s *classService) Create(ctx context.Context, req *CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	class := &models.Class{
		Name:      req.Name,
		TrainerID: req.Trainer,
		Start:     req.Start,
	}
	class.RecomputeEnd()
	class.RecomputeEnrolled()

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		isTrainer, err := txRepo.User().HasRole(ctx, req.Trainer, models.RoleTrainer)
		if err != nil {
			return fmt.Errorf("failed to check trainer: %w", err)
		}
		if !isTrainer {
			return ErrTrainerNotFound
		}

		dayStart, dayEnd := models.DayWindow(class.Start)
		count, err := txRepo.Class().CountByStartBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to count classes for the day: %w", err)
		}
		if count >= models.MaxClassesPerDay {
			return ErrDailyQuotaExceeded
		}

		return txRepo.Class().Create(ctx, class)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("class created", "class_id", class.ID, "trainer_id", class.TrainerID, "start", class.Start)

	s.publish(ctx, events.NewEvent(events.EventClassCreated, map[string]interface{}{
		"class_id":   class.ID,
		"trainer_id": class.TrainerID,
		"start":      class.Start,
	}))

	return s.GetByID(ctx, class.ID)
}

// Update edits class fields. Moving the start recomputes the end; the per-day
// quota is not re-checked here, only at creation.
func (s *classService) Update(ctx context.Context, id uint, req *UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		class, err := txRepo.Class().GetByIDForUpdate(ctx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrClassNotFound
			}
			return fmt.Errorf("failed to get class: %w", err)
		}

		if req.Name != nil {
			class.Name = *req.Name
		}
		if req.Trainer != nil {
			class.TrainerID = *req.Trainer
		}
		if req.Start != nil {
			class.Start = *req.Start
			class.RecomputeEnd()
		}
		class.RecomputeEnrolled()

		return txRepo.Class().Update(ctx, class)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Book enrolls a trainee. The class row is read under a row lock so two
// concurrent bookings for the last seat serialize; the loser sees the class
// full and fails cleanly.
func (s *classService) Book(ctx context.Context, classID uint, traineeID string) (*models.Class, error) {
	now := time.Now()

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		class, err := txRepo.Class().GetByIDForUpdate(ctx, classID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				// A vanished class and an ended class answer the same way.
				return ErrClassNotAvailable
			}
			return fmt.Errorf("failed to get class: %w", err)
		}

		if !class.Bookable(now) {
			return ErrClassNotAvailable
		}
		if class.HasTrainee(traineeID) {
			return ErrAlreadyBooked
		}
		if class.IsFull() {
			return ErrClassFull
		}

		trainee, err := txRepo.User().GetByID(ctx, traineeID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get trainee: %w", err)
		}

		class.Trainees = append(class.Trainees, *trainee)
		class.RecomputeEnrolled()
		return txRepo.Class().AddTrainee(ctx, class, trainee)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("class booked", "class_id", classID, "trainee_id", traineeID)

	s.publish(ctx, events.NewEvent(events.EventClassBooked, map[string]interface{}{
		"class_id":   classID,
		"trainee_id": traineeID,
	}))

	return s.GetByID(ctx, classID)
}

func (s *classService) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	class, err := s.repo.Class().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return class, nil
}

func (s *classService) List(ctx context.Context, filters repositories.ClassFilters) (*ClassListResponse, error) {
	classes, total, err := s.repo.Class().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return &ClassListResponse{Classes: classes, Total: total}, nil
}

func (s *classService) ListAvailable(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.repo.Class().ListAvailable(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list available classes: %w", err)
	}
	return classes, nil
}

func (s *classService) ListAssigned(ctx context.Context, trainerID string) ([]*models.Class, error) {
	classes, err := s.repo.Class().ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned classes: %w", err)
	}
	return classes, nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Class().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassNotFound
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.logger.Info("class deleted", "class_id", id)

	s.publish(ctx, events.NewEvent(events.EventClassCancelled, map[string]interface{}{
		"class_id": id,
	}))
	return nil
}

func (s *classService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
