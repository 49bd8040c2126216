package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GymFlow-2025/gym-service/internal/cache"
	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
)

// ClassPostgreSQL implements ClassRepository on gorm with cache-aside reads.
type ClassPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewClassPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ClassRepository {
	return &ClassPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

func (c *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.List, "*")
	return nil
}

// GetByID retrieves a class with trainer and trainees populated, serving from
// cache when possible.
func (c *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var class models.Class

	err := c.cacheManager.Class.CacheOrExecute(ctx, cacheKey, &class, cache.ClassCacheConfig.TTL, func() (interface{}, error) {
		var dbClass models.Class
		err := c.db.WithContext(ctx).
			Preload("Trainer").
			Preload("Trainees").
			First(&dbClass, id).Error
		if err != nil {
			return nil, err
		}
		return &dbClass, nil
	})
	if err != nil {
		return nil, err
	}

	return &class, nil
}

// GetByIDForUpdate reads the class with its row locked until the enclosing
// transaction ends. Bypasses the cache: a locked read must see current state.
func (c *ClassPostgreSQL) GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := c.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, id).Error
	if err != nil {
		return nil, err
	}

	// Associations load outside the locking clause; the join rows are only
	// written under the same lock, so this view is consistent.
	if err := c.db.WithContext(ctx).Model(&class).Association("Trainees").Find(&class.Trainees); err != nil {
		return nil, fmt.Errorf("failed to load trainees: %w", err)
	}
	return &class, nil
}

func (c *ClassPostgreSQL) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Class{})
	query = c.helpers.ApplyClassFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count classes: %w", err)
	}

	var classes []*models.Class
	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	err := query.
		Preload("Trainer").
		Preload("Trainees").
		Find(&classes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}

	return classes, total, nil
}

// ListAvailable returns classes that have not ended and still have capacity.
func (c *ClassPostgreSQL) ListAvailable(ctx context.Context, now time.Time) ([]*models.Class, error) {
	cacheKey := "available"
	var classes []*models.Class

	err := c.cacheManager.List.CacheOrExecute(ctx, cacheKey, &classes, cache.ListCacheConfig.TTL, func() (interface{}, error) {
		var dbClasses []*models.Class
		err := c.db.WithContext(ctx).
			Where("\"end\" >= ? AND enrolled < ?", now, models.MaxTraineesPerClass).
			Order("start ASC").
			Preload("Trainer").
			Find(&dbClasses).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list available classes: %w", err)
		}
		return dbClasses, nil
	})
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (c *ClassPostgreSQL) ListByTrainer(ctx context.Context, trainerID string) ([]*models.Class, error) {
	var classes []*models.Class
	err := c.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("start ASC").
		Preload("Trainees").
		Find(&classes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned classes: %w", err)
	}
	return classes, nil
}

func (c *ClassPostgreSQL) Update(ctx context.Context, class *models.Class) error {
	if err := c.db.WithContext(ctx).Omit(clause.Associations).Save(class).Error; err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	cache.InvalidateClassCache(ctx, c.cacheManager, class.ID)
	return nil
}

func (c *ClassPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&models.Class{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete class: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateClassCache(ctx, c.cacheManager, id)
	return nil
}

func (c *ClassPostgreSQL) CountByStartBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("start >= ? AND start < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count classes per day: %w", err)
	}
	return count, nil
}

func (c *ClassPostgreSQL) AddTrainee(ctx context.Context, class *models.Class, trainee *models.User) error {
	err := c.db.WithContext(ctx).
		Model(class).
		Omit("Trainees.*"). // link only, never upsert the user row
		Association("Trainees").
		Append(trainee)
	if err != nil {
		return fmt.Errorf("failed to enroll trainee: %w", err)
	}

	err = c.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("id = ?", class.ID).
		Update("enrolled", class.Enrolled).Error
	if err != nil {
		return fmt.Errorf("failed to update enrolled count: %w", err)
	}

	cache.InvalidateClassCache(ctx, c.cacheManager, class.ID)
	return nil
}
