package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/GymFlow-2025/gym-service/internal/models"
	"github.com/GymFlow-2025/gym-service/internal/repositories"
)

// fakeRepo is an in-memory repositories.Repository for service tests. It
// serializes everything behind one mutex, which also stands in for the row
// lock the real repository takes during bookings.
type fakeRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	classes map[uint]*models.Class
	nextID  uint

	userRepo  *fakeUserRepo
	classRepo *fakeClassRepo
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		users:   make(map[string]*models.User),
		classes: make(map[uint]*models.Class),
		nextID:  1,
	}
	r.userRepo = &fakeUserRepo{r: r}
	r.classRepo = &fakeClassRepo{r: r}
	return r
}

func (r *fakeRepo) User() repositories.UserRepository   { return r.userRepo }
func (r *fakeRepo) Class() repositories.ClassRepository { return r.classRepo }

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

func (r *fakeRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                   { return nil }

// seedUser inserts a user directly, bypassing the service layer.
func (r *fakeRepo) seedUser(u *models.User) *models.User {
	cp := *u
	r.users[cp.ID] = &cp
	return &cp
}

// seedClass inserts a class directly, assigning an id.
func (r *fakeRepo) seedClass(c *models.Class) *models.Class {
	cp := *c
	if cp.ID == 0 {
		cp.ID = r.nextID
		r.nextID++
	}
	r.classes[cp.ID] = &cp
	return &cp
}

// ===== fakeUserRepo =====

type fakeUserRepo struct {
	r *fakeRepo
}

func copyUser(u *models.User) *models.User {
	cp := *u
	return &cp
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.r.users[user.ID] = copyUser(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyUser(u), nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	for _, u := range f.r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == tokenHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now) {
			return copyUser(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.r.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.Query != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(filters.Query)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(filters.Query)) {
			continue
		}
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.users[user.ID] = copyUser(user)
	return nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for name, value := range fields {
		switch name {
		case "name":
			u.Name = value.(string)
		case "email":
			email := value.(string)
			for otherID, other := range f.r.users {
				if otherID != id && other.Email == email {
					return nil, gorm.ErrDuplicatedKey
				}
			}
			u.Email = email
		case "role":
			u.Role = value.(models.UserRole)
		case "password":
			u.Password = value.(string)
		case "password_changed_at":
			if value == nil {
				u.PasswordChangedAt = nil
			} else {
				t := value.(time.Time)
				u.PasswordChangedAt = &t
			}
		case "password_reset_token":
			if value == nil {
				u.PasswordResetToken = nil
			} else {
				s := value.(string)
				u.PasswordResetToken = &s
			}
		case "password_reset_expires":
			if value == nil {
				u.PasswordResetExpires = nil
			} else {
				t := value.(time.Time)
				u.PasswordResetExpires = &t
			}
		}
	}
	return copyUser(u), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.r.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, ok := f.r.users[id]
	if !ok {
		return false, nil
	}
	return u.Role == role, nil
}

// ===== fakeClassRepo =====

type fakeClassRepo struct {
	r *fakeRepo
}

func copyClass(c *models.Class) *models.Class {
	cp := *c
	cp.Trainees = append([]models.User(nil), c.Trainees...)
	return &cp
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	class.ID = f.r.nextID
	f.r.nextID++
	f.r.classes[class.ID] = copyClass(class)
	return nil
}

func (f *fakeClassRepo) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	c, ok := f.r.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := copyClass(c)
	if trainer, ok := f.r.users[c.TrainerID]; ok {
		cp.Trainer = *trainer
	}
	return cp, nil
}

func (f *fakeClassRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error) {
	c, ok := f.r.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyClass(c), nil
}

func (f *fakeClassRepo) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, int64, error) {
	var out []*models.Class
	for _, c := range f.r.classes {
		if filters.TrainerID != nil && c.TrainerID != *filters.TrainerID {
			continue
		}
		out = append(out, f.withTrainer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, int64(len(out)), nil
}

func (f *fakeClassRepo) ListAvailable(ctx context.Context, now time.Time) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.r.classes {
		if !c.End.Before(now) && c.Enrolled < models.MaxTraineesPerClass {
			out = append(out, f.withTrainer(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeClassRepo) ListByTrainer(ctx context.Context, trainerID string) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.r.classes {
		if c.TrainerID == trainerID {
			out = append(out, copyClass(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeClassRepo) Update(ctx context.Context, class *models.Class) error {
	if _, ok := f.r.classes[class.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.classes[class.ID] = copyClass(class)
	return nil
}

func (f *fakeClassRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.r.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.r.classes, id)
	return nil
}

func (f *fakeClassRepo) CountByStartBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, c := range f.r.classes {
		if !c.Start.Before(from) && c.Start.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeClassRepo) AddTrainee(ctx context.Context, class *models.Class, trainee *models.User) error {
	if _, ok := f.r.classes[class.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.r.classes[class.ID] = copyClass(class)
	return nil
}

func (f *fakeClassRepo) withTrainer(c *models.Class) *models.Class {
	cp := copyClass(c)
	if trainer, ok := f.r.users[c.TrainerID]; ok {
		cp.Trainer = *trainer
	}
	return cp
}

// ===== other test doubles =====

// fakeMailer records outbound mail; fail makes every send error.
type fakeMailer struct {
	mu       sync.Mutex
	welcomes []string
	resets   []string
	resetURL string
	fail     error
}

func (m *fakeMailer) SendWelcome(ctx context.Context, toEmail, toName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.welcomes = append(m.welcomes, toEmail)
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.resets = append(m.resets, toEmail)
	m.resetURL = resetURL
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
