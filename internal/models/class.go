package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// MaxTraineesPerClass caps the enrollment of a single class.
	MaxTraineesPerClass = 10

	// MaxClassesPerDay caps how many classes may be scheduled to start on the
	// same calendar day. Checked at creation time only.
	MaxClassesPerDay = 5

	// ClassDuration is the fixed length of every class; End is always derived
	// as Start + ClassDuration.
	ClassDuration = 2 * time.Hour
)

type Class struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100"`

	TrainerID string `json:"trainer_id" gorm:"not null;index;size:36"`
	Trainer   User   `json:"trainer" gorm:"foreignKey:TrainerID"`
	Trainees  []User `json:"trainees" gorm:"many2many:class_trainees"`

	// Enrolled is derived from len(Trainees) on every trainee-mutating save.
	Enrolled int `json:"enrolled" gorm:"not null;default:0;check:enrolled >= 0 AND enrolled <= 10"`

	Start time.Time `json:"start" gorm:"not null;index"`
	End   time.Time `json:"end" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Class) TableName() string {
	return "classes"
}

// RecomputeEnd restores the End invariant. Must be called on creation and
// whenever Start changes.
func (c *Class) RecomputeEnd() {
	c.End = c.Start.Add(ClassDuration)
}

// RecomputeEnrolled restores the Enrolled invariant after any trainee
// mutation.
func (c *Class) RecomputeEnrolled() {
	c.Enrolled = len(c.Trainees)
}

// HasTrainee reports whether the trainee is already enrolled in this class.
func (c *Class) HasTrainee(traineeID string) bool {
	for _, t := range c.Trainees {
		if t.ID == traineeID {
			return true
		}
	}
	return false
}

// IsFull reports whether the class reached its enrollment cap.
func (c *Class) IsFull() bool {
	return len(c.Trainees) >= MaxTraineesPerClass
}

// Bookable reports whether the class can still be booked at the given time:
// it must not have ended yet.
func (c *Class) Bookable(now time.Time) bool {
	return c.End.After(now)
}

// DayWindow returns the local midnight-to-midnight window containing t, used
// by the daily scheduling quota.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
