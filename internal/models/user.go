package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleTrainee UserRole = "trainee"
	RoleTrainer UserRole = "trainer"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleTrainee, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:36"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;default:trainee;size:20;index"`

	// Credentials. None of these ever serialize.
	Password             string     `json:"-" gorm:"not null;size:100"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-" gorm:"size:64;index"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// TokenIssuedBeforePasswordChange reports whether a session token issued at
// issuedAt predates the user's last password change. JWT issued-at has second
// precision, so the change timestamp is truncated to the same resolution.
func (u *User) TokenIssuedBeforePasswordChange(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(u.PasswordChangedAt.Truncate(time.Second))
}

// ClearResetToken removes any pending password-reset token.
func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
}
