package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:191"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string `json:"-" gorm:"not null;size:255"`
	Role     string `json:"role" gorm:"not null;default:'user';size:20"`

	// Password reset state, nil when no reset is pending
	ResetPasswordToken   *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	SpareParts []SparePart `json:"spare_parts,omitempty" gorm:"foreignKey:OwnerID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanResetPassword reports whether token matches the pending reset token and
// the token has not expired at the given instant. A user with no pending
// reset never matches.
func (u *User) CanResetPassword(token string, now time.Time) bool {
	if token == "" || u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false
	}
	if *u.ResetPasswordToken != token {
		return false
	}
	return now.Before(*u.ResetPasswordExpires)
}

// ClearResetToken consumes the pending reset token so it cannot be reused.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
}
