package models

import (
	"strings"
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"size:254" json:"email"`
	FirstName  string    `gorm:"size:150" json:"first_name"`
	LastName   string    `gorm:"size:150" json:"last_name"`
	Password   string    `gorm:"not null" json:"-"` // bcrypt hash
	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`
}

// GetFullName returns "first last" with surrounding space trimmed.
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the full name, or the username when no name is set.
func (u *User) DisplayName() string {
	if name := u.GetFullName(); name != "" {
		return name
	}
	return u.Username
}

func (u *User) String() string {
	return u.Username
}
