// models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar"`
	GoogleID *string `gorm:"index" json:"-"`

	// Comma-separated role list, e.g. "user" or "user,admin"
	Roles           string `gorm:"not null;default:'user'" json:"roles"`
	IsEmailVerified bool   `gorm:"default:false" json:"isEmailVerified"`

	// Gamification
	Points         int        `gorm:"default:0" json:"points"`
	Streak         int        `gorm:"default:0" json:"streak"`
	LastStreakDate *time.Time `json:"lastStreakDate,omitempty"`

	TotalStudySeconds int `gorm:"default:0" json:"totalStudySeconds"`

	// Timestamps
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`

	// Relationships
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

func (User) TableName() string {
	return "users"
}
