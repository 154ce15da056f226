// models/achievement.go
package models

import "time"

// Achievement tiers.
const (
	TierBronze  = "bronze"
	TierSilver  = "silver"
	TierGold    = "gold"
	TierDiamond = "diamond"
)

// Achievement categories. Each category maps to one field of the user
// stats snapshot; see services.ProgressForCategory.
const (
	CategoryWords     = "words"
	CategoryPhrases   = "phrases"
	CategoryExercises = "exercises"
	CategoryGrammar   = "grammar"
	CategoryStreak    = "streak"
	CategoryPoints    = "points"
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `json:"icon"`
	Tier        string `gorm:"not null" json:"tier"`           // bronze, silver, gold, diamond
	Category    string `gorm:"not null;index" json:"category"` // words, phrases, exercises, grammar, streak, points

	Target       int  `gorm:"not null" json:"target"`
	PointsReward int  `gorm:"not null;default:0" json:"pointsReward"`
	IsActive     bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Once IsUnlocked flips to true it never goes back and UnlockedAt is
// frozen; Progress may keep growing afterwards for display purposes.
type UserAchievement struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserID        uint `gorm:"not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievementId"`

	Progress   int        `gorm:"default:0" json:"progress"`
	IsUnlocked bool       `gorm:"default:false" json:"isUnlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
