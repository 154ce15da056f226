// services/streak_service.go - Consecutive-Day Streak Tracking
package services

import (
	"time"

	"lingua/models"

	"gorm.io/gorm"
)

type StreakService struct {
	db *gorm.DB
}

func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// TouchStreak records "the user was active today" and advances the
// consecutive-day counter:
//
//	no prior date        -> streak = 1
//	same day             -> no change
//	exactly one day late -> streak + 1
//	two or more days     -> streak = 1
//	date in the future   -> no change (skewed clocks must not wipe a streak)
//
// Callers that are about to compute stats must touch the streak first,
// since the streak feeds streak-category achievements.
func (s *StreakService) TouchStreak(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	today := truncateToDay(time.Now().UTC())
	streak := 1

	if user.LastStreakDate != nil {
		switch days := daysBetween(truncateToDay(user.LastStreakDate.UTC()), today); {
		case days == 0:
			return nil
		case days == 1:
			streak = user.Streak + 1
		case days < 0:
			return nil
		}
	}

	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak":           streak,
			"last_streak_date": today,
		}).Error
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
