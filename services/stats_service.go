// services/stats_service.go - User Statistics Aggregation
package services

import (
	"errors"

	"lingua/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserStats is a point-in-time aggregate of a user's progress across all
// content domains. It is computed fresh on every call and never persisted.
type UserStats struct {
	KnownWords            int64 `json:"knownWords"`
	TotalWords            int64 `json:"totalWords"`
	KnownPhrases          int64 `json:"knownPhrases"`
	TotalPhrases          int64 `json:"totalPhrases"`
	CompletedExercises    int64 `json:"completedExercises"`
	TotalExercises        int64 `json:"totalExercises"`
	CompletedGrammarTests int64 `json:"completedGrammarTests"`
	TotalGrammarTests     int64 `json:"totalGrammarTests"`
	TotalPoints           int   `json:"totalPoints"`
	Streak                int   `json:"streak"`
	UnlockedAchievements  int64 `json:"unlockedAchievements"`
	TotalAchievements     int64 `json:"totalAchievements"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// CalculateUserStats builds the snapshot. The per-domain counts are
// independent and run concurrently; any failed count aborts the whole
// snapshot so a partial result is never returned. A missing user account
// is not an error - points and streak default to zero.
func (s *StatsService) CalculateUserStats(userID uint) (*UserStats, error) {
	stats := &UserStats{}

	var g errgroup.Group

	count := func(dst *int64, query *gorm.DB) {
		g.Go(func() error {
			return query.Count(dst).Error
		})
	}

	count(&stats.KnownWords, s.db.Model(&models.UserWord{}).
		Where("user_id = ? AND is_known = ?", userID, true))
	count(&stats.TotalWords, s.db.Model(&models.Word{}))
	count(&stats.KnownPhrases, s.db.Model(&models.UserPhrase{}).
		Where("user_id = ? AND is_known = ?", userID, true))
	count(&stats.TotalPhrases, s.db.Model(&models.Phrase{}))
	count(&stats.CompletedExercises, s.db.Model(&models.UserExercise{}).
		Where("user_id = ? AND is_completed = ?", userID, true))
	count(&stats.TotalExercises, s.db.Model(&models.Exercise{}))
	count(&stats.CompletedGrammarTests, s.db.Model(&models.UserGrammarTest{}).
		Where("user_id = ? AND passed = ?", userID, true))
	count(&stats.TotalGrammarTests, s.db.Model(&models.GrammarTopic{}))
	count(&stats.UnlockedAchievements, s.db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND is_unlocked = ?", userID, true))
	count(&stats.TotalAchievements, s.db.Model(&models.Achievement{}).
		Where("is_active = ?", true))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Select("points", "streak").First(&user, userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	stats.TotalPoints = user.Points
	stats.Streak = user.Streak

	return stats, nil
}
