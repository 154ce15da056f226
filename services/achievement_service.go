// services/achievement_service.go - Achievement Catalog and Unlock Engine
package services

import (
	"errors"
	"fmt"
	"time"

	"lingua/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAchievementNotFound is returned for lookups of unknown catalog ids.
var ErrAchievementNotFound = errors.New("achievement not found")

// categoryProgress maps an achievement category to the snapshot field it
// is measured against. The annotate path and the unlock path share this
// table so the two can never disagree.
var categoryProgress = map[string]func(*UserStats) int{
	models.CategoryWords:     func(s *UserStats) int { return int(s.KnownWords) },
	models.CategoryPhrases:   func(s *UserStats) int { return int(s.KnownPhrases) },
	models.CategoryExercises: func(s *UserStats) int { return int(s.CompletedExercises) },
	models.CategoryGrammar:   func(s *UserStats) int { return int(s.CompletedGrammarTests) },
	models.CategoryStreak:    func(s *UserStats) int { return s.Streak },
	models.CategoryPoints:    func(s *UserStats) int { return s.TotalPoints },
}

// ProgressForCategory returns the snapshot value an achievement of the
// given category is measured against. Unknown categories report zero
// progress rather than an error, so a stray catalog row can never
// auto-unlock or break an evaluation pass.
func ProgressForCategory(category string, stats *UserStats) int {
	if accessor, ok := categoryProgress[category]; ok {
		return accessor(stats)
	}
	return 0
}

// AchievementView is an achievement annotated with one user's progress.
type AchievementView struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Tier         string     `json:"tier"`
	Category     string     `json:"category"`
	Target       int        `json:"target"`
	PointsReward int        `json:"pointsReward"`
	Progress     int        `json:"progress"`
	IsUnlocked   bool       `json:"isUnlocked"`
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
}

// UnlockResult is the outcome of one evaluation pass.
type UnlockResult struct {
	NewlyUnlocked []AchievementView `json:"newlyUnlocked"`
	Message       string            `json:"message"`
	Failed        []string          `json:"failed,omitempty"`
}

type AchievementService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db, stats: NewStatsService(db)}
}

// ================== USER-FACING READS ==================

// GetUserAchievements returns every active achievement annotated with the
// calling user's current progress and unlock state.
func (s *AchievementService) GetUserAchievements(userID uint) ([]AchievementView, error) {
	var achievements []models.Achievement
	if err := s.db.Where("is_active = ?", true).Order("id").Find(&achievements).Error; err != nil {
		return nil, err
	}

	var rows []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	byAchievement := make(map[uint]models.UserAchievement, len(rows))
	for _, row := range rows {
		byAchievement[row.AchievementID] = row
	}

	stats, err := s.stats.CalculateUserStats(userID)
	if err != nil {
		return nil, err
	}

	views := make([]AchievementView, 0, len(achievements))
	for _, a := range achievements {
		view := newAchievementView(a, ProgressForCategory(a.Category, stats))
		if row, ok := byAchievement[a.ID]; ok {
			view.IsUnlocked = row.IsUnlocked
			view.UnlockedAt = row.UnlockedAt
		}
		views = append(views, view)
	}

	return views, nil
}

func newAchievementView(a models.Achievement, progress int) AchievementView {
	return AchievementView{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Icon:         a.Icon,
		Tier:         a.Tier,
		Category:     a.Category,
		Target:       a.Target,
		PointsReward: a.PointsReward,
		Progress:     progress,
	}
}

// ================== UNLOCK ENGINE ==================

// CheckAndUnlock evaluates every active achievement against a fresh stats
// snapshot, records progress, and unlocks anything whose target was
// crossed. Points for each unlock are awarded exactly once, no matter how
// many times or how concurrently this runs. A failure on one achievement
// does not abort bookkeeping for the rest.
func (s *AchievementService) CheckAndUnlock(userID uint) (*UnlockResult, error) {
	stats, err := s.stats.CalculateUserStats(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	if err := s.db.Where("is_active = ?", true).Order("id").Find(&achievements).Error; err != nil {
		return nil, err
	}

	result := &UnlockResult{NewlyUnlocked: []AchievementView{}}

	for _, a := range achievements {
		progress := ProgressForCategory(a.Category, stats)

		if progress < a.Target {
			if err := s.recordProgress(userID, a.ID, progress); err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("achievement %d: %v", a.ID, err))
			}
			continue
		}

		unlocked, unlockedAt, err := s.unlock(userID, a, progress)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("achievement %d: %v", a.ID, err))
			continue
		}
		if unlocked {
			view := newAchievementView(a, progress)
			view.IsUnlocked = true
			view.UnlockedAt = unlockedAt
			result.NewlyUnlocked = append(result.NewlyUnlocked, view)
		}
	}

	if n := len(result.NewlyUnlocked); n > 0 {
		result.Message = fmt.Sprintf("Unlocked %d new achievements!", n)
	} else {
		result.Message = "No new achievements"
	}

	return result, nil
}

// recordProgress upserts the progress value for a not-yet-reached
// achievement. The unique (user_id, achievement_id) index absorbs racing
// inserts; the conflict path touches progress only, so an unlock
// happening in parallel is never undone.
func (s *AchievementService) recordProgress(userID, achievementID uint, progress int) error {
	row := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		Progress:      progress,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"progress": progress}),
	}).Create(&row).Error
}

// unlock performs the atomic unlock transition for one achievement. The
// check-unlocked / mark-unlocked / award-points sequence runs inside a
// single transaction, with the unlocked flag claimed by a conditional
// update (or a unique-index-guarded insert) rather than a read-then-write,
// so two racing passes cannot both win the award.
func (s *AchievementService) unlock(userID uint, a models.Achievement, progress int) (bool, *time.Time, error) {
	now := time.Now().UTC()
	won := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.UserAchievement{}).
			Where("user_id = ? AND achievement_id = ? AND is_unlocked = ?", userID, a.ID, false).
			Updates(map[string]interface{}{
				"is_unlocked": true,
				"progress":    progress,
				"unlocked_at": now,
			})
		if claim.Error != nil {
			return claim.Error
		}

		if claim.RowsAffected == 0 {
			var existing models.UserAchievement
			err := tx.Where("user_id = ? AND achievement_id = ?", userID, a.ID).
				Take(&existing).Error
			if err == nil {
				// Already unlocked: keep progress current, never
				// touch unlocked_at, never re-award.
				return tx.Model(&models.UserAchievement{}).
					Where("id = ?", existing.ID).
					UpdateColumn("progress", progress).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			row := models.UserAchievement{
				UserID:        userID,
				AchievementID: a.ID,
				Progress:      progress,
				IsUnlocked:    true,
				UnlockedAt:    &now,
			}
			if err := tx.Create(&row).Error; err != nil {
				// A racing insert beat us to the unique index; that
				// writer owns the unlock and its point award.
				return tx.Model(&models.UserAchievement{}).
					Where("user_id = ? AND achievement_id = ?", userID, a.ID).
					UpdateColumn("progress", progress).Error
			}
		}

		won = true
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", a.PointsReward)).Error
	})

	if err != nil || !won {
		return false, nil, err
	}
	return true, &now, nil
}

// ================== RESET ==================

// ResetProgress wipes the user's gamification state: points, streak and
// streak date on the account, and every achievement-progress row. Both
// mutations commit together or not at all.
func (s *AchievementService) ResetProgress(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"points":           0,
				"streak":           0,
				"last_streak_date": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ?", userID).
			Delete(&models.UserAchievement{}).Error
	})
}

// ================== CATALOG CRUD ==================

func (s *AchievementService) ListAchievements() ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.Order("id").Find(&achievements).Error
	return achievements, err
}

func (s *AchievementService) GetAchievement(id uint) (*models.Achievement, error) {
	var a models.Achievement
	if err := s.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *AchievementService) CreateAchievement(a *models.Achievement) error {
	return s.db.Create(a).Error
}

func (s *AchievementService) UpdateAchievement(id uint, fields map[string]interface{}) (*models.Achievement, error) {
	a, err := s.GetAchievement(id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.Model(a).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return a, nil
}

// DeleteAchievement removes a catalog entry and cascades to every user's
// progress rows for it.
func (s *AchievementService) DeleteAchievement(id uint) error {
	a, err := s.GetAchievement(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("achievement_id = ?", a.ID).
			Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Achievement{}, a.ID).Error
	})
}
