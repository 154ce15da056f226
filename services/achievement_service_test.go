package services

import (
	"testing"
	"time"

	"lingua/models"
)

func TestCheckAndUnlock_FirstCrossAwardsOnce(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 50)

	achievement := models.Achievement{
		Title:        "Word Collector",
		Description:  "Learn 50 words",
		Icon:         "book",
		Tier:         models.TierSilver,
		Category:     models.CategoryWords,
		Target:       50,
		PointsReward: 100,
		IsActive:     true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}

	if len(result.NewlyUnlocked) != 1 {
		t.Fatalf("expected 1 newly unlocked, got %d", len(result.NewlyUnlocked))
	}
	if result.NewlyUnlocked[0].ID != achievement.ID {
		t.Fatalf("unexpected achievement unlocked: %d", result.NewlyUnlocked[0].ID)
	}

	var row models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).Take(&row).Error; err != nil {
		t.Fatalf("expected a progress row: %v", err)
	}
	if !row.IsUnlocked {
		t.Fatalf("expected row to be unlocked")
	}
	if row.Progress != 50 {
		t.Fatalf("expected progress 50, got %d", row.Progress)
	}
	if row.UnlockedAt == nil {
		t.Fatalf("expected unlockedAt to be set")
	}

	if got := getUser(t, db, user.ID).Points; got != 100 {
		t.Fatalf("expected 100 points, got %d", got)
	}
}

func TestCheckAndUnlock_SecondPassIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 50)

	achievement := models.Achievement{
		Title: "Word Collector", Description: "d", Icon: "i",
		Tier: models.TierSilver, Category: models.CategoryWords,
		Target: 50, PointsReward: 100, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	if _, err := svc.CheckAndUnlock(user.ID); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	var first models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).Take(&first).Error; err != nil {
		t.Fatalf("expected a progress row: %v", err)
	}

	// Progress keeps growing after the unlock.
	createKnownWords(t, db, user.ID, 10)

	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	if len(result.NewlyUnlocked) != 0 {
		t.Fatalf("expected no new unlocks, got %d", len(result.NewlyUnlocked))
	}
	if result.Message != "No new achievements" {
		t.Fatalf("unexpected message: %q", result.Message)
	}

	var row models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).Take(&row).Error; err != nil {
		t.Fatalf("expected a progress row: %v", err)
	}
	if row.Progress != 60 {
		t.Fatalf("expected progress 60, got %d", row.Progress)
	}
	if !row.IsUnlocked {
		t.Fatalf("unlock must never revert")
	}
	if !row.UnlockedAt.Equal(*first.UnlockedAt) {
		t.Fatalf("unlockedAt must not change on re-evaluation")
	}

	if got := getUser(t, db, user.ID).Points; got != 100 {
		t.Fatalf("points must be awarded exactly once, got %d", got)
	}
}

func TestCheckAndUnlock_BelowTargetRecordsProgress(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 3)

	achievement := models.Achievement{
		Title: "Word Collector", Description: "d", Icon: "i",
		Tier: models.TierGold, Category: models.CategoryWords,
		Target: 50, PointsReward: 100, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}
	if len(result.NewlyUnlocked) != 0 {
		t.Fatalf("expected no unlocks, got %d", len(result.NewlyUnlocked))
	}

	var row models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).Take(&row).Error; err != nil {
		t.Fatalf("expected a progress row: %v", err)
	}
	if row.IsUnlocked {
		t.Fatalf("row must not be unlocked below target")
	}
	if row.Progress != 3 {
		t.Fatalf("expected progress 3, got %d", row.Progress)
	}
	if got := getUser(t, db, user.ID).Points; got != 0 {
		t.Fatalf("expected no points below target, got %d", got)
	}
}

func TestCheckAndUnlock_ExistingLockedRowUnlocks(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 50)

	achievement := models.Achievement{
		Title: "Word Collector", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 50, PointsReward: 25, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}
	stale := models.UserAchievement{
		UserID: user.ID, AchievementID: achievement.ID, Progress: 10,
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("failed to create stale row: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}
	if len(result.NewlyUnlocked) != 1 {
		t.Fatalf("expected 1 newly unlocked, got %d", len(result.NewlyUnlocked))
	}

	var row models.UserAchievement
	if err := db.First(&row, stale.ID).Error; err != nil {
		t.Fatalf("failed to reload row: %v", err)
	}
	if !row.IsUnlocked || row.Progress != 50 || row.UnlockedAt == nil {
		t.Fatalf("expected unlocked row with progress 50, got %+v", row)
	}
	if got := getUser(t, db, user.ID).Points; got != 25 {
		t.Fatalf("expected 25 points, got %d", got)
	}
}

func TestCheckAndUnlock_UnknownCategoryNeverUnlocks(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 50)

	achievement := models.Achievement{
		Title: "Mystery", Description: "d", Icon: "i",
		Tier: models.TierDiamond, Category: "listening",
		Target: 1, PointsReward: 500, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}
	if len(result.NewlyUnlocked) != 0 {
		t.Fatalf("unknown category must not unlock, got %d", len(result.NewlyUnlocked))
	}

	var row models.UserAchievement
	if err := db.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).Take(&row).Error; err != nil {
		t.Fatalf("expected a progress row: %v", err)
	}
	if row.IsUnlocked || row.Progress != 0 {
		t.Fatalf("expected locked row with zero progress, got %+v", row)
	}
	if got := getUser(t, db, user.ID).Points; got != 0 {
		t.Fatalf("expected no points, got %d", got)
	}
}

func TestCheckAndUnlock_StreakCategory(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("streak", 7).Error; err != nil {
		t.Fatalf("failed to set streak: %v", err)
	}

	achievement := models.Achievement{
		Title: "One Week", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryStreak,
		Target: 7, PointsReward: 70, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}
	if len(result.NewlyUnlocked) != 1 {
		t.Fatalf("expected streak achievement to unlock, got %d", len(result.NewlyUnlocked))
	}
	if got := getUser(t, db, user.ID).Points; got != 70 {
		t.Fatalf("expected 70 points, got %d", got)
	}
}

func TestCheckAndUnlock_SkipsInactive(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 10)

	achievement := models.Achievement{
		Title: "Retired", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 5, PointsReward: 10, IsActive: false,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	result, err := svc.CheckAndUnlock(user.ID)
	if err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}
	if len(result.NewlyUnlocked) != 0 {
		t.Fatalf("inactive achievements must be ignored")
	}

	var count int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("inactive achievements must not create progress rows, got %d", count)
	}
}

func TestGetUserAchievements_AnnotatesProgress(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	createKnownWords(t, db, user.ID, 5)

	unlocked := models.Achievement{
		Title: "Starter", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 5, PointsReward: 10, IsActive: true,
	}
	pending := models.Achievement{
		Title: "Collector", Description: "d", Icon: "i",
		Tier: models.TierGold, Category: models.CategoryWords,
		Target: 100, PointsReward: 200, IsActive: true,
	}
	if err := db.Create(&unlocked).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewAchievementService(db)
	if _, err := svc.CheckAndUnlock(user.ID); err != nil {
		t.Fatalf("CheckAndUnlock failed: %v", err)
	}

	views, err := svc.GetUserAchievements(user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 achievements, got %d", len(views))
	}

	byID := map[uint]AchievementView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	if v := byID[unlocked.ID]; !v.IsUnlocked || v.Progress != 5 {
		t.Fatalf("expected unlocked view with progress 5, got %+v", v)
	}
	if v := byID[pending.ID]; v.IsUnlocked || v.Progress != 5 {
		t.Fatalf("expected locked view with progress 5, got %+v", v)
	}
}

func TestResetProgress_WipesEverything(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"points":           500,
		"streak":           10,
		"last_streak_date": yesterday,
	}).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		achievement := models.Achievement{
			Title: "A", Description: "d", Icon: "i",
			Tier: models.TierBronze, Category: models.CategoryWords,
			Target: 1, PointsReward: 1, IsActive: true,
		}
		if err := db.Create(&achievement).Error; err != nil {
			t.Fatalf("failed to create achievement: %v", err)
		}
		row := models.UserAchievement{
			UserID: user.ID, AchievementID: achievement.ID,
			Progress: 1, IsUnlocked: true, UnlockedAt: &now,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to create progress row: %v", err)
		}
	}

	svc := NewAchievementService(db)
	if err := svc.ResetProgress(user.ID); err != nil {
		t.Fatalf("ResetProgress failed: %v", err)
	}

	reloaded := getUser(t, db, user.ID)
	if reloaded.Points != 0 || reloaded.Streak != 0 || reloaded.LastStreakDate != nil {
		t.Fatalf("expected zeroed account, got points=%d streak=%d date=%v",
			reloaded.Points, reloaded.Streak, reloaded.LastStreakDate)
	}

	var count int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no progress rows after reset, got %d", count)
	}
}

func TestResetProgress_UnknownUser(t *testing.T) {
	db := openTestDB(t)

	svc := NewAchievementService(db)
	if err := svc.ResetProgress(999); err == nil {
		t.Fatalf("expected an error for an unknown user")
	}
}

func TestDeleteAchievement_CascadesProgressRows(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)

	achievement := models.Achievement{
		Title: "A", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 1, PointsReward: 1, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}
	row := models.UserAchievement{UserID: user.ID, AchievementID: achievement.ID, Progress: 1}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create progress row: %v", err)
	}

	svc := NewAchievementService(db)
	if err := svc.DeleteAchievement(achievement.ID); err != nil {
		t.Fatalf("DeleteAchievement failed: %v", err)
	}

	var count int64
	db.Model(&models.UserAchievement{}).Where("achievement_id = ?", achievement.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected cascade delete of progress rows, got %d", count)
	}

	if _, err := svc.GetAchievement(achievement.ID); err != ErrAchievementNotFound {
		t.Fatalf("expected ErrAchievementNotFound, got %v", err)
	}
}

func TestProgressForCategory_Fallback(t *testing.T) {
	stats := &UserStats{KnownWords: 10, Streak: 4, TotalPoints: 99}

	if got := ProgressForCategory(models.CategoryWords, stats); got != 10 {
		t.Fatalf("words: expected 10, got %d", got)
	}
	if got := ProgressForCategory(models.CategoryStreak, stats); got != 4 {
		t.Fatalf("streak: expected 4, got %d", got)
	}
	if got := ProgressForCategory(models.CategoryPoints, stats); got != 99 {
		t.Fatalf("points: expected 99, got %d", got)
	}
	if got := ProgressForCategory("listening", stats); got != 0 {
		t.Fatalf("unknown category: expected 0, got %d", got)
	}
}
