package services

import (
	"testing"
	"time"

	"lingua/models"
)

func TestCalculateUserStats_CountsAllDomains(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	other := models.User{Email: "other@example.com", Password: "x", Roles: "user"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create second user: %v", err)
	}

	createKnownWords(t, db, user.ID, 3)
	// Extra word nobody knows, so totals diverge from known counts.
	if err := db.Create(&models.Word{TopicID: 1, Word: "x", Translation: "y"}).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}

	phraseTopic := models.PhraseTopic{Title: "p", Difficulty: "beginner"}
	if err := db.Create(&phraseTopic).Error; err != nil {
		t.Fatalf("failed to create phrase topic: %v", err)
	}
	for i := 0; i < 2; i++ {
		phrase := models.Phrase{TopicID: phraseTopic.ID, Phrase: "p", Translation: "t"}
		if err := db.Create(&phrase).Error; err != nil {
			t.Fatalf("failed to create phrase: %v", err)
		}
		if i == 0 {
			up := models.UserPhrase{UserID: user.ID, PhraseID: phrase.ID, IsKnown: true}
			if err := db.Create(&up).Error; err != nil {
				t.Fatalf("failed to create user phrase: %v", err)
			}
		}
	}

	exTopic := models.ExerciseTopic{Title: "e", Difficulty: "beginner"}
	if err := db.Create(&exTopic).Error; err != nil {
		t.Fatalf("failed to create exercise topic: %v", err)
	}
	ex := models.Exercise{TopicID: exTopic.ID, Type: models.ExerciseTranslation, Question: "q", CorrectAnswer: "a", Points: 10}
	if err := db.Create(&ex).Error; err != nil {
		t.Fatalf("failed to create exercise: %v", err)
	}
	ue := models.UserExercise{UserID: user.ID, ExerciseID: ex.ID, IsCompleted: true, Attempts: 1}
	if err := db.Create(&ue).Error; err != nil {
		t.Fatalf("failed to create user exercise: %v", err)
	}
	// Completion by another user must not leak into this user's stats.
	otherUE := models.UserExercise{UserID: other.ID, ExerciseID: ex.ID, IsCompleted: true, Attempts: 1}
	if err := db.Create(&otherUE).Error; err != nil {
		t.Fatalf("failed to create other user exercise: %v", err)
	}

	gTopic := models.GrammarTopic{Title: "g", Difficulty: "beginner"}
	if err := db.Create(&gTopic).Error; err != nil {
		t.Fatalf("failed to create grammar topic: %v", err)
	}
	test := models.UserGrammarTest{UserID: user.ID, TopicID: gTopic.ID, Score: 90, Passed: true}
	if err := db.Create(&test).Error; err != nil {
		t.Fatalf("failed to create grammar test: %v", err)
	}
	failed := models.UserGrammarTest{UserID: user.ID, TopicID: gTopic.ID, Score: 40, Passed: false}
	if err := db.Create(&failed).Error; err != nil {
		t.Fatalf("failed to create failed grammar test: %v", err)
	}

	achievement := models.Achievement{
		Title: "A", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 1, PointsReward: 1, IsActive: true,
	}
	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}
	now := time.Now().UTC()
	ua := models.UserAchievement{
		UserID: user.ID, AchievementID: achievement.ID,
		Progress: 3, IsUnlocked: true, UnlockedAt: &now,
	}
	if err := db.Create(&ua).Error; err != nil {
		t.Fatalf("failed to create user achievement: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"points": 120, "streak": 5}).Error; err != nil {
		t.Fatalf("failed to seed points and streak: %v", err)
	}

	svc := NewStatsService(db)
	stats, err := svc.CalculateUserStats(user.ID)
	if err != nil {
		t.Fatalf("CalculateUserStats failed: %v", err)
	}

	if stats.KnownWords != 3 || stats.TotalWords != 4 {
		t.Fatalf("words: expected 3/4, got %d/%d", stats.KnownWords, stats.TotalWords)
	}
	if stats.KnownPhrases != 1 || stats.TotalPhrases != 2 {
		t.Fatalf("phrases: expected 1/2, got %d/%d", stats.KnownPhrases, stats.TotalPhrases)
	}
	if stats.CompletedExercises != 1 || stats.TotalExercises != 1 {
		t.Fatalf("exercises: expected 1/1, got %d/%d", stats.CompletedExercises, stats.TotalExercises)
	}
	if stats.CompletedGrammarTests != 1 || stats.TotalGrammarTests != 1 {
		t.Fatalf("grammar: expected 1/1, got %d/%d", stats.CompletedGrammarTests, stats.TotalGrammarTests)
	}
	if stats.UnlockedAchievements != 1 || stats.TotalAchievements != 1 {
		t.Fatalf("achievements: expected 1/1, got %d/%d", stats.UnlockedAchievements, stats.TotalAchievements)
	}
	if stats.TotalPoints != 120 || stats.Streak != 5 {
		t.Fatalf("expected points 120 streak 5, got %d/%d", stats.TotalPoints, stats.Streak)
	}
}

func TestCalculateUserStats_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)

	svc := NewStatsService(db)
	stats, err := svc.CalculateUserStats(user.ID)
	if err != nil {
		t.Fatalf("CalculateUserStats failed: %v", err)
	}

	if stats.KnownWords != 0 || stats.TotalWords != 0 ||
		stats.KnownPhrases != 0 || stats.TotalPhrases != 0 ||
		stats.CompletedExercises != 0 || stats.TotalExercises != 0 ||
		stats.CompletedGrammarTests != 0 || stats.TotalGrammarTests != 0 ||
		stats.UnlockedAchievements != 0 || stats.TotalAchievements != 0 ||
		stats.TotalPoints != 0 || stats.Streak != 0 {
		t.Fatalf("expected an all-zero snapshot, got %+v", stats)
	}
}

func TestCalculateUserStats_MissingUserDefaultsToZero(t *testing.T) {
	db := openTestDB(t)

	// Catalog exists but the user does not.
	topic := models.Topic{Title: "t", Difficulty: "beginner"}
	if err := db.Create(&topic).Error; err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}
	word := models.Word{TopicID: topic.ID, Word: "w", Translation: "t"}
	if err := db.Create(&word).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}

	svc := NewStatsService(db)
	stats, err := svc.CalculateUserStats(999)
	if err != nil {
		t.Fatalf("CalculateUserStats failed: %v", err)
	}

	if stats.TotalWords != 1 {
		t.Fatalf("expected totalWords 1, got %d", stats.TotalWords)
	}
	if stats.TotalPoints != 0 || stats.Streak != 0 {
		t.Fatalf("missing user must default points and streak to zero, got %d/%d",
			stats.TotalPoints, stats.Streak)
	}
}

func TestCalculateUserStats_InactiveAchievementsExcludedFromTotal(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)

	active := models.Achievement{
		Title: "A", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 1, PointsReward: 1, IsActive: true,
	}
	retired := models.Achievement{
		Title: "B", Description: "d", Icon: "i",
		Tier: models.TierBronze, Category: models.CategoryWords,
		Target: 1, PointsReward: 1, IsActive: false,
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}
	if err := db.Create(&retired).Error; err != nil {
		t.Fatalf("failed to create achievement: %v", err)
	}

	svc := NewStatsService(db)
	stats, err := svc.CalculateUserStats(user.ID)
	if err != nil {
		t.Fatalf("CalculateUserStats failed: %v", err)
	}
	if stats.TotalAchievements != 1 {
		t.Fatalf("expected only active achievements counted, got %d", stats.TotalAchievements)
	}
}
