package services

import (
	"testing"

	"lingua/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory db.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Topic{},
		&models.Word{},
		&models.UserWord{},
		&models.PhraseTopic{},
		&models.Phrase{},
		&models.UserPhrase{},
		&models.GrammarTopic{},
		&models.GrammarRule{},
		&models.GrammarQuestion{},
		&models.UserGrammarRule{},
		&models.UserGrammarTest{},
		&models.ExerciseTopic{},
		&models.Exercise{},
		&models.UserExercise{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Email:    "learner@example.com",
		Password: "irrelevant",
		Roles:    "user",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createKnownWords(t *testing.T, db *gorm.DB, userID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		topic := models.Topic{Title: "t", Difficulty: "beginner"}
		if i == 0 {
			if err := db.Create(&topic).Error; err != nil {
				t.Fatalf("failed to create topic: %v", err)
			}
		}
		word := models.Word{TopicID: 1, Word: "w", Translation: "t"}
		if err := db.Create(&word).Error; err != nil {
			t.Fatalf("failed to create word: %v", err)
		}
		uw := models.UserWord{UserID: userID, WordID: word.ID, IsKnown: true}
		if err := db.Create(&uw).Error; err != nil {
			t.Fatalf("failed to create user word: %v", err)
		}
	}
}

func getUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return user
}
