// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"lingua/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

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
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes not covered by model tags
func createIndexes() {
	db := GetDB()

	// Catalog evaluation always filters on active achievements
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_active ON achievements(is_active)")

	// Aggregation count paths
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_words_known ON user_vocabulary_words(user_id, is_known)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_phrases_known ON user_phrases(user_id, is_known)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_exercises_completed ON user_exercises(user_id, is_completed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_grammar_tests_passed ON user_grammar_tests(user_id, passed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_unlocked ON user_achievements(user_id, is_unlocked)")
}
