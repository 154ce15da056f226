// handlers/vocabulary.go
package handlers

import (
	"lingua/database"
	"lingua/middleware"
	"lingua/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type MarkKnownRequest struct {
	IsKnown bool `json:"isKnown"`
}

// GetTopics lists vocabulary topics
func GetTopics(c *fiber.Ctx) error {
	db := database.GetDB()

	var topics []models.Topic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch topics"})
	}

	return c.JSON(fiber.Map{"success": true, "topics": topics})
}

// GetTopicWords lists a topic's words annotated with the caller's
// known/unknown state
func GetTopicWords(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	db := database.GetDB()

	var topic models.Topic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var words []models.Word
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&words).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch words"})
	}

	var userWords []models.UserWord
	if err := db.Where("user_id = ?", userID).Find(&userWords).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch word progress"})
	}
	known := make(map[uint]bool, len(userWords))
	for _, uw := range userWords {
		known[uw.WordID] = uw.IsKnown
	}

	annotated := make([]fiber.Map, 0, len(words))
	for _, w := range words {
		annotated = append(annotated, fiber.Map{
			"id":            w.ID,
			"word":          w.Word,
			"translation":   w.Translation,
			"transcription": w.Transcription,
			"audioUrl":      w.AudioURL,
			"isKnown":       known[w.ID],
		})
	}

	return c.JSON(fiber.Map{"success": true, "topic": topic, "words": annotated})
}

// MarkWordKnown upserts the caller's known flag for a word
func MarkWordKnown(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	wordID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid word id"})
	}

	var req MarkKnownRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var word models.Word
	if err := db.First(&word, wordID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Word not found"})
	}

	row := models.UserWord{
		UserID:  userID,
		WordID:  word.ID,
		IsKnown: req.IsKnown,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_known": req.IsKnown}),
	}).Create(&row).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update word status"})
	}

	return c.JSON(fiber.Map{"success": true, "wordId": word.ID, "isKnown": req.IsKnown})
}
