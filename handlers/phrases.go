// handlers/phrases.go
package handlers

import (
	"lingua/database"
	"lingua/middleware"
	"lingua/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GetPhraseTopics lists phrase topics
func GetPhraseTopics(c *fiber.Ctx) error {
	db := database.GetDB()

	var topics []models.PhraseTopic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch topics"})
	}

	return c.JSON(fiber.Map{"success": true, "topics": topics})
}

// GetTopicPhrases lists a topic's phrases annotated with the caller's
// known/unknown state
func GetTopicPhrases(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	db := database.GetDB()

	var topic models.PhraseTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var phrases []models.Phrase
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&phrases).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch phrases"})
	}

	var userPhrases []models.UserPhrase
	if err := db.Where("user_id = ?", userID).Find(&userPhrases).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch phrase progress"})
	}
	known := make(map[uint]bool, len(userPhrases))
	for _, up := range userPhrases {
		known[up.PhraseID] = up.IsKnown
	}

	annotated := make([]fiber.Map, 0, len(phrases))
	for _, p := range phrases {
		annotated = append(annotated, fiber.Map{
			"id":          p.ID,
			"phrase":      p.Phrase,
			"translation": p.Translation,
			"audioUrl":    p.AudioURL,
			"isKnown":     known[p.ID],
		})
	}

	return c.JSON(fiber.Map{"success": true, "topic": topic, "phrases": annotated})
}

// MarkPhraseKnown upserts the caller's known flag for a phrase
func MarkPhraseKnown(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	phraseID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid phrase id"})
	}

	var req MarkKnownRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var phrase models.Phrase
	if err := db.First(&phrase, phraseID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Phrase not found"})
	}

	row := models.UserPhrase{
		UserID:   userID,
		PhraseID: phrase.ID,
		IsKnown:  req.IsKnown,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "phrase_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_known": req.IsKnown}),
	}).Create(&row).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update phrase status"})
	}

	return c.JSON(fiber.Map{"success": true, "phraseId": phrase.ID, "isKnown": req.IsKnown})
}
