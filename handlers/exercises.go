// handlers/exercises.go
package handlers

import (
	"errors"
	"strings"

	"lingua/database"
	"lingua/middleware"
	"lingua/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubmitExerciseRequest struct {
	Answer string `json:"answer"`
}

// GetExerciseTopics lists exercise topics
func GetExerciseTopics(c *fiber.Ctx) error {
	db := database.GetDB()

	var topics []models.ExerciseTopic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch topics"})
	}

	return c.JSON(fiber.Map{"success": true, "topics": topics})
}

// GetTopicExercises lists a topic's exercises annotated with completion
func GetTopicExercises(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	db := database.GetDB()

	var topic models.ExerciseTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var exercises []models.Exercise
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&exercises).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch exercises"})
	}

	var userExercises []models.UserExercise
	if err := db.Where("user_id = ?", userID).Find(&userExercises).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch exercise progress"})
	}
	progress := make(map[uint]models.UserExercise, len(userExercises))
	for _, ue := range userExercises {
		progress[ue.ExerciseID] = ue
	}

	annotated := make([]fiber.Map, 0, len(exercises))
	for _, e := range exercises {
		ue := progress[e.ID]
		annotated = append(annotated, fiber.Map{
			"id":           e.ID,
			"type":         e.Type,
			"question":     e.Question,
			"options":      splitLines(e.Options),
			"points":       e.Points,
			"isCompleted":  ue.IsCompleted,
			"earnedPoints": ue.EarnedPoints,
			"attempts":     ue.Attempts,
		})
	}

	return c.JSON(fiber.Map{"success": true, "topic": topic, "exercises": annotated})
}

// SubmitExercise grades an answer. A correct first completion marks the
// exercise done and pays its points to the account exactly once; repeat
// submissions only bump the attempt counter.
func SubmitExercise(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	exerciseID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req SubmitExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var exercise models.Exercise
	if err := db.First(&exercise, exerciseID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Exercise not found"})
	}

	correct := strings.EqualFold(strings.TrimSpace(req.Answer), strings.TrimSpace(exercise.CorrectAnswer))

	earned := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		var row models.UserExercise
		err := tx.Where("user_id = ? AND exercise_id = ?", userID, exercise.ID).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.UserExercise{UserID: userID, ExerciseID: exercise.ID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"attempts": gorm.Expr("attempts + 1"),
		}

		if correct && !row.IsCompleted {
			// Claim completion conditionally so a racing submission
			// cannot double-pay the exercise points.
			claim := tx.Model(&models.UserExercise{}).
				Where("id = ? AND is_completed = ?", row.ID, false).
				Updates(map[string]interface{}{
					"is_completed":  true,
					"earned_points": exercise.Points,
					"attempts":      gorm.Expr("attempts + 1"),
				})
			if claim.Error != nil {
				return claim.Error
			}
			if claim.RowsAffected == 0 {
				return tx.Model(&models.UserExercise{}).
					Where("id = ?", row.ID).Updates(updates).Error
			}
			earned = exercise.Points
			return tx.Model(&models.User{}).Where("id = ?", userID).
				UpdateColumn("points", gorm.Expr("points + ?", exercise.Points)).Error
		}

		return tx.Model(&models.UserExercise{}).
			Where("id = ?", row.ID).Updates(updates).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record submission"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"correct":      correct,
		"earnedPoints": earned,
	})
}
