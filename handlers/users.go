// handlers/users.go
package handlers

import (
	"lingua/database"
	"lingua/middleware"
	"lingua/models"
	"lingua/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type StudyTimeRequest struct {
	Seconds int `json:"seconds" validate:"gt=0"`
}

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(user),
		"totalStudySeconds": user.TotalStudySeconds,
	})
}

// UpdateProfile updates name and avatar
func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Nothing to update"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userInfo(user)})
}

// UpdateStudyTime adds a study session's duration to the running total
func UpdateStudyTime(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req StudyTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationError(err)})
	}

	db := database.GetDB()
	res := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("total_study_seconds", gorm.Expr("total_study_seconds + ?", req.Seconds))
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update study time"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var user models.User
	if err := db.Select("total_study_seconds").First(&user, userID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read study time"})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"totalStudySeconds": user.TotalStudySeconds,
	})
}

// GetUserProgress touches the streak, then returns a fresh stats
// snapshot. The streak update must land first because the snapshot's
// streak value feeds streak achievements.
func GetUserProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if err := streakService.TouchStreak(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update streak"})
	}

	stats, err := statsService.CalculateUserStats(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute stats"})
	}

	return c.JSON(stats)
}

// ResetProgress wipes points, streak and all achievement progress
func ResetProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if err := achievementService.ResetProgress(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reset progress"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Progress reset successfully",
	})
}
