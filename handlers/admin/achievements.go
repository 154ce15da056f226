// handlers/admin/achievements.go
package admin

import (
	"errors"

	"lingua/database"
	"lingua/models"
	"lingua/services"
	"lingua/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateAchievementRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Icon         string `json:"icon" validate:"required"`
	Tier         string `json:"tier" validate:"required,oneof=bronze silver gold diamond"`
	Category     string `json:"category" validate:"required,oneof=words phrases exercises grammar streak points"`
	Target       int    `json:"target" validate:"gte=0"`
	PointsReward int    `json:"pointsReward" validate:"gte=0"`
	IsActive     *bool  `json:"isActive"`
}

type UpdateAchievementRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	Tier         *string `json:"tier" validate:"omitempty,oneof=bronze silver gold diamond"`
	Category     *string `json:"category" validate:"omitempty,oneof=words phrases exercises grammar streak points"`
	Target       *int    `json:"target" validate:"omitempty,gte=0"`
	PointsReward *int    `json:"pointsReward" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive"`
}

// GetAchievements returns the full catalog, active or not
func GetAchievements(c *fiber.Ctx) error {
	svc := services.NewAchievementService(database.GetDB())

	achievements, err := svc.ListAchievements()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{"success": true, "achievements": achievements})
}

// CreateAchievement adds a catalog entry
func CreateAchievement(c *fiber.Ctx) error {
	var req CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationError(err)})
	}

	achievement := models.Achievement{
		Title:        req.Title,
		Description:  req.Description,
		Icon:         req.Icon,
		Tier:         req.Tier,
		Category:     req.Category,
		Target:       req.Target,
		PointsReward: req.PointsReward,
		IsActive:     true,
	}
	if req.IsActive != nil {
		achievement.IsActive = *req.IsActive
	}

	svc := services.NewAchievementService(database.GetDB())
	if err := svc.CreateAchievement(&achievement); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "achievement": achievement})
}

// UpdateAchievement applies a partial update to a catalog entry
func UpdateAchievement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid achievement id"})
	}

	var req UpdateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationError(err)})
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Tier != nil {
		fields["tier"] = *req.Tier
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Target != nil {
		fields["target"] = *req.Target
	}
	if req.PointsReward != nil {
		fields["points_reward"] = *req.PointsReward
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	svc := services.NewAchievementService(database.GetDB())
	achievement, err := svc.UpdateAchievement(uint(id), fields)
	if err != nil {
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
	}

	return c.JSON(fiber.Map{"success": true, "achievement": achievement})
}

// DeleteAchievement removes a catalog entry and all progress rows
// referencing it
func DeleteAchievement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid achievement id"})
	}

	svc := services.NewAchievementService(database.GetDB())
	if err := svc.DeleteAchievement(uint(id)); err != nil {
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Achievement deleted successfully",
	})
}
