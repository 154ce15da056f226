// handlers/achievements.go
package handlers

import (
	"lingua/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUserAchievements returns all active achievements annotated with the
// caller's progress and unlock state
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	achievements, err := achievementService.GetUserAchievements(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	unlocked := 0
	for _, a := range achievements {
		if a.IsUnlocked {
			unlocked++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(achievements),
		"unlocked":     unlocked,
	})
}

// GetUserStats returns the caller's stats snapshot
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := statsService.CalculateUserStats(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute stats"})
	}

	return c.JSON(stats)
}

// CheckAchievements runs an evaluation pass and reports new unlocks
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := achievementService.CheckAndUnlock(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"newlyUnlocked": result.NewlyUnlocked,
		"message":       result.Message,
		"failed":        result.Failed,
	})
}
