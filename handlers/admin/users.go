// handlers/admin/users.go
package admin

import (
	"strings"

	"lingua/database"
	"lingua/models"
	"lingua/utils"

	"github.com/gofiber/fiber/v2"
)

type UpdateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=user admin"`
}

// GetUsers lists all accounts
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{"success": true, "users": users, "total": len(users)})
}

// GetUser returns one account
func GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// UpdateUserRoles replaces an account's role list
func UpdateUserRoles(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req UpdateRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": utils.FormatValidationError(err)})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if err := db.Model(&user).Update("roles", strings.Join(req.Roles, ",")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update roles"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}
