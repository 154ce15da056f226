// handlers/auth.go
package handlers

import (
	"errors"
	"os"
	"time"

	"lingua/database"
	"lingua/models"
	"lingua/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the profile of an already-verified Google
// sign-in. Token verification against Google happens upstream.
type GoogleLoginRequest struct {
	GoogleID string `json:"googleId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	User    UserInfo `json:"user,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type UserInfo struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Roles     string    `json:"roles"`
	Points    int       `json:"points"`
	Streak    int       `json:"streak"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates a new email/password account
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: utils.FormatValidationError(err)})
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(409).JSON(AuthResponse{Success: false, Error: "User with this email already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to hash password"})
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Roles:    "user",
	}
	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.Status(201).JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

// Login authenticates a registered user
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: utils.FormatValidationError(err)})
	}

	db := database.GetDB()

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid email or password"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

// GoogleLogin creates or links an account from a verified Google profile
func GoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: utils.FormatValidationError(err)})
	}

	db := database.GetDB()

	var user models.User
	err := db.Where("google_id = ?", req.GoogleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link by email if the account exists, otherwise create one.
		err = db.Where("email = ?", req.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			placeholder, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
			if hashErr != nil {
				return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
			}
			user = models.User{
				Email:           req.Email,
				Password:        string(placeholder),
				Name:            req.Name,
				Avatar:          req.Avatar,
				GoogleID:        &req.GoogleID,
				Roles:           "user",
				IsEmailVerified: true,
			}
			if err := db.Create(&user).Error; err != nil {
				return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to create account"})
			}
		} else if err != nil {
			return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to look up account"})
		} else {
			updates := map[string]interface{}{
				"google_id":         req.GoogleID,
				"is_email_verified": true,
			}
			if req.Name != "" {
				updates["name"] = req.Name
			}
			if req.Avatar != "" {
				updates["avatar"] = req.Avatar
			}
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to link account"})
			}
		}
	} else if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to look up account"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: userInfo(user)})
}

func generateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"roles":   user.Roles,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func userInfo(user models.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Roles:     user.Roles,
		Points:    user.Points,
		Streak:    user.Streak,
		CreatedAt: user.CreatedAt,
	}
}
