package main

import (
	"log"
	"os"
	"time"

	"lingua/database"
	"lingua/handlers"
	"lingua/handlers/admin"
	"lingua/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database and services
	database.InitDB()
	handlers.InitServices()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    8 * 1024 * 1024, // 8MB, spreadsheet uploads included
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/google", handlers.GoogleLogin)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Patch("/profile", handlers.UpdateProfile)
	userGroup.Post("/study-time", handlers.UpdateStudyTime)
	userGroup.Get("/progress", handlers.GetUserProgress)
	userGroup.Delete("/progress/reset", handlers.ResetProgress)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetUserAchievements)
	achievementGroup.Get("/stats", handlers.GetUserStats)
	achievementGroup.Post("/check", handlers.CheckAchievements)

	// Vocabulary routes
	vocabGroup := api.Group("/vocabulary")
	vocabGroup.Use(middleware.AuthMiddleware)
	vocabGroup.Get("/topics", handlers.GetTopics)
	vocabGroup.Get("/topics/:id/words", handlers.GetTopicWords)
	vocabGroup.Post("/words/:id/known", handlers.MarkWordKnown)

	// Phrase routes
	phraseGroup := api.Group("/phrases")
	phraseGroup.Use(middleware.AuthMiddleware)
	phraseGroup.Get("/topics", handlers.GetPhraseTopics)
	phraseGroup.Get("/topics/:id", handlers.GetTopicPhrases)
	phraseGroup.Post("/:id/known", handlers.MarkPhraseKnown)

	// Grammar routes
	grammarGroup := api.Group("/grammar")
	grammarGroup.Use(middleware.AuthMiddleware)
	grammarGroup.Get("/topics", handlers.GetGrammarTopics)
	grammarGroup.Get("/topics/:id/rules", handlers.GetTopicRules)
	grammarGroup.Post("/rules/:id/status", handlers.MarkRuleCompleted)
	grammarGroup.Get("/topics/:id/test", handlers.GetTopicTest)
	grammarGroup.Post("/topics/:id/test", handlers.SubmitGrammarTest)

	// Exercise routes
	exerciseGroup := api.Group("/exercises")
	exerciseGroup.Use(middleware.AuthMiddleware)
	exerciseGroup.Get("/topics", handlers.GetExerciseTopics)
	exerciseGroup.Get("/topics/:id", handlers.GetTopicExercises)
	exerciseGroup.Post("/:id/submit", handlers.SubmitExercise)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Patch("/users/:id/roles", admin.UpdateUserRoles)

	adminGroup.Get("/achievements", admin.GetAchievements)
	adminGroup.Post("/achievements", admin.CreateAchievement)
	adminGroup.Patch("/achievements/:id", admin.UpdateAchievement)
	adminGroup.Delete("/achievements/:id", admin.DeleteAchievement)

	adminGroup.Post("/vocabulary/topics", admin.CreateTopic)
	adminGroup.Post("/vocabulary/words", admin.CreateWord)
	adminGroup.Post("/vocabulary/import", admin.ImportVocabulary)
	adminGroup.Post("/phrases/topics", admin.CreatePhraseTopic)
	adminGroup.Post("/phrases", admin.CreatePhrase)
	adminGroup.Post("/grammar/topics", admin.CreateGrammarTopic)
	adminGroup.Post("/grammar/rules", admin.CreateGrammarRule)
	adminGroup.Post("/grammar/questions", admin.CreateGrammarQuestion)
	adminGroup.Post("/exercises/topics", admin.CreateExerciseTopic)
	adminGroup.Post("/exercises", admin.CreateExercise)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
