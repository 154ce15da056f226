// handlers/handlers.go - Shared Handler Wiring
package handlers

import (
	"lingua/database"
	"lingua/services"
)

var (
	achievementService *services.AchievementService
	statsService       *services.StatsService
	streakService      *services.StreakService
)

// InitServices wires the handler package to the database-backed services.
// Must run after database.InitDB.
func InitServices() {
	db := database.GetDB()
	achievementService = services.NewAchievementService(db)
	statsService = services.NewStatsService(db)
	streakService = services.NewStreakService(db)
}
