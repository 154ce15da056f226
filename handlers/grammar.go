// handlers/grammar.go
package handlers

import (
	"strings"
	"time"

	"lingua/database"
	"lingua/middleware"
	"lingua/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// A test passes at 70% or better.
const grammarPassPercentage = 70

type SubmitTestRequest struct {
	Answers []int `json:"answers"`
}

// GetGrammarTopics lists grammar topics
func GetGrammarTopics(c *fiber.Ctx) error {
	db := database.GetDB()

	var topics []models.GrammarTopic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch topics"})
	}

	return c.JSON(fiber.Map{"success": true, "topics": topics})
}

// GetTopicRules lists a topic's rules annotated with completion state
func GetTopicRules(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	db := database.GetDB()

	var topic models.GrammarTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var rules []models.GrammarRule
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&rules).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch rules"})
	}

	var userRules []models.UserGrammarRule
	if err := db.Where("user_id = ?", userID).Find(&userRules).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch rule progress"})
	}
	completed := make(map[uint]bool, len(userRules))
	for _, ur := range userRules {
		completed[ur.RuleID] = ur.IsCompleted
	}

	annotated := make([]fiber.Map, 0, len(rules))
	for _, r := range rules {
		annotated = append(annotated, fiber.Map{
			"id":          r.ID,
			"title":       r.Title,
			"description": r.Description,
			"examples":    splitLines(r.Examples),
			"isCompleted": completed[r.ID],
		})
	}

	return c.JSON(fiber.Map{"success": true, "topic": topic, "rules": annotated})
}

// MarkRuleCompleted upserts the caller's completion flag for a rule
func MarkRuleCompleted(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	ruleID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rule id"})
	}

	var req struct {
		IsCompleted bool `json:"isCompleted"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var rule models.GrammarRule
	if err := db.First(&rule, ruleID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Rule not found"})
	}

	row := models.UserGrammarRule{
		UserID:      userID,
		RuleID:      rule.ID,
		IsCompleted: req.IsCompleted,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "rule_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_completed": req.IsCompleted}),
	}).Create(&row).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update rule status"})
	}

	return c.JSON(fiber.Map{"success": true, "ruleId": rule.ID, "isCompleted": req.IsCompleted})
}

// GetTopicTest returns a topic's test questions without the answers
func GetTopicTest(c *fiber.Ctx) error {
	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	db := database.GetDB()

	var topic models.GrammarTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var questions []models.GrammarQuestion
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&questions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}

	out := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		out = append(out, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"options":  splitLines(q.Options),
		})
	}

	return c.JSON(fiber.Map{"success": true, "topic": topic, "questions": out})
}

// SubmitGrammarTest grades a topic test and records the attempt
func SubmitGrammarTest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	topicID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid topic id"})
	}

	var req SubmitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var topic models.GrammarTopic
	if err := db.First(&topic, topicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	var questions []models.GrammarQuestion
	if err := db.Where("topic_id = ?", topicID).Order("id").Find(&questions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}
	if len(questions) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Topic has no test questions"})
	}
	if len(req.Answers) != len(questions) {
		return c.Status(400).JSON(fiber.Map{"error": "Answer count does not match question count"})
	}

	score := 0
	for i, q := range questions {
		if req.Answers[i] == q.CorrectAnswer {
			score++
		}
	}
	percentage := score * 100 / len(questions)

	test := models.UserGrammarTest{
		UserID:         userID,
		TopicID:        topic.ID,
		Score:          score,
		TotalQuestions: len(questions),
		Percentage:     percentage,
		Passed:         percentage >= grammarPassPercentage,
		CompletedAt:    time.Now().UTC(),
	}
	if err := db.Create(&test).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record test"})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"score":          score,
		"totalQuestions": len(questions),
		"percentage":     percentage,
		"passed":         test.Passed,
	})
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
