// handlers/admin/content.go - Content Catalog Management
package admin

import (
	"strings"

	"lingua/database"
	"lingua/models"
	"lingua/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateTopicRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
}

type CreateWordRequest struct {
	TopicID       uint   `json:"topicId" validate:"required"`
	Word          string `json:"word" validate:"required"`
	Translation   string `json:"translation" validate:"required"`
	Transcription string `json:"transcription"`
	AudioURL      string `json:"audioUrl"`
}

type CreatePhraseRequest struct {
	TopicID     uint   `json:"topicId" validate:"required"`
	Phrase      string `json:"phrase" validate:"required"`
	Translation string `json:"translation" validate:"required"`
	AudioURL    string `json:"audioUrl"`
}

type CreateGrammarRuleRequest struct {
	TopicID     uint     `json:"topicId" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Examples    []string `json:"examples"`
}

type CreateGrammarQuestionRequest struct {
	TopicID       uint     `json:"topicId" validate:"required"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
	Explanation   string   `json:"explanation"`
}

type CreateExerciseRequest struct {
	TopicID       uint     `json:"topicId" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple_choice fill_blank translation"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Points        int      `json:"points" validate:"gte=0"`
}

func parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(400, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fiber.NewError(400, utils.FormatValidationError(err))
	}
	return nil
}

// CreateTopic adds a vocabulary topic
func CreateTopic(c *fiber.Ctx) error {
	var req CreateTopicRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	topic := models.Topic{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Difficulty:  req.Difficulty,
	}
	if err := database.GetDB().Create(&topic).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create topic"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "topic": topic})
}

// CreateWord adds a word to a vocabulary topic
func CreateWord(c *fiber.Ctx) error {
	var req CreateWordRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	db := database.GetDB()
	var topic models.Topic
	if err := db.First(&topic, req.TopicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	word := models.Word{
		TopicID:       topic.ID,
		Word:          req.Word,
		Translation:   req.Translation,
		Transcription: req.Transcription,
		AudioURL:      req.AudioURL,
	}
	if err := db.Create(&word).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create word"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "word": word})
}

// CreatePhraseTopic adds a phrase topic
func CreatePhraseTopic(c *fiber.Ctx) error {
	var req CreateTopicRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	topic := models.PhraseTopic{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Difficulty:  req.Difficulty,
	}
	if err := database.GetDB().Create(&topic).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create topic"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "topic": topic})
}

// CreatePhrase adds a phrase to a topic
func CreatePhrase(c *fiber.Ctx) error {
	var req CreatePhraseRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	db := database.GetDB()
	var topic models.PhraseTopic
	if err := db.First(&topic, req.TopicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	phrase := models.Phrase{
		TopicID:     topic.ID,
		Phrase:      req.Phrase,
		Translation: req.Translation,
		AudioURL:    req.AudioURL,
	}
	if err := db.Create(&phrase).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create phrase"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "phrase": phrase})
}

// CreateGrammarTopic adds a grammar topic
func CreateGrammarTopic(c *fiber.Ctx) error {
	var req CreateTopicRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	topic := models.GrammarTopic{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	if err := database.GetDB().Create(&topic).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create topic"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "topic": topic})
}

// CreateGrammarRule adds a rule to a grammar topic
func CreateGrammarRule(c *fiber.Ctx) error {
	var req CreateGrammarRuleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	db := database.GetDB()
	var topic models.GrammarTopic
	if err := db.First(&topic, req.TopicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	rule := models.GrammarRule{
		TopicID:     topic.ID,
		Title:       req.Title,
		Description: req.Description,
		Examples:    strings.Join(req.Examples, "\n"),
	}
	if err := db.Create(&rule).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create rule"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "rule": rule})
}

// CreateGrammarQuestion adds a test question to a grammar topic
func CreateGrammarQuestion(c *fiber.Ctx) error {
	var req CreateGrammarQuestionRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if req.CorrectAnswer >= len(req.Options) {
		return c.Status(400).JSON(fiber.Map{"error": "correctAnswer is out of range"})
	}

	db := database.GetDB()
	var topic models.GrammarTopic
	if err := db.First(&topic, req.TopicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	question := models.GrammarQuestion{
		TopicID:       topic.ID,
		Question:      req.Question,
		Options:       strings.Join(req.Options, "\n"),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	if err := db.Create(&question).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "question": question})
}

// CreateExerciseTopic adds an exercise topic
func CreateExerciseTopic(c *fiber.Ctx) error {
	var req CreateTopicRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	topic := models.ExerciseTopic{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Difficulty:  req.Difficulty,
	}
	if err := database.GetDB().Create(&topic).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create topic"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "topic": topic})
}

// CreateExercise adds an exercise to a topic
func CreateExercise(c *fiber.Ctx) error {
	var req CreateExerciseRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if req.Type == models.ExerciseMultipleChoice && len(req.Options) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "multiple_choice exercises need at least 2 options"})
	}

	db := database.GetDB()
	var topic models.ExerciseTopic
	if err := db.First(&topic, req.TopicID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Topic not found"})
	}

	points := req.Points
	if points == 0 {
		points = 10
	}

	exercise := models.Exercise{
		TopicID:       topic.ID,
		Type:          req.Type,
		Question:      req.Question,
		Options:       strings.Join(req.Options, "\n"),
		CorrectAnswer: req.CorrectAnswer,
		Points:        points,
	}
	if err := db.Create(&exercise).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create exercise"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "exercise": exercise})
}
