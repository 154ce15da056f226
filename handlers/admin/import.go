// handlers/admin/import.go - Bulk Vocabulary Import
package admin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lingua/database"
	"lingua/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet layout: word, translation, transcription, topic title.
// The first row is treated as a header and skipped.
const (
	importColWord = iota
	importColTranslation
	importColTranscription
	importColTopic
)

type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	TopicsCreated  int      `json:"topicsCreated"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

// ImportVocabulary ingests an .xlsx upload of vocabulary words, creating
// topics on the fly. Row-level problems are reported, not fatal.
func ImportVocabulary(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing file upload"})
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		return c.Status(400).JSON(fiber.Map{"error": "Only .xlsx files are supported"})
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+".xlsx")
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store upload"})
	}
	defer os.Remove(tmpPath)

	result, err := importFromExcel(tmpPath)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "result": result})
}

func importFromExcel(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}

	db := database.GetDB()
	result := &ImportResult{Errors: []string{}}

	// Cache topics by title so repeated rows reuse one record.
	topics := map[string]uint{}
	var existing []models.Topic
	if err := db.Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load topics: %v", err)
	}
	for _, t := range existing {
		topics[strings.ToLower(t.Title)] = t.ID
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		result.TotalProcessed++

		cell := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		word := cell(importColWord)
		translation := cell(importColTranslation)
		topicTitle := cell(importColTopic)

		if word == "" || translation == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: word and translation are required", i+1))
			continue
		}
		if topicTitle == "" {
			topicTitle = "Imported"
		}

		topicID, ok := topics[strings.ToLower(topicTitle)]
		if !ok {
			topic := models.Topic{Title: topicTitle, Difficulty: "beginner"}
			if err := db.Create(&topic).Error; err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to create topic %q", i+1, topicTitle))
				continue
			}
			topics[strings.ToLower(topicTitle)] = topic.ID
			topicID = topic.ID
			result.TopicsCreated++
		}

		entry := models.Word{
			TopicID:       topicID,
			Word:          word,
			Translation:   translation,
			Transcription: cell(importColTranscription),
		}
		if err := db.Create(&entry).Error; err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to save %q", i+1, word))
			continue
		}
		result.Created++
	}

	return result, nil
}
