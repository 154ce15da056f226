// models/vocabulary.go
package models

import "time"

// Topic groups vocabulary words by theme and difficulty.
type Topic struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `gorm:"not null;default:'beginner';size:20" json:"difficulty"` // beginner, intermediate, advanced

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Words []Word `gorm:"foreignKey:TopicID" json:"words,omitempty"`
}

type Word struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TopicID       uint   `gorm:"not null;index" json:"topicId"`
	Topic         *Topic `gorm:"foreignKey:TopicID" json:"-"`
	Word          string `gorm:"not null" json:"word"`
	Translation   string `gorm:"not null" json:"translation"`
	Transcription string `json:"transcription"`
	AudioURL      string `json:"audioUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

// UserWord is the per-user learning state of a single word.
type UserWord struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_user_word" json:"userId"`
	WordID  uint `gorm:"not null;uniqueIndex:idx_user_word" json:"wordId"`
	IsKnown bool `gorm:"default:false" json:"isKnown"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Topic) TableName() string {
	return "vocabulary_topics"
}

func (Word) TableName() string {
	return "vocabulary_words"
}

func (UserWord) TableName() string {
	return "user_vocabulary_words"
}
