// models/phrase.go
package models

import "time"

type PhraseTopic struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `gorm:"not null;default:'beginner';size:20" json:"difficulty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Phrases []Phrase `gorm:"foreignKey:TopicID" json:"phrases,omitempty"`
}

type Phrase struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	TopicID     uint         `gorm:"not null;index" json:"topicId"`
	Topic       *PhraseTopic `gorm:"foreignKey:TopicID" json:"-"`
	Phrase      string       `gorm:"not null" json:"phrase"`
	Translation string       `gorm:"not null" json:"translation"`
	AudioURL    string       `json:"audioUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

type UserPhrase struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_phrase" json:"userId"`
	PhraseID uint `gorm:"not null;uniqueIndex:idx_user_phrase" json:"phraseId"`
	IsKnown  bool `gorm:"default:false" json:"isKnown"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PhraseTopic) TableName() string {
	return "phrase_topics"
}

func (Phrase) TableName() string {
	return "phrases"
}

func (UserPhrase) TableName() string {
	return "user_phrases"
}
