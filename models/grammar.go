// models/grammar.go
package models

import "time"

type GrammarTopic struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Difficulty  string `gorm:"not null;default:'beginner';size:20" json:"difficulty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rules     []GrammarRule     `gorm:"foreignKey:TopicID" json:"rules,omitempty"`
	Questions []GrammarQuestion `gorm:"foreignKey:TopicID" json:"questions,omitempty"`
}

type GrammarRule struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	TopicID     uint          `gorm:"not null;index" json:"topicId"`
	Topic       *GrammarTopic `gorm:"foreignKey:TopicID" json:"-"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"not null;type:text" json:"description"`
	Examples    string        `gorm:"type:text" json:"examples"` // newline-separated example sentences

	CreatedAt time.Time `json:"createdAt"`
}

// GrammarQuestion is a multiple-choice test question; CorrectAnswer is
// an index into Options.
type GrammarQuestion struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	TopicID       uint          `gorm:"not null;index" json:"topicId"`
	Topic         *GrammarTopic `gorm:"foreignKey:TopicID" json:"-"`
	Question      string        `gorm:"not null;type:text" json:"question"`
	Options       string        `gorm:"not null;type:text" json:"options"` // newline-separated choices
	CorrectAnswer int           `gorm:"not null" json:"-"`
	Explanation   string        `gorm:"type:text" json:"explanation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type UserGrammarRule struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_user_grammar_rule" json:"userId"`
	RuleID      uint `gorm:"not null;uniqueIndex:idx_user_grammar_rule" json:"ruleId"`
	IsCompleted bool `gorm:"default:false" json:"isCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserGrammarTest is one graded test attempt for a grammar topic.
type UserGrammarTest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:idx_user_grammar_test" json:"userId"`
	TopicID        uint      `gorm:"not null;index:idx_user_grammar_test" json:"topicId"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	Percentage     int       `gorm:"not null" json:"percentage"`
	Passed         bool      `gorm:"default:false" json:"passed"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (GrammarTopic) TableName() string {
	return "grammar_topics"
}

func (GrammarRule) TableName() string {
	return "grammar_rules"
}

func (GrammarQuestion) TableName() string {
	return "grammar_questions"
}

func (UserGrammarRule) TableName() string {
	return "user_grammar_rules"
}

func (UserGrammarTest) TableName() string {
	return "user_grammar_tests"
}
