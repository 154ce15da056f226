// models/exercise.go
package models

import "time"

// Exercise types.
const (
	ExerciseMultipleChoice = "multiple_choice"
	ExerciseFillBlank      = "fill_blank"
	ExerciseTranslation    = "translation"
)

type ExerciseTopic struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `gorm:"not null;default:'beginner';size:20" json:"difficulty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Exercises []Exercise `gorm:"foreignKey:TopicID" json:"exercises,omitempty"`
}

type Exercise struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TopicID       uint           `gorm:"not null;index" json:"topicId"`
	Topic         *ExerciseTopic `gorm:"foreignKey:TopicID" json:"-"`
	Type          string         `gorm:"not null;size:30" json:"type"` // multiple_choice, fill_blank, translation
	Question      string         `gorm:"not null;type:text" json:"question"`
	Options       string         `gorm:"type:text" json:"options"` // newline-separated, empty for free-form types
	CorrectAnswer string         `gorm:"not null" json:"-"`
	Points        int            `gorm:"not null;default:10" json:"points"`

	CreatedAt time.Time `json:"createdAt"`
}

// UserExercise tracks attempts and completion for one exercise. The
// completion flag flips once; EarnedPoints records the single award.
type UserExercise struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_user_exercise" json:"userId"`
	ExerciseID   uint `gorm:"not null;uniqueIndex:idx_user_exercise" json:"exerciseId"`
	IsCompleted  bool `gorm:"default:false" json:"isCompleted"`
	EarnedPoints int  `gorm:"default:0" json:"earnedPoints"`
	Attempts     int  `gorm:"default:0" json:"attempts"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ExerciseTopic) TableName() string {
	return "exercise_topics"
}

func (Exercise) TableName() string {
	return "exercises"
}

func (UserExercise) TableName() string {
	return "user_exercises"
}
