package models

import "time"

// StudySession aggregates the answers a user gave on one topic within an
// hour of the row being created.
type StudySession struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index:idx_study_user_topic" json:"user_id"`
	Topic             string    `gorm:"size:255;not null;index:idx_study_user_topic" json:"topic"`
	Difficulty        string    `gorm:"size:10;not null" json:"difficulty"`
	QuestionsAnswered int       `gorm:"not null;default:0" json:"questions_answered"`
	CorrectAnswers    int       `gorm:"not null;default:0" json:"correct_answers"`
	PointsEarned      int       `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}
