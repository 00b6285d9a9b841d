package models

import "time"

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email           string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	TotalPoints     int            `gorm:"not null;default:0" json:"total_points"`
	CurrentStreak   int            `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak   int            `gorm:"not null;default:0" json:"longest_streak"`
	LastStudyDate   *time.Time     `json:"last_study_date,omitempty"`
	DifficultyLevel string         `gorm:"size:10;not null;default:'medium'" json:"difficulty_level"`
	Avatar          string         `gorm:"size:16;not null;default:'🎓'" json:"avatar"`
	StudySessions   []StudySession `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
}

const DefaultAvatar = "🎓"
