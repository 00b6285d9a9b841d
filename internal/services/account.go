package services

import (
	"errors"
	"fmt"
	"time"

	"studypal-backend/internal/models"
	"studypal-backend/internal/quiz"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username or email already taken")
)

// studySessionWindow is how long a study session row keeps absorbing
// answers on the same topic.
const studySessionWindow = time.Hour

type AccountService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db, now: time.Now}
}

func (s *AccountService) CreateUser(username, email string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	user := models.User{
		Username:        username,
		Email:           email,
		DifficultyLevel: string(quiz.Medium),
		Avatar:          models.DefaultAvatar,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *AccountService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordAnswer credits a scored answer to the user's totals, streak and the
// study session for the topic.
func (s *AccountService) RecordAnswer(userID uint, topic string, difficulty quiz.Difficulty, isCorrect bool, points int) (*models.User, error) {
	at := s.now().UTC()
	var user models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.TotalPoints += points
		user.CurrentStreak = nextStreak(user.LastStudyDate, user.CurrentStreak, at)
		if user.CurrentStreak > user.LongestStreak {
			user.LongestStreak = user.CurrentStreak
		}
		user.LastStudyDate = &at
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		correct := 0
		if isCorrect {
			correct = 1
		}

		var session models.StudySession
		err := tx.Where("user_id = ? AND topic = ?", userID, topic).
			Order("created_at DESC").
			First(&session).Error
		if err == nil && at.Sub(session.CreatedAt) < studySessionWindow {
			session.QuestionsAnswered++
			session.CorrectAnswers += correct
			session.PointsEarned += points
			return tx.Save(&session).Error
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&models.StudySession{
			UserID:            userID,
			Topic:             topic,
			Difficulty:        string(difficulty),
			QuestionsAnswered: 1,
			CorrectAnswers:    correct,
			PointsEarned:      points,
			CreatedAt:         at,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddBonus credits feedback bonus points without touching the streak.
func (s *AccountService) AddBonus(userID uint, points int) error {
	if points <= 0 {
		return nil
	}
	res := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", points))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// nextStreak: same calendar day keeps the streak, the day after extends
// it, anything else restarts at 1.
func nextStreak(last *time.Time, current int, at time.Time) int {
	if last == nil {
		return 1
	}
	today := now.With(at).BeginningOfDay()
	lastDay := now.With(last.UTC()).BeginningOfDay()
	switch {
	case lastDay.Equal(today):
		if current < 1 {
			return 1
		}
		return current
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

func (s *AccountService) Leaderboard(limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []models.User
	if err := s.db.Order("total_points DESC").Order("id ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type UserStats struct {
	User           models.User `json:"user"`
	TotalQuestions int         `json:"total_questions"`
	TotalCorrect   int         `json:"total_correct"`
	Accuracy       float64     `json:"accuracy"`
	SessionsCount  int         `json:"sessions_count"`
}

func (s *AccountService) Stats(userID uint) (*UserStats, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	var sessions []models.StudySession
	if err := s.db.Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, err
	}

	stats := &UserStats{User: *user, SessionsCount: len(sessions)}
	for _, ss := range sessions {
		stats.TotalQuestions += ss.QuestionsAnswered
		stats.TotalCorrect += ss.CorrectAnswers
	}
	stats.Accuracy = quiz.Accuracy(stats.TotalCorrect, stats.TotalQuestions)
	return stats, nil
}

type DifficultySuggestion struct {
	SuggestedDifficulty quiz.Difficulty `json:"suggested_difficulty"`
	Reason              string          `json:"reason"`
	Accuracy            *float64        `json:"accuracy,omitempty"`
}

// SuggestDifficulty looks at the user's five most recent study sessions.
func (s *AccountService) SuggestDifficulty(userID uint) (*DifficultySuggestion, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	var sessions []models.StudySession
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		return &DifficultySuggestion{
			SuggestedDifficulty: quiz.Medium,
			Reason:              "Starting with medium difficulty for new user",
		}, nil
	}

	total, correct := 0, 0
	for _, ss := range sessions {
		total += ss.QuestionsAnswered
		correct += ss.CorrectAnswers
	}
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	pct := quiz.Accuracy(correct, total)

	suggestion := &DifficultySuggestion{Accuracy: &accuracy}
	switch {
	case accuracy > 0.85:
		suggestion.SuggestedDifficulty = quiz.Hard
		suggestion.Reason = fmt.Sprintf("High accuracy (%.1f%%) - Ready for harder questions", pct)
	case accuracy < 0.50:
		suggestion.SuggestedDifficulty = quiz.Easy
		suggestion.Reason = fmt.Sprintf("Building foundation (%.1f%%) - Let's practice basics", pct)
	default:
		suggestion.SuggestedDifficulty = quiz.Medium
		suggestion.Reason = fmt.Sprintf("Good progress (%.1f%%) - Continue at this level", pct)
	}
	return suggestion, nil
}
