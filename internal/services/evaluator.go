package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studypal-backend/internal/quiz"

	"github.com/go-resty/resty/v2"
)

// RemoteScorer delegates answer grading to an external evaluator service.
type RemoteScorer struct {
	client *resty.Client
}

func NewRemoteScorer(baseURL string, timeout time.Duration) *RemoteScorer {
	return &RemoteScorer{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type evaluateRequest struct {
	Question      string          `json:"question"`
	UserAnswer    string          `json:"user_answer"`
	CorrectAnswer string          `json:"correct_answer"`
	Topic         string          `json:"topic"`
	Difficulty    quiz.Difficulty `json:"difficulty"`
}

type evaluateResponse struct {
	IsCorrect    *bool `json:"is_correct"`
	PointsEarned *int  `json:"points_earned"`
}

// Score never defaults a verdict: a reply that is not a JSON object with
// both is_correct and points_earned is an error and the caller may retry.
func (r *RemoteScorer) Score(ctx context.Context, req quiz.ScoreRequest) (quiz.ScoreResult, error) {
	var out evaluateResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(evaluateRequest{
			Question:      req.Question.Text,
			UserAnswer:    req.Selected,
			CorrectAnswer: req.Question.CorrectAnswer,
			Topic:         req.Topic,
			Difficulty:    req.Difficulty,
		}).
		SetResult(&out).
		Post("/evaluate-answer")
	if err != nil {
		return quiz.ScoreResult{}, fmt.Errorf("evaluator: %w", err)
	}
	if resp.IsError() {
		return quiz.ScoreResult{}, fmt.Errorf("evaluator: status %d: %s", resp.StatusCode(), resp.String())
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "json") {
		return quiz.ScoreResult{}, fmt.Errorf("evaluator: unexpected content type %q", ct)
	}
	if len(resp.Body()) == 0 {
		return quiz.ScoreResult{}, errors.New("evaluator: empty response")
	}
	if out.IsCorrect == nil || out.PointsEarned == nil {
		return quiz.ScoreResult{}, fmt.Errorf("evaluator: incomplete response: %s", resp.String())
	}
	return quiz.ScoreResult{IsCorrect: *out.IsCorrect, PointsEarned: *out.PointsEarned}, nil
}
