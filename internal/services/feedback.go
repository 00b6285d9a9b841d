package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studypal-backend/internal/quiz"

	"github.com/go-resty/resty/v2"
)

// FeedbackClient talks to the personalized feedback service.
type FeedbackClient struct {
	client *resty.Client
}

func NewFeedbackClient(baseURL string, timeout time.Duration) *FeedbackClient {
	return &FeedbackClient{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type feedbackResponse struct {
	AIFeedback        string `json:"ai_feedback"`
	BonusPoints       *int   `json:"bonus_points"`
	BonusGiven        *bool  `json:"bonus_given"`
	BonusReason       string `json:"bonus_reason"`
	SuggestionMessage string `json:"suggestion_message"`
}

func (c *FeedbackClient) RequestFeedback(ctx context.Context, req quiz.FeedbackRequest) (quiz.FeedbackResult, error) {
	var out feedbackResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/feedback")
	if err != nil {
		return quiz.FeedbackResult{}, fmt.Errorf("feedback request: %w", err)
	}
	if resp.IsError() {
		return quiz.FeedbackResult{}, fmt.Errorf("feedback service returned status %d", resp.StatusCode())
	}

	result := quiz.FeedbackResult{
		FeedbackText:      out.AIFeedback,
		BonusReason:       out.BonusReason,
		SuggestionMessage: out.SuggestionMessage,
	}
	if out.BonusPoints != nil {
		result.BonusPoints = *out.BonusPoints
	}
	if out.BonusGiven != nil {
		result.BonusGiven = *out.BonusGiven
	} else {
		result.BonusGiven = result.BonusPoints > 0
	}
	return result, nil
}
