package quiz

import (
	"context"
	"fmt"
	"log"
	"time"
)

// FallbackFeedback replaces the feedback text whenever the feedback
// service cannot be reached.
const FallbackFeedback = "Great effort! Keep practicing to improve your skills."

type FeedbackRequest struct {
	UserID         uint       `json:"user_id"`
	Topic          string     `json:"topic"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	Difficulty     Difficulty `json:"difficulty"`
	LikedQuiz      bool       `json:"liked_quiz"`
}

type FeedbackResult struct {
	FeedbackText      string `json:"feedback_text"`
	BonusPoints       int    `json:"bonus_points"`
	BonusGiven        bool   `json:"bonus_given"`
	BonusReason       string `json:"bonus_reason,omitempty"`
	SuggestionMessage string `json:"suggestion_message,omitempty"`
}

type FeedbackService interface {
	RequestFeedback(ctx context.Context, req FeedbackRequest) (FeedbackResult, error)
}

func fallbackResult() FeedbackResult {
	return FeedbackResult{FeedbackText: FallbackFeedback}
}

// FeedbackOrchestrator asks the feedback service about a finished session.
// It never returns an error: any failure yields the fallback result.
type FeedbackOrchestrator struct {
	service FeedbackService
	timeout time.Duration
}

// NewFeedbackOrchestrator accepts a nil service, in which case every
// request gets the fallback. A zero timeout leaves the caller's deadline
// in charge.
func NewFeedbackOrchestrator(service FeedbackService, timeout time.Duration) *FeedbackOrchestrator {
	return &FeedbackOrchestrator{service: service, timeout: timeout}
}

func (o *FeedbackOrchestrator) RequestFeedback(ctx context.Context, s *Session, userID uint, liked bool) FeedbackResult {
	fb, _ := o.request(ctx, s, userID, liked)
	return fb
}

// request reports answered=false when the fallback stands in for a service
// that was configured but failed. A missing service is a final answer.
func (o *FeedbackOrchestrator) request(ctx context.Context, s *Session, userID uint, liked bool) (result FeedbackResult, answered bool) {
	if o == nil || o.service == nil {
		return fallbackResult(), true
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("feedback: service panicked: %v", r)
			result, answered = fallbackResult(), false
		}
	}()

	fb, err := o.service.RequestFeedback(ctx, FeedbackRequest{
		UserID:         userID,
		Topic:          s.Topic,
		Score:          s.CorrectCount(),
		TotalQuestions: s.TotalQuestions(),
		Difficulty:     s.Difficulty,
		LikedQuiz:      liked,
	})
	if err != nil {
		log.Printf("feedback: %v", fmt.Errorf("%w: %v", ErrExternalService, err))
		return fallbackResult(), false
	}

	if fb.FeedbackText == "" {
		fb.FeedbackText = FallbackFeedback
	}
	if !fb.BonusGiven || fb.BonusPoints <= 0 {
		fb.BonusGiven = false
		fb.BonusPoints = 0
	}
	return fb, true
}

// Enrich requests feedback for s and merges it into report.
func (o *FeedbackOrchestrator) Enrich(ctx context.Context, report SessionReport, s *Session, userID uint, liked bool) SessionReport {
	report, _ = o.TryEnrich(ctx, report, s, userID, liked)
	return report
}

// TryEnrich is Enrich that also reports whether the feedback service
// answered. A false result carries the fallback and is worth retrying.
func (o *FeedbackOrchestrator) TryEnrich(ctx context.Context, report SessionReport, s *Session, userID uint, liked bool) (SessionReport, bool) {
	fb, answered := o.request(ctx, s, userID, liked)
	return report.WithFeedback(fb), answered
}
