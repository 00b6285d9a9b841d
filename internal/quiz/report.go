package quiz

import "github.com/shopspring/decimal"

type SessionReport struct {
	Topic             string     `json:"topic"`
	Difficulty        Difficulty `json:"difficulty"`
	FinalScore        int        `json:"final_score"`
	CorrectCount      int        `json:"correct_count"`
	TotalQuestions    int        `json:"total_questions"`
	AccuracyPercent   float64    `json:"accuracy_percent"`
	FeedbackText      string     `json:"feedback_text,omitempty"`
	BonusPoints       int        `json:"bonus_points"`
	BonusGiven        bool       `json:"bonus_given"`
	BonusReason       string     `json:"bonus_reason,omitempty"`
	SuggestionMessage string     `json:"suggestion_message,omitempty"`
}

// BuildReport summarizes a completed session. The correct count comes from
// the per-answer flags, never from dividing the score by the point rate.
func BuildReport(s *Session) (SessionReport, error) {
	if !s.IsComplete() {
		return SessionReport{}, ErrSessionNotComplete
	}
	correct := s.CorrectCount()
	total := s.TotalQuestions()
	return SessionReport{
		Topic:           s.Topic,
		Difficulty:      s.Difficulty,
		FinalScore:      s.Score(),
		CorrectCount:    correct,
		TotalQuestions:  total,
		AccuracyPercent: Accuracy(correct, total),
	}, nil
}

// Accuracy returns 100*correct/total rounded half away from zero to one
// decimal place, and 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
	f, _ := pct.Float64()
	return f
}

// WithFeedback merges a feedback result into the report.
func (r SessionReport) WithFeedback(fb FeedbackResult) SessionReport {
	r.FeedbackText = fb.FeedbackText
	r.BonusGiven = fb.BonusGiven
	r.BonusPoints = fb.BonusPoints
	r.BonusReason = fb.BonusReason
	r.SuggestionMessage = fb.SuggestionMessage
	return r
}
