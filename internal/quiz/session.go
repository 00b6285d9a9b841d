package quiz

import (
	"context"
	"fmt"
)

type State int

const (
	StateAwaitingAnswer State = iota
	StateRevealing
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateRevealing:
		return "revealing"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type AnswerRecord struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
	PointsEarned   int    `json:"points_earned"`
}

// Outcome is what the caller shows between answering and advancing.
type Outcome struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
	PointsEarned   int    `json:"points_earned"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation"`
}

// Session is one run through a fixed, ordered set of questions.
//
// Transitions:
//
//	AwaitingAnswer(i) --SubmitAnswer--> Revealing(i)
//	Revealing(i)      --Advance------> AwaitingAnswer(i+1) | Complete
//
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	Topic      string
	Difficulty Difficulty

	questions []Question
	index     int
	state     State
	score     int
	answers   []AnswerRecord
}

func NewSession(topic string, difficulty Difficulty, questions []Question) (*Session, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	owned := make([]Question, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		owned[i] = q.clone()
	}
	return &Session{
		Topic:      topic,
		Difficulty: difficulty,
		questions:  owned,
		answers:    make([]AnswerRecord, 0, len(owned)),
	}, nil
}

func (s *Session) State() State { return s.state }

// CurrentIndex is the question being answered or revealed, or the number
// of questions once complete.
func (s *Session) CurrentIndex() int { return s.index }

func (s *Session) TotalQuestions() int { return len(s.questions) }

func (s *Session) Score() int { return s.score }

func (s *Session) IsComplete() bool { return s.state == StateComplete }

// Current returns the question at CurrentIndex. ok is false once complete.
func (s *Session) Current() (q Question, ok bool) {
	if s.state == StateComplete {
		return Question{}, false
	}
	return s.questions[s.index].clone(), true
}

func (s *Session) Answers() []AnswerRecord {
	return append([]AnswerRecord(nil), s.answers...)
}

// Outcome returns the scored result of the current question while the
// session is revealing it.
func (s *Session) Outcome() (Outcome, bool) {
	if s.state != StateRevealing {
		return Outcome{}, false
	}
	rec := s.answers[len(s.answers)-1]
	q := s.questions[rec.QuestionIndex]
	return Outcome{
		QuestionIndex:  rec.QuestionIndex,
		SelectedAnswer: rec.SelectedAnswer,
		IsCorrect:      rec.IsCorrect,
		PointsEarned:   rec.PointsEarned,
		CorrectAnswer:  q.CorrectAnswer,
		Explanation:    q.Explanation,
	}, true
}

// CorrectCount counts the correctness flags of the recorded answers.
func (s *Session) CorrectCount() int {
	n := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// SubmitAnswer scores selected against the current question. The state is
// only changed after the scorer returns successfully, so a failed or
// cancelled call can be retried with the same answer.
func (s *Session) SubmitAnswer(ctx context.Context, scorer Scorer, selected string) (Outcome, error) {
	if s.state != StateAwaitingAnswer {
		return Outcome{}, fmt.Errorf("%w: cannot submit an answer while %s", ErrInvalidTransition, s.state)
	}
	q := s.questions[s.index]
	if !q.HasOption(selected) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidAnswer, selected)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	res, err := scorer.Score(ctx, ScoreRequest{
		Question:   q.clone(),
		Selected:   selected,
		Topic:      s.Topic,
		Difficulty: s.Difficulty,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		return Outcome{}, fmt.Errorf("%w: scoring question %d: %v", ErrExternalService, s.index, err)
	}

	points := res.PointsEarned
	if !res.IsCorrect || points < 0 {
		points = 0
	}
	s.answers = append(s.answers, AnswerRecord{
		QuestionIndex:  s.index,
		SelectedAnswer: selected,
		IsCorrect:      res.IsCorrect,
		PointsEarned:   points,
	})
	s.score += points
	s.state = StateRevealing

	out, _ := s.Outcome()
	return out, nil
}

// Advance leaves the reveal state for the next question, or completes the
// session after the last one.
func (s *Session) Advance() (State, error) {
	if s.state != StateRevealing {
		return s.state, fmt.Errorf("%w: cannot advance while %s", ErrInvalidTransition, s.state)
	}
	s.index++
	if s.index == len(s.questions) {
		s.state = StateComplete
	} else {
		s.state = StateAwaitingAnswer
	}
	return s.state, nil
}
