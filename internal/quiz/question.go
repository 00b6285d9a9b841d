package quiz

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Question is a single multiple choice question. Values are treated as
// immutable once a session owns them.
type Question struct {
	Text          string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,unique,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
}

var validate = validator.New()

// NewQuestion copies options so later changes by the caller cannot leak in.
func NewQuestion(text string, options []string, correctAnswer, explanation string) (Question, error) {
	q := Question{
		Text:          text,
		Options:       append([]string(nil), options...),
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (q Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	if !q.HasOption(q.CorrectAnswer) {
		return fmt.Errorf("%w: correct answer %q is not among the options", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// HasOption reports whether answer is exactly one of the options.
func (q Question) HasOption(answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}

func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
