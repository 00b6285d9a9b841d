package quiz

import "errors"

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidAnswer      = errors.New("answer is not one of the question options")
	ErrSessionNotComplete = errors.New("session is not complete")
	ErrExternalService    = errors.New("external service error")
	ErrEmptyQuiz          = errors.New("quiz must have at least one question")
	ErrInvalidQuestion    = errors.New("invalid question")
)
