package quiz

import (
	"errors"
	"fmt"
)

// ErrUnknownQuestionType means a question carries a type tag with no registry
// entry. That is a configuration bug (a persisted type without a registered
// strategy), not a user input problem: surface it loudly, never default.
var ErrUnknownQuestionType = errors.New("unknown question type")

// ErrDegenerateQuiz means the quiz has zero total points, so a percentage
// score is undefined. Quiz creation rejects such quizzes; the grader guards
// anyway rather than divide by zero.
var ErrDegenerateQuiz = errors.New("quiz has no gradable points")

// CardinalityError reports a questions/answers length mismatch. Grading is
// strictly positional, so a mismatch aborts the whole submission.
type CardinalityError struct {
	Expected int // number of questions
	Actual   int // number of answers
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("expected %d answers, got %d", e.Expected, e.Actual)
}

// SchemaError is a recoverable shape/bounds failure on a question or answer.
// Routes surface it to the client as a 400 with the message intact.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func schemaErrf(field, format string, args ...any) error {
	return &SchemaError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
