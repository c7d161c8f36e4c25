package quiz

import "fmt"

// Strategy grades a single question against its positional answer.
// Implementations are pure: no side effects, no external state.
type Strategy interface {
	Grade(q Question, a Answer) bool
}

// QuestionValidator checks a question's shape and bounds. A nil return means
// valid; otherwise the error is a *SchemaError with a field-level message.
type QuestionValidator func(q Question) error

// AnswerValidator checks an answer's shape for one question type.
type AnswerValidator func(a Answer) error

type entry struct {
	strategy         Strategy
	validateQuestion QuestionValidator
	validateAnswer   AnswerValidator
}

// Registry maps a question type tag to its grading strategy and validators.
// It is populated once during startup and read-only afterwards; concurrent
// reads need no locking as long as registration happens before traffic.
type Registry struct {
	entries map[QuestionType]entry
}

// NewRegistry returns an empty registry. Most callers want
// NewDefaultRegistry, which installs the built-in question types.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[QuestionType]entry)}
}

// Register installs or overwrites the entry for a type tag.
func (r *Registry) Register(t QuestionType, s Strategy, qv QuestionValidator, av AnswerValidator) {
	r.entries[t] = entry{strategy: s, validateQuestion: qv, validateAnswer: av}
}

// lookup returns the entry for a type tag. Resolution stays internal: callers
// go through the Grader, which is the only consumer of strategies and
// validators.
func (r *Registry) lookup(t QuestionType) (entry, error) {
	e, ok := r.entries[t]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, t)
	}
	return e, nil
}

// Limits bounds question and answer shapes. Values come from configuration.
type Limits struct {
	NumChoices      int // exact option count for multiple choice
	MinPoints       int
	MaxPoints       int
	MaxPromptLength int // runes
	MaxAnswerLength int // runes, long-answer response
}

// NewDefaultRegistry installs the built-in question types bound to the given
// limits.
func NewDefaultRegistry(limits Limits) *Registry {
	r := NewRegistry()
	r.Register(TypeMultipleChoice,
		multipleChoiceStrategy{},
		validateMultipleChoiceQuestion(limits),
		validateMultipleChoiceAnswer(limits))
	r.Register(TypeLongAnswer,
		longAnswerStrategy{},
		validateLongAnswerQuestion(limits),
		validateLongAnswerAnswer(limits))
	return r
}
