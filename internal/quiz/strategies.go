package quiz

import "unicode/utf8"

// multipleChoiceStrategy awards full credit iff the selected option index
// equals the question's answer index. No partial credit.
type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) Grade(q Question, a Answer) bool {
	if q.AnswerIndex == nil || a.AnswerIndex == nil {
		return false
	}
	return *a.AnswerIndex == *q.AnswerIndex
}

// longAnswerStrategy always awards credit. Free-response questions are read
// by educators out of band; the engine rewards submission, not correctness.
// This is deliberate policy, not a stub.
type longAnswerStrategy struct{}

func (longAnswerStrategy) Grade(Question, Answer) bool { return true }

// --- question validators ---

func validateCommonQuestion(limits Limits, q Question) error {
	if q.Prompt == "" {
		return schemaErrf("prompt", "is required")
	}
	if n := utf8.RuneCountInString(q.Prompt); n > limits.MaxPromptLength {
		return schemaErrf("prompt", "length %d exceeds maximum %d", n, limits.MaxPromptLength)
	}
	if q.Points < limits.MinPoints || q.Points > limits.MaxPoints {
		return schemaErrf("points", "%d outside allowed range [%d,%d]", q.Points, limits.MinPoints, limits.MaxPoints)
	}
	return nil
}

func validateMultipleChoiceQuestion(limits Limits) QuestionValidator {
	return func(q Question) error {
		if err := validateCommonQuestion(limits, q); err != nil {
			return err
		}
		if len(q.Options) != limits.NumChoices {
			return schemaErrf("options", "need exactly %d options, got %d", limits.NumChoices, len(q.Options))
		}
		for i, opt := range q.Options {
			if opt == "" {
				return schemaErrf("options", "option %d is empty", i)
			}
		}
		if q.AnswerIndex == nil {
			return schemaErrf("answer_index", "is required")
		}
		if *q.AnswerIndex < 0 || *q.AnswerIndex >= len(q.Options) {
			return schemaErrf("answer_index", "%d outside option range [0,%d)", *q.AnswerIndex, len(q.Options))
		}
		return nil
	}
}

func validateLongAnswerQuestion(limits Limits) QuestionValidator {
	return func(q Question) error {
		if err := validateCommonQuestion(limits, q); err != nil {
			return err
		}
		if len(q.Options) != 0 || q.AnswerIndex != nil {
			return schemaErrf("type", "long_answer question must not carry options or answer_index")
		}
		return nil
	}
}

// --- answer validators ---

func validateMultipleChoiceAnswer(limits Limits) AnswerValidator {
	return func(a Answer) error {
		if a.Response != nil {
			return schemaErrf("response", "not allowed for multiple_choice answers")
		}
		if a.AnswerIndex == nil {
			return schemaErrf("answer_index", "is required")
		}
		if *a.AnswerIndex < 0 || *a.AnswerIndex >= limits.NumChoices {
			return schemaErrf("answer_index", "%d outside option range [0,%d)", *a.AnswerIndex, limits.NumChoices)
		}
		return nil
	}
}

func validateLongAnswerAnswer(limits Limits) AnswerValidator {
	return func(a Answer) error {
		if a.AnswerIndex != nil {
			return schemaErrf("answer_index", "not allowed for long_answer answers")
		}
		if a.Response == nil || *a.Response == "" {
			return schemaErrf("response", "is required")
		}
		if n := utf8.RuneCountInString(*a.Response); n > limits.MaxAnswerLength {
			return schemaErrf("response", "length %d exceeds maximum %d", n, limits.MaxAnswerLength)
		}
		return nil
	}
}
