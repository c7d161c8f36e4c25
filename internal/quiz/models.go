package quiz

import "time"

// QuestionType tags the question/answer union.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeLongAnswer     QuestionType = "long_answer"
)

// Question is a tagged union over the supported question kinds. Common fields
// are always set; Options and AnswerIndex are present only for multiple_choice.
type Question struct {
	Type   QuestionType `json:"type"`
	Points int          `json:"points"`
	Prompt string       `json:"prompt"`

	// Multiple choice only.
	Options     []string `json:"options,omitempty"`
	AnswerIndex *int     `json:"answer_index,omitempty"` // 0-based index into Options
}

// Answer is the matching union. Exactly one branch is set:
// AnswerIndex for multiple_choice, Response for long_answer.
// The per-type answer validators enforce the shape.
type Answer struct {
	AnswerIndex *int    `json:"answer_index,omitempty"`
	Response    *string `json:"response,omitempty"`
}

// Quiz is an ordered sequence of questions. Order is significant: it defines
// the positional pairing with a submission's answers. BookID empty means a
// generic quiz not tied to a book.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	BookID    string     `json:"book_id,omitempty"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Submission is one graded attempt. Created once per grading invocation and
// never mutated afterwards.
type Submission struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	StudentID   string    `json:"student_id"`
	BookID      string    `json:"book_id,omitempty"`
	Answers     []Answer  `json:"answers"`
	Score       float64   `json:"score"` // 0-100, not rounded
	Passed      bool      `json:"passed"`
	DateCreated time.Time `json:"date_created"`
}

// MaxPoints sums the quiz's question points.
func (q Quiz) MaxPoints() int {
	total := 0
	for _, qu := range q.Questions {
		total += qu.Points
	}
	return total
}
