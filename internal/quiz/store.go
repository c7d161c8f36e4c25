package quiz

import "context"

// ListOpts filters quiz listings.
type ListOpts struct {
	BookID string
	Limit  int
	Offset int
}

// Store persists quizzes and their submissions. Submissions are append-only:
// there is no update or delete operation by design.
type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz is the student-safe view: answer indexes are stripped.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	// GetQuizFull includes answer keys, for educators and for grading.
	GetQuizFull(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error)

	CreateSubmission(ctx context.Context, s Submission) error
	// ListSubmissions returns a student's submissions for one quiz, newest first.
	ListSubmissions(ctx context.Context, studentID, quizID string) ([]Submission, error)
	// ListStudentSubmissions returns all of a student's submissions, newest first.
	ListStudentSubmissions(ctx context.Context, studentID string) ([]Submission, error)
}

func stripAnswerKeys(q *Quiz) {
	for i := range q.Questions {
		q.Questions[i].AnswerIndex = nil
	}
}
