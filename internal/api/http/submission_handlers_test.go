package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/read-rally/readrally/internal/quiz"
	"github.com/read-rally/readrally/internal/student"
)

func intPtr(i int) *int { return &i }

func seedQuiz(t *testing.T, store quiz.Store) quiz.Quiz {
	t.Helper()
	q := quiz.Quiz{
		ID:     "quiz-1",
		Title:  "Chapter quiz",
		BookID: "book-1",
		Questions: []quiz.Question{
			{
				Type:        quiz.TypeMultipleChoice,
				Points:      4,
				Prompt:      "Who found the map?",
				Options:     []string{"Ana", "Ben", "Cara", "Dev"},
				AnswerIndex: intPtr(2),
			},
			{
				Type:        quiz.TypeMultipleChoice,
				Points:      4,
				Prompt:      "Where was it hidden?",
				Options:     []string{"attic", "cave", "library", "shed"},
				AnswerIndex: intPtr(1),
			},
			{
				Type:   quiz.TypeLongAnswer,
				Points: 2,
				Prompt: "What would you have done?",
			},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.PutQuiz(context.Background(), q))
	return q
}

func submissionRouter(quizzes quiz.Store, students *fakeStudents, lib *fakeLibrary) chi.Router {
	deps := SubmissionDeps{
		Quizzes:  quizzes,
		Students: students,
		Library:  lib,
		Grader:   testGrader(),
		Policy:   quiz.AttemptPolicy{PassingGrade: 70, MaxAttempts: 3, Cooldown: 24 * time.Hour},
		Logger:   zerolog.Nop(),
	}
	r := chi.NewRouter()
	r.Post("/students/{studentID}/quiz_submissions", CreateSubmissionHandler(deps))
	r.Get("/students/{studentID}/quiz_submissions", ListSubmissionsHandler(quizzes))
	r.Get("/students/{studentID}/quizzes/{quizID}/attempt_status", AttemptStatusHandler(quizzes, deps.Policy))
	return r
}

func TestCreateSubmissionPassingFlow(t *testing.T) {
	quizzes := quiz.NewInMemoryStore()
	students := newFakeStudents(student.Student{ID: "stu-1", Role: student.RoleStudent})
	lib := newFakeLibrary()
	r := submissionRouter(quizzes, students, lib)
	seedQuiz(t, quizzes)

	body := map[string]any{
		"quiz_id": "quiz-1",
		"answers": []map[string]any{
			{"answer_index": 2},
			{"answer_index": 1},
			{"response": "I would have told the librarian."},
		},
	}
	rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sub quiz.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, 100.0, sub.Score)
	assert.True(t, sub.Passed)
	assert.Equal(t, "quiz-1", sub.QuizID)
	assert.Equal(t, "book-1", sub.BookID)

	// A perfect pass on a 10-point quiz awards 10 prize points and lands in
	// the reading log.
	assert.Equal(t, 10, students.prizePoints("stu-1"))
	assert.Equal(t, []string{"quiz_passed"}, lib.eventTypes("stu-1"))

	t.Run("passed quiz blocks retries", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", body)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), string(quiz.StatePassed))
	})
}

func TestCreateSubmissionFailingFlow(t *testing.T) {
	quizzes := quiz.NewInMemoryStore()
	students := newFakeStudents(student.Student{ID: "stu-1", Role: student.RoleStudent})
	lib := newFakeLibrary()
	r := submissionRouter(quizzes, students, lib)
	seedQuiz(t, quizzes)

	body := map[string]any{
		"quiz_id": "quiz-1",
		"answers": []map[string]any{
			{"answer_index": 0},
			{"answer_index": 0},
			{"response": "hmm"},
		},
	}
	rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sub quiz.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.InDelta(t, 20.0, sub.Score, 1e-9) // 2 of 10 points
	assert.False(t, sub.Passed)

	// No pass, no points, no log entry.
	assert.Zero(t, students.prizePoints("stu-1"))
	assert.Empty(t, lib.eventTypes("stu-1"))

	t.Run("cooldown blocks immediate retry", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", body)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), string(quiz.StateAwaitingRetry))
	})

	t.Run("attempt status reflects the failure", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/students/stu-1/quizzes/quiz-1/attempt_status", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			State    string `json:"state"`
			Attempts int    `json:"attempts"`
			Allowed  bool   `json:"allowed"`
			RetryAt  string `json:"retry_at"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, string(quiz.StateAwaitingRetry), got.State)
		assert.Equal(t, 1, got.Attempts)
		assert.False(t, got.Allowed)
		assert.NotEmpty(t, got.RetryAt)
	})
}

func TestCreateSubmissionValidation(t *testing.T) {
	quizzes := quiz.NewInMemoryStore()
	students := newFakeStudents(student.Student{ID: "stu-1"})
	r := submissionRouter(quizzes, students, newFakeLibrary())
	seedQuiz(t, quizzes)

	t.Run("unknown quiz", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", map[string]any{
			"quiz_id": "missing",
			"answers": []map[string]any{{"answer_index": 0}},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cardinality mismatch", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", map[string]any{
			"quiz_id": "quiz-1",
			"answers": []map[string]any{{"answer_index": 2}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "expected 3 answers")
	})

	t.Run("wrong answer shape", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/students/stu-1/quiz_submissions", map[string]any{
			"quiz_id": "quiz-1",
			"answers": []map[string]any{
				{"response": "Cara"}, // free text against multiple choice
				{"answer_index": 1},
				{"response": "ok"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		// Nothing was persisted: validation is all-or-nothing.
		subs, err := quizzes.ListSubmissions(context.Background(), "stu-1", "quiz-1")
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}

func TestListSubmissions(t *testing.T) {
	quizzes := quiz.NewInMemoryStore()
	students := newFakeStudents(student.Student{ID: "stu-1"})
	r := submissionRouter(quizzes, students, newFakeLibrary())

	now := time.Now().UTC()
	for i, s := range []quiz.Submission{
		{ID: "s1", QuizID: "quiz-1", StudentID: "stu-1", Score: 40, DateCreated: now.Add(-2 * time.Hour)},
		{ID: "s2", QuizID: "quiz-1", StudentID: "stu-1", Score: 80, DateCreated: now.Add(-1 * time.Hour)},
		{ID: "s3", QuizID: "quiz-2", StudentID: "stu-1", Score: 90, DateCreated: now},
	} {
		require.NoError(t, quizzes.CreateSubmission(context.Background(), s), i)
	}

	var got struct {
		Submissions []quiz.Submission `json:"submissions"`
	}

	rec := doJSON(t, r, http.MethodGet, "/students/stu-1/quiz_submissions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Submissions, 3)
	assert.Equal(t, "s3", got.Submissions[0].ID) // newest first

	rec = doJSON(t, r, http.MethodGet, "/students/stu-1/quiz_submissions?quiz_id=quiz-1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Submissions, 2)
	assert.Equal(t, "s2", got.Submissions[0].ID)
}
