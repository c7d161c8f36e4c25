package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/read-rally/readrally/internal/library"
	"github.com/read-rally/readrally/internal/quiz"
	"github.com/read-rally/readrally/internal/rewards"
	"github.com/read-rally/readrally/internal/student"
)

type submissionRequest struct {
	QuizID  string        `json:"quiz_id" validate:"required"`
	Answers []quiz.Answer `json:"answers" validate:"required"`
}

// SubmissionDeps bundles the collaborators the submission route needs.
type SubmissionDeps struct {
	Quizzes  quiz.Store
	Students student.Store
	Library  library.Store
	Grader   *quiz.Grader
	Policy   quiz.AttemptPolicy
	Logger   zerolog.Logger
}

// CreateSubmissionHandler handles POST /students/{studentID}/quiz_submissions.
//
// The route fetches everything up front, then calls the engine: lifecycle
// check against prior attempts, per-position answer validation, grading, and
// finally persistence plus prize-point award. The engine itself does no I/O.
func CreateSubmissionHandler(deps SubmissionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")

		var req submissionRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		q, err := deps.Quizzes.GetQuizFull(r.Context(), req.QuizID)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeError(w, http.StatusNotFound, "quiz not found")
				return
			}
			deps.Logger.Error().Err(err).Str("quiz_id", req.QuizID).Msg("get quiz")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		prior, err := deps.Quizzes.ListSubmissions(r.Context(), studentID, req.QuizID)
		if err != nil {
			deps.Logger.Error().Err(err).Msg("list prior submissions")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if err := deps.Policy.CheckAttempt(prior, time.Now()); err != nil {
			var blocked *quiz.AttemptBlockedError
			if errors.As(err, &blocked) {
				writeJSON(w, http.StatusConflict, map[string]any{
					"error": blocked.Error(),
					"state": blocked.Status.State,
				})
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := deps.Grader.ValidateSubmission(q.Questions, req.Answers); err != nil {
			writeGradingError(w, err)
			return
		}
		score, err := deps.Grader.GradeQuiz(q.Questions, req.Answers)
		if err != nil {
			// Unknown type here means a quiz was persisted without a
			// registered strategy; log loudly, it is not the student's fault.
			deps.Logger.Error().Err(err).Str("quiz_id", q.ID).Msg("grading failed")
			writeGradingError(w, err)
			return
		}

		sub := quiz.Submission{
			ID:          uuid.NewString(),
			QuizID:      q.ID,
			StudentID:   studentID,
			BookID:      q.BookID,
			Answers:     req.Answers,
			Score:       score,
			Passed:      score >= deps.Policy.PassingGrade,
			DateCreated: time.Now().UTC(),
		}
		if err := deps.Quizzes.CreateSubmission(r.Context(), sub); err != nil {
			deps.Logger.Error().Err(err).Str("submission_id", sub.ID).Msg("create submission")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		if points := rewards.PointsForSubmission(sub.Score, sub.Passed, q.MaxPoints()); points > 0 {
			if err := deps.Students.AddPrizePoints(r.Context(), studentID, points); err != nil {
				// Submission is already recorded; points can be reconciled later.
				deps.Logger.Error().Err(err).Str("student_id", studentID).
					Int("points", points).Msg("award prize points")
			}
			if deps.Library != nil {
				data, _ := json.Marshal(map[string]any{"score": sub.Score, "points": points})
				if err := deps.Library.AppendReadingEvent(r.Context(), library.ReadingEvent{
					StudentID: studentID,
					Type:      "quiz_passed",
					Key:       q.ID,
					DataJSON:  string(data),
				}); err != nil {
					deps.Logger.Warn().Err(err).Msg("append reading event")
				}
			}
		}

		deps.Logger.Info().
			Str("student_id", studentID).
			Str("quiz_id", q.ID).
			Float64("score", sub.Score).
			Bool("passed", sub.Passed).
			Msg("quiz graded")

		writeJSON(w, http.StatusCreated, sub)
	}
}

// ListSubmissionsHandler handles GET /students/{studentID}/quiz_submissions,
// optionally filtered by ?quiz_id=.
func ListSubmissionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		var (
			subs []quiz.Submission
			err  error
		)
		if quizID := r.URL.Query().Get("quiz_id"); quizID != "" {
			subs, err = store.ListSubmissions(r.Context(), studentID, quizID)
		} else {
			subs, err = store.ListStudentSubmissions(r.Context(), studentID)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if subs == nil {
			subs = []quiz.Submission{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
	}
}

// AttemptStatusHandler handles GET /students/{studentID}/quizzes/{quizID}/attempt_status.
func AttemptStatusHandler(store quiz.Store, policy quiz.AttemptPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		quizID := chi.URLParam(r, "quizID")
		prior, err := store.ListSubmissions(r.Context(), studentID, quizID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		st := policy.EvaluateAttempts(prior, time.Now())
		resp := map[string]any{
			"state":    st.State,
			"attempts": st.Attempts,
			"allowed":  st.Allowed(),
		}
		if !st.RetryAt.IsZero() {
			resp["retry_at"] = st.RetryAt.UTC().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
