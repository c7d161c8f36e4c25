package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/read-rally/readrally/internal/quiz"
)

type quizRequest struct {
	Title     string          `json:"title" validate:"required,max=200"`
	BookID    string          `json:"book_id"`
	Questions []quiz.Question `json:"questions" validate:"required,min=1"`
}

// validateQuizBody runs engine-level schema validation for every question
// and rejects quizzes the grader could never score.
func validateQuizBody(grader *quiz.Grader, req quizRequest) error {
	maxPoints := 0
	for i := range req.Questions {
		if err := grader.ValidateQuestion(req.Questions[i]); err != nil {
			return err
		}
		maxPoints += req.Questions[i].Points
	}
	if maxPoints == 0 {
		return quiz.ErrDegenerateQuiz
	}
	return nil
}

// CreateQuizHandler handles POST /quizzes.
func CreateQuizHandler(store quiz.Store, grader *quiz.Grader, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quizRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validateQuizBody(grader, req); err != nil {
			writeGradingError(w, err)
			return
		}
		q := quiz.Quiz{
			ID:        uuid.NewString(),
			Title:     req.Title,
			BookID:    req.BookID,
			Questions: req.Questions,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			logger.Error().Err(err).Str("quiz_id", q.ID).Msg("put quiz")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// UpdateQuizHandler handles PUT /quizzes/{quizID}.
func UpdateQuizHandler(store quiz.Store, grader *quiz.Grader, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		existing, err := store.GetQuizFull(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeError(w, http.StatusNotFound, "quiz not found")
				return
			}
			logger.Error().Err(err).Str("quiz_id", id).Msg("get quiz")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		var req quizRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validateQuizBody(grader, req); err != nil {
			writeGradingError(w, err)
			return
		}
		q := quiz.Quiz{
			ID:        id,
			Title:     req.Title,
			BookID:    req.BookID,
			Questions: req.Questions,
			CreatedAt: existing.CreatedAt,
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			logger.Error().Err(err).Str("quiz_id", id).Msg("update quiz")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GetQuizHandler serves the student-safe view (answer indexes stripped).
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeError(w, http.StatusNotFound, "quiz not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GetQuizFullHandler serves the educator view including answer keys.
func GetQuizFullHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuizFull(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				writeError(w, http.StatusNotFound, "quiz not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// ListQuizzesHandler handles GET /quizzes with optional ?book_id= filter.
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context(), quiz.ListOpts{
			BookID: r.URL.Query().Get("book_id"),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if quizzes == nil {
			quizzes = []quiz.Quiz{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
	}
}
