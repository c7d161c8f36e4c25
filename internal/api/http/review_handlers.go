package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/read-rally/readrally/internal/library"
)

type reviewRequest struct {
	BookID        string `json:"book_id" validate:"required"`
	Comprehension int    `json:"comprehension" validate:"omitempty,gte=1,lte=5"`
	Text          string `json:"text" validate:"max=5000"`
}

// CreateReviewHandler handles POST /students/{studentID}/book_reviews.
// The book's lexile measure is copied onto the review at creation time so
// the progress calculator never needs a catalog join.
func CreateReviewHandler(store library.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")

		var req reviewRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := store.GetBook(r.Context(), req.BookID)
		if err != nil {
			if errors.Is(err, library.ErrBookNotFound) {
				writeError(w, http.StatusNotFound, "book not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		rev := library.Review{
			ID:                uuid.NewString(),
			StudentID:         studentID,
			BookID:            b.ID,
			Comprehension:     req.Comprehension,
			BookLexileMeasure: b.LexileMeasure,
			Text:              req.Text,
			DateCreated:       time.Now().UTC(),
		}
		if err := store.CreateReview(r.Context(), rev); err != nil {
			logger.Error().Err(err).Str("review_id", rev.ID).Msg("create review")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		if err := store.AppendReadingEvent(r.Context(), library.ReadingEvent{
			StudentID: studentID,
			Type:      "review_created",
			Key:       b.ID,
		}); err != nil {
			logger.Warn().Err(err).Msg("append reading event")
		}

		writeJSON(w, http.StatusCreated, rev)
	}
}

// ListReviewsHandler handles GET /students/{studentID}/book_reviews.
func ListReviewsHandler(store library.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := store.ListReviewsByStudent(r.Context(), chi.URLParam(r, "studentID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if reviews == nil {
			reviews = []library.Review{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
	}
}

// ListReadingLogHandler handles GET /students/{studentID}/reading_log for
// educator progress views.
func ListReadingLogHandler(store library.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.ListReadingEvents(r.Context(), chi.URLParam(r, "studentID"), 100)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if events == nil {
			events = []library.ReadingEvent{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
