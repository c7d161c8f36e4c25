package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/read-rally/readrally/internal/library"
	"github.com/read-rally/readrally/internal/recommend"
	"github.com/read-rally/readrally/internal/student"
)

type bookRequest struct {
	Title            string   `json:"title" validate:"required,max=300"`
	Authors          []string `json:"authors" validate:"required,min=1"`
	Genres           []string `json:"genres" validate:"required,min=1"`
	AmazonPopularity float64  `json:"amazon_popularity" validate:"gte=0,lte=5"`
	LexileMeasure    int      `json:"lexile_measure" validate:"gte=0"`
}

// CreateBookHandler handles POST /books (educator catalog management).
func CreateBookHandler(store library.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		b := library.Book{
			ID:               uuid.NewString(),
			Title:            req.Title,
			Authors:          req.Authors,
			Genres:           req.Genres,
			AmazonPopularity: req.AmazonPopularity,
			LexileMeasure:    req.LexileMeasure,
			CreatedAt:        time.Now().UTC(),
		}
		if err := store.PutBook(r.Context(), b); err != nil {
			logger.Error().Err(err).Str("book_id", b.ID).Msg("put book")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

// UpdateBookHandler handles PUT /books/{bookID}.
func UpdateBookHandler(store library.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bookID")
		existing, err := store.GetBook(r.Context(), id)
		if err != nil {
			if errors.Is(err, library.ErrBookNotFound) {
				writeError(w, http.StatusNotFound, "book not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		var req bookRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		b := library.Book{
			ID:               id,
			Title:            req.Title,
			Authors:          req.Authors,
			Genres:           req.Genres,
			AmazonPopularity: req.AmazonPopularity,
			LexileMeasure:    req.LexileMeasure,
			CoverKey:         existing.CoverKey,
			CreatedAt:        existing.CreatedAt,
		}
		if err := store.PutBook(r.Context(), b); err != nil {
			logger.Error().Err(err).Str("book_id", id).Msg("update book")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// ListBooksHandler handles GET /books (the plain catalog, no scoring).
func ListBooksHandler(store library.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := store.ListBooks(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		if books == nil {
			books = []library.Book{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"books": books})
	}
}

// ListStudentBooksHandler handles GET /students/{studentID}/books: the
// recommendation surface. The route gathers profile, review history, and the
// catalog, then hands everything to the engine.
func ListStudentBooksHandler(books library.Store, students student.Store, engine *recommend.Engine, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")

		st, err := students.GetByID(r.Context(), studentID)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		reviews, err := books.ListReviewsByStudent(r.Context(), studentID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		catalog, err := books.ListBooks(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}

		result, err := engine.FilterAndScore(recommend.StudentProfile{
			InitialLexileMeasure: st.InitialLexileMeasure,
			GenreInterests:       st.GenreInterests,
		}, toEngineBooks(catalog), toEngineReviews(reviews))
		if err != nil {
			if errors.Is(err, recommend.ErrNoGenreInterests) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			logger.Error().Err(err).Str("student_id", studentID).Msg("recommendation failed")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if result.Books == nil {
			result.Books = []recommend.Book{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func toEngineBooks(in []library.Book) []recommend.Book {
	out := make([]recommend.Book, 0, len(in))
	for _, b := range in {
		out = append(out, recommend.Book{
			ID:               b.ID,
			Title:            b.Title,
			Authors:          b.Authors,
			Genres:           b.Genres,
			AmazonPopularity: b.AmazonPopularity,
			LexileMeasure:    b.LexileMeasure,
		})
	}
	return out
}

func toEngineReviews(in []library.Review) []recommend.Review {
	out := make([]recommend.Review, 0, len(in))
	for _, r := range in {
		out = append(out, recommend.Review{
			BookID:            r.BookID,
			Comprehension:     r.Comprehension,
			BookLexileMeasure: r.BookLexileMeasure,
			DateCreated:       r.DateCreated,
		})
	}
	return out
}
