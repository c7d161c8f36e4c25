package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/read-rally/readrally/internal/student"
)

type createUserRequest struct {
	Username             string         `json:"username" validate:"required,min=3,max=60"`
	Password             string         `json:"password" validate:"required,min=8"`
	Role                 string         `json:"role" validate:"required,oneof=student educator admin"`
	DisplayName          string         `json:"display_name" validate:"max=120"`
	InitialLexileMeasure int            `json:"initial_lexile_measure" validate:"gte=0"`
	GenreInterests       map[string]int `json:"genre_interests" validate:"omitempty,dive,gte=1,lte=4"`
}

// CreateUserHandler handles POST /users (educator/admin onboarding).
func CreateUserHandler(store student.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "hash password")
			return
		}
		st := student.Student{
			ID:                   uuid.NewString(),
			Username:             req.Username,
			PasswordHash:         string(hash),
			Role:                 req.Role,
			DisplayName:          req.DisplayName,
			InitialLexileMeasure: req.InitialLexileMeasure,
			GenreInterests:       req.GenreInterests,
			CreatedAt:            time.Now().UTC(),
		}
		if st.GenreInterests == nil {
			st.GenreInterests = map[string]int{}
		}
		if err := store.Create(r.Context(), st); err != nil {
			logger.Error().Err(err).Str("username", req.Username).Msg("create user")
			writeError(w, http.StatusConflict, "could not create user")
			return
		}
		writeJSON(w, http.StatusCreated, st)
	}
}

// GetStudentHandler handles GET /students/{studentID}.
func GetStudentHandler(store student.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := store.GetByID(r.Context(), chi.URLParam(r, "studentID"))
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

type genreInterestsRequest struct {
	GenreInterests map[string]int `json:"genre_interests" validate:"required,min=1,dive,gte=1,lte=4"`
}

// UpdateGenreInterestsHandler handles PUT /students/{studentID}/genre_interests.
func UpdateGenreInterestsHandler(store student.Store, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "studentID")
		var req genreInterestsRequest
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := store.UpdateGenreInterests(r.Context(), id, req.GenreInterests); err != nil {
			if errors.Is(err, student.ErrNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			logger.Error().Err(err).Str("student_id", id).Msg("update genre interests")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"genre_interests": req.GenreInterests})
	}
}
