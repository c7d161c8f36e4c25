package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/read-rally/readrally/internal/quiz"
)

// validate checks request DTO struct tags before anything touches the engine.
var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeValid decodes a JSON body into dst and runs struct-tag validation.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("bad json")
	}
	return validate.Struct(dst)
}

// writeGradingError maps the engine's error taxonomy onto HTTP statuses.
// Schema and cardinality problems are client errors; an unknown question
// type is a server-side registry bug and must not look like user input.
func writeGradingError(w http.ResponseWriter, err error) {
	var (
		schemaErr *quiz.SchemaError
		cardErr   *quiz.CardinalityError
	)
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &cardErr),
		errors.Is(err, quiz.ErrDegenerateQuiz):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrUnknownQuestionType):
		writeError(w, http.StatusInternalServerError, "internal grading configuration error")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
