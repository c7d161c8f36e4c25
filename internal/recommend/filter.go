package recommend

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrNoGenreInterests means the student never set up their genre interest
// profile. That is a precondition failure surfaced to the caller, not an
// empty recommendation list.
var ErrNoGenreInterests = errors.New("student has no genre interests set")

// Engine is the per-process recommendation engine. It is stateless apart
// from configuration; concurrent calls are safe.
type Engine struct {
	cfg    LexileConfig
	logger zerolog.Logger
}

func NewEngine(cfg LexileConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// Result pairs the filtered candidate list with its parallel score map.
// Books keeps the filter pass order; sorting is a caller concern.
type Result struct {
	Books  []Book             `json:"books"`
	Scores map[string]float64 `json:"match_scores"` // book id -> score
}

// FilterAndScore produces the ranked candidate set for one student: derive
// the current lexile window from review history, keep catalog books inside
// it, and score each retained book against the student's interests and
// history.
func (e *Engine) FilterAndScore(student StudentProfile, books []Book, reviews []Review) (Result, error) {
	if len(student.GenreInterests) == 0 {
		return Result{}, ErrNoGenreInterests
	}

	measure := CurrentLexileMeasure(e.cfg, float64(student.InitialLexileMeasure), reviews)
	window := RangeFor(e.cfg, measure)

	history := buildHistory(books, reviews)

	out := Result{Scores: make(map[string]float64)}
	for _, b := range books {
		if !window.Contains(b.LexileMeasure) {
			continue
		}
		out.Books = append(out.Books, b)
		out.Scores[b.ID] = MatchScoreWithHistory(student.GenreInterests, b, history)
	}

	e.logger.Debug().
		Float64("lexile_measure", measure).
		Int("window_min", window.Min).
		Int("window_max", window.Max).
		Int("candidates", len(books)).
		Int("retained", len(out.Books)).
		Msg("filtered recommendations")

	return out, nil
}

// buildHistory indexes the student's reviewed books and the authors behind
// them, resolving author lists through the catalog slice already in hand.
func buildHistory(books []Book, reviews []Review) History {
	if len(reviews) == 0 {
		return History{}
	}
	authorsByBook := make(map[string][]string, len(books))
	for _, b := range books {
		authorsByBook[b.ID] = b.Authors
	}
	h := History{
		ReviewedBooks: make(map[string]bool, len(reviews)),
		ReadAuthors:   make(map[string]bool),
	}
	for _, r := range reviews {
		h.ReviewedBooks[r.BookID] = true
		for _, a := range authorsByBook[r.BookID] {
			h.ReadAuthors[a] = true
		}
	}
	return h
}
