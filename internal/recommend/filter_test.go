package recommend

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return NewEngine(LexileConfig{MinReviews: 3, WindowLow: 100, WindowHigh: 50}, zerolog.Nop())
}

func TestFilterAndScoreRequiresInterests(t *testing.T) {
	e := testEngine()

	_, err := e.FilterAndScore(StudentProfile{InitialLexileMeasure: 500}, []Book{{ID: "b1"}}, nil)
	assert.ErrorIs(t, err, ErrNoGenreInterests)
}

func TestFilterAndScoreWindowFiltering(t *testing.T) {
	e := testEngine()
	student := StudentProfile{
		InitialLexileMeasure: 500,
		GenreInterests:       GenreInterests{"g1": 4},
	}

	// No qualifying reviews: measure stays 500, window [400, 550].
	books := []Book{
		{ID: "too-easy", LexileMeasure: 399, Genres: []string{"g1"}, AmazonPopularity: 5},
		{ID: "low-edge", LexileMeasure: 400, Genres: []string{"g1"}, AmazonPopularity: 5},
		{ID: "middle", LexileMeasure: 500, Genres: []string{"g1"}, AmazonPopularity: 3},
		{ID: "high-edge", LexileMeasure: 550, Genres: []string{"g1"}, AmazonPopularity: 4},
		{ID: "too-hard", LexileMeasure: 551, Genres: []string{"g1"}, AmazonPopularity: 5},
	}

	res, err := e.FilterAndScore(student, books, nil)
	require.NoError(t, err)

	var ids []string
	for _, b := range res.Books {
		ids = append(ids, b.ID)
	}
	// Inclusive bounds, input order preserved.
	assert.Equal(t, []string{"low-edge", "middle", "high-edge"}, ids)

	// Every retained book has a score; filtered books have none.
	assert.Len(t, res.Scores, 3)
	for _, b := range res.Books {
		assert.Contains(t, res.Scores, b.ID)
	}
	assert.NotContains(t, res.Scores, "too-easy")
	assert.NotContains(t, res.Scores, "too-hard")
}

func TestFilterAndScoreWindowTracksReviews(t *testing.T) {
	e := testEngine()
	student := StudentProfile{
		InitialLexileMeasure: 500,
		GenreInterests:       GenreInterests{"g1": 3},
	}

	// Three qualifying reviews move the measure to 618.33, window [518, 668].
	reviews := []Review{
		reviewAt(600, 4, 1),
		reviewAt(640, 5, 2),
		reviewAt(615, 3, 3),
	}
	books := []Book{
		{ID: "old-level", LexileMeasure: 500, Genres: []string{"g1"}, AmazonPopularity: 4},
		{ID: "new-level", LexileMeasure: 620, Genres: []string{"g1"}, AmazonPopularity: 4},
	}

	res, err := e.FilterAndScore(student, books, reviews)
	require.NoError(t, err)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "new-level", res.Books[0].ID)
}

func TestFilterAndScoreHistoryShapesScores(t *testing.T) {
	e := testEngine()
	student := StudentProfile{
		InitialLexileMeasure: 500,
		GenreInterests:       GenreInterests{"g1": 4},
	}

	books := []Book{
		{ID: "reviewed", Authors: []string{"a1"}, LexileMeasure: 500, Genres: []string{"g1"}, AmazonPopularity: 5},
		{ID: "same-author", Authors: []string{"a1"}, LexileMeasure: 500, Genres: []string{"g1"}, AmazonPopularity: 5},
		{ID: "fresh-author", Authors: []string{"a2"}, LexileMeasure: 500, Genres: []string{"g1"}, AmazonPopularity: 5},
	}
	// One review is not enough to move the measure, but it still feeds
	// history: the reviewed book is damped, the unseen author gets a bonus.
	reviews := []Review{{BookID: "reviewed", Comprehension: 4, BookLexileMeasure: 500}}

	res, err := e.FilterAndScore(student, books, reviews)
	require.NoError(t, err)
	require.Len(t, res.Books, 3)

	assert.InDelta(t, 0.5, res.Scores["reviewed"], 1e-9)
	assert.InDelta(t, 1.0, res.Scores["same-author"], 1e-9)
	assert.InDelta(t, 1.05, res.Scores["fresh-author"], 1e-9)
}

func TestFilterAndScoreEmptyCatalog(t *testing.T) {
	e := testEngine()
	student := StudentProfile{GenreInterests: GenreInterests{"g1": 2}}

	res, err := e.FilterAndScore(student, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Books)
	assert.Empty(t, res.Scores)
}
