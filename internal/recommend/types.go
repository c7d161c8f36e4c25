// Package recommend ranks catalog books for a student. It combines a
// reading-level (lexile) window derived from recent review history with a
// match score built from genre interest and peer popularity.
//
// The package is a pure computation library: all inputs arrive as arguments,
// nothing is fetched or cached, and identical inputs always produce identical
// outputs. Routes do the I/O before and after calling in.
package recommend

import "time"

// Book is the catalog view the engine consumes.
type Book struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Genres           []string `json:"genres"`
	AmazonPopularity float64  `json:"amazon_popularity"` // 0.0-5.0
	LexileMeasure    int      `json:"lexile_measure"`
}

// Review is the slice of a book review the lexile calculator needs.
// Comprehension zero means the student left the score blank.
type Review struct {
	BookID            string    `json:"book_id"`
	Comprehension     int       `json:"comprehension"` // 1-5, 0 = not set
	BookLexileMeasure int       `json:"book_lexile_measure"`
	DateCreated       time.Time `json:"date_created"`
}

// GenreInterests maps genre id to a 1-4 interest level.
type GenreInterests map[string]int

// LexileRange is the window of book difficulty a student should be offered.
// Derived per request, never persisted.
type LexileRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether a book measure falls inside the window.
func (r LexileRange) Contains(measure int) bool {
	return measure >= r.Min && measure <= r.Max
}

// StudentProfile is the per-student input to filtering.
type StudentProfile struct {
	InitialLexileMeasure int
	GenreInterests       GenreInterests
}
