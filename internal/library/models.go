package library

import "time"

// Book is a catalog entry.
type Book struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Authors          []string  `json:"authors"`
	Genres           []string  `json:"genres"`
	AmazonPopularity float64   `json:"amazon_popularity"` // 0.0-5.0
	LexileMeasure    int       `json:"lexile_measure"`
	CoverKey         string    `json:"cover_key,omitempty"` // blob store key
	CreatedAt        time.Time `json:"created_at"`
}

// Review is a student's review of a book. Comprehension zero means the
// student skipped the 1-5 self-assessment; such reviews never move the
// lexile estimate.
type Review struct {
	ID                string    `json:"id"`
	StudentID         string    `json:"student_id"`
	BookID            string    `json:"book_id"`
	Comprehension     int       `json:"comprehension"` // 1-5, 0 = not set
	BookLexileMeasure int       `json:"book_lexile_measure"`
	Text              string    `json:"text,omitempty"`
	DateCreated       time.Time `json:"date_created"`
}

// ReadingEvent is one append-only reading-log row, used by educator progress
// views.
type ReadingEvent struct {
	Seq       int64     `json:"seq"`
	StudentID string    `json:"student_id"`
	Type      string    `json:"type"` // review_created, quiz_passed, ...
	Key       string    `json:"key"`  // usually a book or quiz id
	DataJSON  string    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
