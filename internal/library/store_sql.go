package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

// Store persists the catalog, reviews, and the reading log.
type Store interface {
	PutBook(ctx context.Context, b Book) error
	GetBook(ctx context.Context, id string) (Book, error)
	ListBooks(ctx context.Context) ([]Book, error)

	CreateReview(ctx context.Context, r Review) error
	ListReviewsByStudent(ctx context.Context, studentID string) ([]Review, error)

	AppendReadingEvent(ctx context.Context, e ReadingEvent) error
	ListReadingEvents(ctx context.Context, studentID string, limit int) ([]ReadingEvent, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutBook(ctx context.Context, b Book) error {
	aj, err := json.Marshal(b.Authors)
	if err != nil {
		return fmt.Errorf("marshal authors: %w", err)
	}
	gj, err := json.Marshal(b.Genres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}
	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO books
		(id,title,authors_json,genres_json,amazon_popularity,lexile_measure,cover_key,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, authors_json=EXCLUDED.authors_json,
		genres_json=EXCLUDED.genres_json, amazon_popularity=EXCLUDED.amazon_popularity,
		lexile_measure=EXCLUDED.lexile_measure, cover_key=EXCLUDED.cover_key`,
		b.ID, b.Title, string(aj), string(gj), b.AmazonPopularity, b.LexileMeasure, b.CoverKey, created.Unix())
	return err
}

func (s *SQLStore) GetBook(ctx context.Context, id string) (Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,authors_json,genres_json,amazon_popularity,lexile_measure,cover_key,created_at
		FROM books WHERE id=$1`, id)
	return scanBook(row)
}

func (s *SQLStore) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,authors_json,genres_json,amazon_popularity,lexile_measure,cover_key,created_at
		FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBook(row rowScanner) (Book, error) {
	var (
		b       Book
		ajson   string
		gjson   string
		created int64
	)
	if err := row.Scan(&b.ID, &b.Title, &ajson, &gjson, &b.AmazonPopularity, &b.LexileMeasure, &b.CoverKey, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &b.Authors); err != nil {
		return Book{}, fmt.Errorf("unmarshal authors: %w", err)
	}
	if err := json.Unmarshal([]byte(gjson), &b.Genres); err != nil {
		return Book{}, fmt.Errorf("unmarshal genres: %w", err)
	}
	b.CreatedAt = time.Unix(created, 0).UTC()
	return b, nil
}

func (s *SQLStore) CreateReview(ctx context.Context, r Review) error {
	created := r.DateCreated
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO book_reviews
		(id,student_id,book_id,comprehension,book_lexile_measure,review_text,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.StudentID, r.BookID, r.Comprehension, r.BookLexileMeasure, r.Text, created.Unix())
	return err
}

func (s *SQLStore) ListReviewsByStudent(ctx context.Context, studentID string) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,student_id,book_id,comprehension,book_lexile_measure,review_text,created_at
		FROM book_reviews WHERE student_id=$1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var (
			r       Review
			created int64
		)
		if err := rows.Scan(&r.ID, &r.StudentID, &r.BookID, &r.Comprehension, &r.BookLexileMeasure, &r.Text, &created); err != nil {
			return nil, err
		}
		r.DateCreated = time.Unix(created, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) AppendReadingEvent(ctx context.Context, e ReadingEvent) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO reading_log (student_id,typ,key,data,created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		e.StudentID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

func (s *SQLStore) ListReadingEvents(ctx context.Context, studentID string, limit int) ([]ReadingEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `SELECT seq,student_id,typ,key,data,created_at
		FROM reading_log WHERE student_id=$1 ORDER BY seq DESC LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReadingEvent
	for rows.Next() {
		var (
			e       ReadingEvent
			created int64
		)
		if err := rows.Scan(&e.Seq, &e.StudentID, &e.Type, &e.Key, &e.DataJSON, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
