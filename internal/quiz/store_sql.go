package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrQuizNotFound = errors.New("quiz not found")

// SQLStore implements Store over database/sql (sqlite or postgres).
// Questions and answers are stored as JSON columns.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	created := q.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	var bookID any
	if q.BookID != "" {
		bookID = q.BookID
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,book_id,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, book_id=EXCLUDED.book_id, questions_json=EXCLUDED.questions_json`,
		q.ID, q.Title, bookID, string(qj), created.Unix())
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := s.GetQuizFull(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	stripAnswerKeys(&q)
	return q, nil
}

func (s *SQLStore) GetQuizFull(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,COALESCE(book_id,''),questions_json,created_at FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var (
		rows *sql.Rows
		err  error
	)
	if opts.BookID != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,title,COALESCE(book_id,''),questions_json,created_at FROM quizzes
			 WHERE book_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			opts.BookID, limit, opts.Offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,title,COALESCE(book_id,''),questions_json,created_at FROM quizzes
			 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		stripAnswerKeys(&q)
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanQuiz(row rowScanner) (Quiz, error) {
	var (
		q       Quiz
		qjson   string
		created int64
	)
	if err := row.Scan(&q.ID, &q.Title, &q.BookID, &qjson, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	q.CreatedAt = time.Unix(created, 0).UTC()
	return q, nil
}

func (s *SQLStore) CreateSubmission(ctx context.Context, sub Submission) error {
	aj, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_submissions
		(id,quiz_id,student_id,book_id,answers_json,score,passed,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sub.ID, sub.QuizID, sub.StudentID, sub.BookID, string(aj),
		sub.Score, sub.Passed, sub.DateCreated.Unix())
	return err
}

func (s *SQLStore) ListSubmissions(ctx context.Context, studentID, quizID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,student_id,COALESCE(book_id,''),answers_json,score,passed,created_at
		FROM quiz_submissions WHERE student_id=$1 AND quiz_id=$2 ORDER BY created_at DESC`,
		studentID, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func (s *SQLStore) ListStudentSubmissions(ctx context.Context, studentID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,student_id,COALESCE(book_id,''),answers_json,score,passed,created_at
		FROM quiz_submissions WHERE student_id=$1 ORDER BY created_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func scanSubmissions(rows *sql.Rows) ([]Submission, error) {
	var out []Submission
	for rows.Next() {
		var (
			sub     Submission
			ajson   string
			created int64
		)
		if err := rows.Scan(&sub.ID, &sub.QuizID, &sub.StudentID, &sub.BookID,
			&ajson, &sub.Score, &sub.Passed, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &sub.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		sub.DateCreated = time.Unix(created, 0).UTC()
		out = append(out, sub)
	}
	return out, rows.Err()
}
