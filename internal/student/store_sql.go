package student

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Store persists platform users.
type Store interface {
	Create(ctx context.Context, s Student) error
	GetByID(ctx context.Context, id string) (Student, error)
	GetByUsername(ctx context.Context, username string) (Student, error)
	UpdateGenreInterests(ctx context.Context, id string, interests map[string]int) error
	AddPrizePoints(ctx context.Context, id string, points int) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const studentColumns = `id,username,password_hash,role,display_name,initial_lexile_measure,genre_interests_json,prize_points,created_at`

func (s *SQLStore) Create(ctx context.Context, st Student) error {
	gj, err := json.Marshal(st.GenreInterests)
	if err != nil {
		return fmt.Errorf("marshal genre interests: %w", err)
	}
	created := st.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (`+studentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		st.ID, st.Username, st.PasswordHash, st.Role, st.DisplayName,
		st.InitialLexileMeasure, string(gj), st.PrizePoints, created.Unix())
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM users WHERE id=$1`, id)
	return scanStudent(row)
}

func (s *SQLStore) GetByUsername(ctx context.Context, username string) (Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM users WHERE username=$1`, username)
	return scanStudent(row)
}

func scanStudent(row *sql.Row) (Student, error) {
	var (
		st      Student
		gjson   string
		created int64
	)
	if err := row.Scan(&st.ID, &st.Username, &st.PasswordHash, &st.Role, &st.DisplayName,
		&st.InitialLexileMeasure, &gjson, &st.PrizePoints, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, ErrNotFound
		}
		return Student{}, err
	}
	if err := json.Unmarshal([]byte(gjson), &st.GenreInterests); err != nil {
		return Student{}, fmt.Errorf("unmarshal genre interests: %w", err)
	}
	st.CreatedAt = time.Unix(created, 0).UTC()
	return st, nil
}

func (s *SQLStore) UpdateGenreInterests(ctx context.Context, id string, interests map[string]int) error {
	gj, err := json.Marshal(interests)
	if err != nil {
		return fmt.Errorf("marshal genre interests: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET genre_interests_json=$1 WHERE id=$2`, string(gj), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLStore) AddPrizePoints(ctx context.Context, id string, points int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET prize_points = prize_points + $1 WHERE id=$2`, points, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
