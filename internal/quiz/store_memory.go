package quiz

import (
	"context"
	"sort"
	"sync"
)

// memoryStore is a Store for tests and offline demos.
type memoryStore struct {
	mu          sync.RWMutex
	quizzes     map[string]Quiz
	submissions map[string][]Submission // studentID -> submissions
}

func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:     map[string]Quiz{},
		submissions: map[string][]Submission{},
	}
}

func (m *memoryStore) PutQuiz(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q
	return nil
}

func (m *memoryStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := m.GetQuizFull(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	q.Questions = append([]Question(nil), q.Questions...)
	stripAnswerKeys(&q)
	return q, nil
}

func (m *memoryStore) GetQuizFull(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Quiz
	for _, q := range m.quizzes {
		if opts.BookID != "" && q.BookID != opts.BookID {
			continue
		}
		q.Questions = append([]Question(nil), q.Questions...)
		stripAnswerKeys(&q)
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) CreateSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.StudentID] = append(m.submissions[s.StudentID], s)
	return nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, studentID, quizID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Submission
	for _, s := range m.submissions[studentID] {
		if s.QuizID == quizID {
			out = append(out, s)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memoryStore) ListStudentSubmissions(_ context.Context, studentID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Submission(nil), m.submissions[studentID]...)
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(subs []Submission) {
	sort.Slice(subs, func(i, j int) bool { return subs[i].DateCreated.After(subs[j].DateCreated) })
}
