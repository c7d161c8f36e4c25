package http

import (
	"context"
	"sync"

	"github.com/read-rally/readrally/internal/library"
	"github.com/read-rally/readrally/internal/student"
)

// fakeStudents is an in-memory student.Store for handler tests.
type fakeStudents struct {
	mu       sync.Mutex
	students map[string]student.Student
}

func newFakeStudents(seed ...student.Student) *fakeStudents {
	f := &fakeStudents{students: map[string]student.Student{}}
	for _, s := range seed {
		f.students[s.ID] = s
	}
	return f
}

func (f *fakeStudents) Create(_ context.Context, s student.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.students[s.ID] = s
	return nil
}

func (f *fakeStudents) GetByID(_ context.Context, id string) (student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (f *fakeStudents) GetByUsername(_ context.Context, username string) (student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Username == username {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (f *fakeStudents) UpdateGenreInterests(_ context.Context, id string, interests map[string]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return student.ErrNotFound
	}
	s.GenreInterests = interests
	f.students[id] = s
	return nil
}

func (f *fakeStudents) AddPrizePoints(_ context.Context, id string, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return student.ErrNotFound
	}
	s.PrizePoints += points
	f.students[id] = s
	return nil
}

func (f *fakeStudents) prizePoints(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.students[id].PrizePoints
}

// fakeLibrary is an in-memory library.Store for handler tests.
type fakeLibrary struct {
	mu      sync.Mutex
	books   map[string]library.Book
	reviews []library.Review
	events  []library.ReadingEvent
}

func newFakeLibrary(seed ...library.Book) *fakeLibrary {
	f := &fakeLibrary{books: map[string]library.Book{}}
	for _, b := range seed {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeLibrary) PutBook(_ context.Context, b library.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.books[b.ID] = b
	return nil
}

func (f *fakeLibrary) GetBook(_ context.Context, id string) (library.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return library.Book{}, library.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeLibrary) ListBooks(_ context.Context) ([]library.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]library.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeLibrary) CreateReview(_ context.Context, r library.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeLibrary) ListReviewsByStudent(_ context.Context, studentID string) ([]library.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []library.Review
	for _, r := range f.reviews {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLibrary) AppendReadingEvent(_ context.Context, e library.ReadingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Seq = int64(len(f.events) + 1)
	f.events = append(f.events, e)
	return nil
}

func (f *fakeLibrary) ListReadingEvents(_ context.Context, studentID string, limit int) ([]library.ReadingEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []library.ReadingEvent
	for _, e := range f.events {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLibrary) eventTypes(studentID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		if e.StudentID == studentID {
			out = append(out, e.Type)
		}
	}
	return out
}
