package quiz

import (
	"fmt"
	"time"
)

// AttemptState describes where a student stands with one quiz.
type AttemptState string

const (
	StateNotAttempted  AttemptState = "not_attempted"
	StateFailed        AttemptState = "failed"         // latest attempt below passing grade, retry open
	StatePassed        AttemptState = "passed"         // terminal
	StateAwaitingRetry AttemptState = "awaiting_retry" // cooling down after a failed attempt
	StateExhausted     AttemptState = "exhausted"      // terminal, attempt budget spent
)

// AttemptPolicy holds the business thresholds the grader's score feeds into.
// These are configuration, not engine state.
type AttemptPolicy struct {
	PassingGrade float64
	MaxAttempts  int
	Cooldown     time.Duration
}

// AttemptStatus is the evaluated lifecycle position for one student/quiz pair.
type AttemptStatus struct {
	State    AttemptState
	Attempts int
	RetryAt  time.Time // set only for StateAwaitingRetry
}

// Allowed reports whether a new attempt may be created.
func (s AttemptStatus) Allowed() bool {
	return s.State == StateNotAttempted || s.State == StateFailed
}

// EvaluateAttempts folds a student's prior submissions for one quiz into an
// AttemptStatus. prior may be in any order; the newest submission decides.
//
// Precedence: a passing latest attempt is terminal, then the attempt budget,
// then the cooldown window.
func (p AttemptPolicy) EvaluateAttempts(prior []Submission, now time.Time) AttemptStatus {
	if len(prior) == 0 {
		return AttemptStatus{State: StateNotAttempted}
	}

	latest := prior[0]
	for _, s := range prior[1:] {
		if s.DateCreated.After(latest.DateCreated) {
			latest = s
		}
	}

	st := AttemptStatus{Attempts: len(prior)}
	switch {
	case latest.Score >= p.PassingGrade:
		st.State = StatePassed
	case len(prior) >= p.MaxAttempts:
		st.State = StateExhausted
	case now.Sub(latest.DateCreated) < p.Cooldown:
		st.State = StateAwaitingRetry
		st.RetryAt = latest.DateCreated.Add(p.Cooldown)
	default:
		st.State = StateFailed
	}
	return st
}

// AttemptBlockedError explains why a new attempt was refused.
type AttemptBlockedError struct {
	Status AttemptStatus
}

func (e *AttemptBlockedError) Error() string {
	switch e.Status.State {
	case StatePassed:
		return "quiz already passed"
	case StateExhausted:
		return fmt.Sprintf("attempt limit reached (%d attempts)", e.Status.Attempts)
	case StateAwaitingRetry:
		return fmt.Sprintf("retry available at %s", e.Status.RetryAt.UTC().Format(time.RFC3339))
	default:
		return "attempt not allowed"
	}
}

// CheckAttempt returns nil when a new attempt is allowed, or an
// *AttemptBlockedError carrying the evaluated status.
func (p AttemptPolicy) CheckAttempt(prior []Submission, now time.Time) error {
	st := p.EvaluateAttempts(prior, now)
	if st.Allowed() {
		return nil
	}
	return &AttemptBlockedError{Status: st}
}
