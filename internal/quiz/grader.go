package quiz

// Grader validates and scores submissions using a registry populated at
// startup. It holds no per-request state; concurrent use is safe.
type Grader struct {
	registry *Registry
}

func NewGrader(registry *Registry) *Grader {
	return &Grader{registry: registry}
}

// ValidateQuestion checks one question's shape against its type's schema.
func (g *Grader) ValidateQuestion(q Question) error {
	e, err := g.registry.lookup(q.Type)
	if err != nil {
		return err
	}
	return e.validateQuestion(q)
}

// ValidateAnswer checks one answer's shape for the given question type. An
// answer shaped for a different type is rejected, not coerced.
func (g *Grader) ValidateAnswer(t QuestionType, a Answer) error {
	e, err := g.registry.lookup(t)
	if err != nil {
		return err
	}
	return e.validateAnswer(a)
}

// GradeQuiz scores answers against questions positionally and returns the
// percentage of points earned, unrounded.
//
// Pairing is strictly by index; a length mismatch is a *CardinalityError and
// nothing is graded. A quiz worth zero points cannot be scored
// (ErrDegenerateQuiz). Grading is all-or-nothing: any error yields no score.
func (g *Grader) GradeQuiz(questions []Question, answers []Answer) (float64, error) {
	if len(questions) != len(answers) {
		return 0, &CardinalityError{Expected: len(questions), Actual: len(answers)}
	}

	maxPoints := 0
	for _, q := range questions {
		maxPoints += q.Points
	}
	if maxPoints == 0 {
		return 0, ErrDegenerateQuiz
	}

	earned := 0
	for i, q := range questions {
		e, err := g.registry.lookup(q.Type)
		if err != nil {
			return 0, err
		}
		if e.strategy.Grade(q, answers[i]) {
			earned += q.Points
		}
	}

	return float64(earned) / float64(maxPoints) * 100.0, nil
}

// ValidateSubmission runs per-position answer schema validation for a whole
// submission, pairing answers with questions by index.
func (g *Grader) ValidateSubmission(questions []Question, answers []Answer) error {
	if len(questions) != len(answers) {
		return &CardinalityError{Expected: len(questions), Actual: len(answers)}
	}
	for i, q := range questions {
		if err := g.ValidateAnswer(q.Type, answers[i]); err != nil {
			return err
		}
	}
	return nil
}
