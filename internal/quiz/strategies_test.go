package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMultipleChoiceQuestion(t *testing.T) {
	g := newTestGrader(t)

	base := mcQuestion(4, 1)
	require.NoError(t, g.ValidateQuestion(base))

	cases := []struct {
		name   string
		mutate func(*Question)
		field  string
	}{
		{"empty prompt", func(q *Question) { q.Prompt = "" }, "prompt"},
		{"prompt too long", func(q *Question) { q.Prompt = strings.Repeat("a", 501) }, "prompt"},
		{"points below range", func(q *Question) { q.Points = 0 }, "points"},
		{"points above range", func(q *Question) { q.Points = 11 }, "points"},
		{"too few options", func(q *Question) { q.Options = q.Options[:3] }, "options"},
		{"too many options", func(q *Question) { q.Options = append(q.Options, "extra") }, "options"},
		{"empty option", func(q *Question) { q.Options = []string{"a", "", "c", "d"} }, "options"},
		{"missing answer index", func(q *Question) { q.AnswerIndex = nil }, "answer_index"},
		{"negative answer index", func(q *Question) { q.AnswerIndex = intPtr(-1) }, "answer_index"},
		{"answer index past options", func(q *Question) { q.AnswerIndex = intPtr(4) }, "answer_index"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := base
			q.Options = append([]string(nil), base.Options...)
			tc.mutate(&q)

			err := g.ValidateQuestion(q)
			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.field, se.Field)
		})
	}
}

func TestValidateLongAnswerQuestion(t *testing.T) {
	g := newTestGrader(t)

	require.NoError(t, g.ValidateQuestion(laQuestion(2)))

	q := laQuestion(2)
	q.Options = []string{"a", "b", "c", "d"}
	var se *SchemaError
	require.ErrorAs(t, g.ValidateQuestion(q), &se)

	q = laQuestion(2)
	q.AnswerIndex = intPtr(0)
	require.ErrorAs(t, g.ValidateQuestion(q), &se)
}

func TestValidateAnswerShapes(t *testing.T) {
	g := newTestGrader(t)

	t.Run("multiple choice", func(t *testing.T) {
		assert.NoError(t, g.ValidateAnswer(TypeMultipleChoice, Answer{AnswerIndex: intPtr(0)}))
		assert.NoError(t, g.ValidateAnswer(TypeMultipleChoice, Answer{AnswerIndex: intPtr(3)}))

		var se *SchemaError
		require.ErrorAs(t, g.ValidateAnswer(TypeMultipleChoice, Answer{}), &se)
		require.ErrorAs(t, g.ValidateAnswer(TypeMultipleChoice, Answer{AnswerIndex: intPtr(4)}), &se)
		require.ErrorAs(t, g.ValidateAnswer(TypeMultipleChoice, Answer{AnswerIndex: intPtr(-1)}), &se)
		require.ErrorAs(t, g.ValidateAnswer(TypeMultipleChoice, Answer{
			AnswerIndex: intPtr(1), Response: strPtr("both"),
		}), &se)
	})

	t.Run("long answer", func(t *testing.T) {
		assert.NoError(t, g.ValidateAnswer(TypeLongAnswer, Answer{Response: strPtr("some text")}))

		var se *SchemaError
		require.ErrorAs(t, g.ValidateAnswer(TypeLongAnswer, Answer{}), &se)
		require.ErrorAs(t, g.ValidateAnswer(TypeLongAnswer, Answer{Response: strPtr("")}), &se)
		require.ErrorAs(t, g.ValidateAnswer(TypeLongAnswer, Answer{AnswerIndex: intPtr(0)}), &se)

		long := strings.Repeat("x", 2001)
		require.ErrorAs(t, g.ValidateAnswer(TypeLongAnswer, Answer{Response: &long}), &se)
	})
}

func TestLongAnswerAlwaysEarnsCredit(t *testing.T) {
	s := longAnswerStrategy{}
	assert.True(t, s.Grade(laQuestion(2), Answer{Response: strPtr("anything at all")}))
}

func TestMultipleChoiceGradeIsIndexEquality(t *testing.T) {
	s := multipleChoiceStrategy{}
	q := mcQuestion(4, 2)

	assert.True(t, s.Grade(q, Answer{AnswerIndex: intPtr(2)}))
	assert.False(t, s.Grade(q, Answer{AnswerIndex: intPtr(1)}))
	assert.False(t, s.Grade(q, Answer{}))
}
