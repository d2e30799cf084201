package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionsSimilar(t *testing.T) {
	tests := []struct {
		name    string
		q1, q2  string
		similar bool
	}{
		{
			name: "identical questions",
			q1:   "What was the county fair like?",
			q2:   "What was the county fair like?", similar: true,
		},
		{
			name: "prefix containment",
			q1:   "What was the county fair like?",
			q2:   "What was the county fair like back in 1947?", similar: true,
		},
		{
			name: "punctuation and case do not matter",
			q1:   "what was the COUNTY fair like",
			q2:   "What was the county fair like?", similar: true,
		},
		{
			name: "different questions",
			q1:   "What was the county fair like?",
			q2:   "How did your mother celebrate holidays?", similar: false,
		},
		{
			name: "short strings are never similar",
			q1:   "Why?",
			q2:   "Why?", similar: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.similar, QuestionsSimilar(tt.q1, tt.q2))
		})
	}
}

func TestParseAndValidateQuestions(t *testing.T) {
	t.Run("strips numbering and bullets", func(t *testing.T) {
		raw := "1. What did James say when you first met him?\n" +
			"2) How did the county fair smell that summer evening?\n" +
			"• What songs were playing at the dance afterwards?\n" +
			"Q4: Who introduced the two of you that night?"

		questions := parseAndValidateQuestions(raw, nil)
		assert.Equal(t, []string{
			"What did James say when you first met him?",
			"How did the county fair smell that summer evening?",
			"What songs were playing at the dance afterwards?",
			"Who introduced the two of you that night?",
		}, questions)
	})

	t.Run("rejects malformed candidates", func(t *testing.T) {
		raw := "Why?\n" + // too short
			"What did James say when you first met him\n" + // no question mark
			"Tell me more about it?\n" + // generic and under 30 chars
			"What happened at the fair after the dance ended that night?" // generic prefix but long enough

		questions := parseAndValidateQuestions(raw, nil)
		assert.Equal(t, []string{
			"What happened at the fair after the dance ended that night?",
		}, questions)
	})

	t.Run("rejects near-duplicates of previous questions", func(t *testing.T) {
		raw := "What did James say when you first met him?\n" +
			"How did your mother celebrate holidays?"

		questions := parseAndValidateQuestions(raw, []string{
			"What did James say when you first met him that evening?",
		})
		assert.Equal(t, []string{
			"How did your mother celebrate holidays?",
		}, questions)
	})

	t.Run("overlong candidates are rejected", func(t *testing.T) {
		raw := fmt.Sprintf("What did James say about %s that night?", strings.Repeat("the fair ", 20))
		questions := parseAndValidateQuestions(raw, nil)
		assert.Empty(t, questions)
	})
}

func TestFilteredFallbackQuestions(t *testing.T) {
	t.Run("all five survive with empty previous questions", func(t *testing.T) {
		questions := filteredFallbackQuestions(nil)
		assert.Len(t, questions, 5)
		for _, q := range questions {
			assert.GreaterOrEqual(t, len(q), 10)
			assert.LessOrEqual(t, len(q), 150)
			assert.Equal(t, byte('?'), q[len(q)-1])
		}
	})

	t.Run("collisions with previous questions are dropped", func(t *testing.T) {
		questions := filteredFallbackQuestions([]string{"How did that make you feel?"})
		assert.NotContains(t, questions, "How did that make you feel?")
		assert.Len(t, questions, 4)
	})
}
