package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextQuestionDeclarationOrder(t *testing.T) {
	s := New(loadKB(t))

	q := s.NextQuestion()
	require.NotNil(t, q)
	assert.Equal(t, "material_a_type", q.ID)

	answer(t, s, q.ID, "wood")
	q = s.NextQuestion()
	require.NotNil(t, q)
	assert.Equal(t, "material_b_type", q.ID)
}

func TestNextQuestionSkipsGatedQuestions(t *testing.T) {
	s := New(loadKB(t))

	answer(t, s, "material_a_type", "wood")
	answer(t, s, "material_b_type", "wood")

	t.Run("uv question gated on moisture", func(t *testing.T) {
		q := s.NextQuestion()
		require.NotNil(t, q)
		assert.Equal(t, "environment_moisture", q.ID)

		answer(t, s, q.ID, "none")
		q = s.NextQuestion()
		require.NotNil(t, q)
		assert.NotEqual(t, "uv_exposure", q.ID,
			"an indoor joint is never asked about sunlight")
	})
}

func TestNextQuestionGateOpensOnAnswer(t *testing.T) {
	s := New(loadKB(t))

	answer(t, s, "material_a_type", "wood")
	answer(t, s, "material_b_type", "wood")
	answer(t, s, "environment_moisture", "outdoor")

	q := s.NextQuestion()
	require.NotNil(t, q)
	assert.Equal(t, "uv_exposure", q.ID, "moisture in the open unlocks the UV question")
}

func TestNextQuestionShockGatedOnHeavyDynamic(t *testing.T) {
	s := New(loadKB(t))
	answer(t, s, "load_type", "light_dynamic")

	for q := s.NextQuestion(); q != nil; q = s.NextQuestion() {
		assert.NotEqual(t, "shock_loads", q.ID,
			"shock question only applies to heavy dynamic loads")
		s.Skip(q.ID)
	}
}

func TestSkipAdvancesPastQuestion(t *testing.T) {
	s := New(loadKB(t))

	first := s.NextQuestion()
	require.NotNil(t, first)
	s.Skip(first.ID)

	next := s.NextQuestion()
	require.NotNil(t, next)
	assert.NotEqual(t, first.ID, next.ID)
	assert.False(t, s.Answered(first.ID), "skipping writes no answer")
}

func TestNextQuestionExhaustion(t *testing.T) {
	s := New(loadKB(t))

	for q := s.NextQuestion(); q != nil; q = s.NextQuestion() {
		s.Skip(q.ID)
	}
	assert.Nil(t, s.NextQuestion())

	// A fully skipped consultation still produces recommendations.
	assert.NotEmpty(t, s.Recommend())
}

func TestExplain(t *testing.T) {
	s := New(loadKB(t))

	t.Run("question with declared reasons", func(t *testing.T) {
		reasons := s.Explain("environment_moisture")
		require.NotEmpty(t, reasons)
		assert.Contains(t, reasons[0], "water resistance")
	})

	t.Run("question without reasons gets the default", func(t *testing.T) {
		reasons := s.Explain("temperature_extremes")
		require.Len(t, reasons, 1)
		assert.Contains(t, reasons[0], "helps specify")
	})

	t.Run("unknown question gets the default", func(t *testing.T) {
		reasons := s.Explain("no_such_question")
		require.Len(t, reasons, 1)
	})
}
