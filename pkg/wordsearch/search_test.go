package wordsearch

import (
	"math"
	"testing"

	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_SingleLetterExpression(t *testing.T) {
	res, err := Search(Query{
		Limit:      1000,
		Target:     Target{numerology.Expression: 1},
		MinLetters: 1,
		MaxLetters: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "j", "s"}, res.Words)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 26, res.Examined)
}

func TestSearch_LimitCapsMatches(t *testing.T) {
	q := Query{
		Limit:      2,
		Target:     Target{numerology.Expression: 1},
		MinLetters: 1,
		MaxLetters: 3,
	}
	first, err := Search(q)
	require.NoError(t, err)
	require.Len(t, first.Words, 2)
	assert.False(t, first.Exhausted)

	again, err := Search(q)
	require.NoError(t, err)
	assert.Equal(t, first.Words, again.Words)

	q.Limit = 1000
	all, err := Search(q)
	require.NoError(t, err)
	require.Greater(t, len(all.Words), 2)
	assert.Equal(t, all.Words[:2], first.Words)
}

func TestSearch_MinLettersSkipsShortWords(t *testing.T) {
	res, err := Search(Query{
		Limit:      1000,
		Target:     Target{numerology.Expression: 5},
		MinLetters: 3,
		MaxLetters: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Words)
	for _, w := range res.Words {
		assert.Len(t, w, 3)
	}
}

func TestSearch_ExactTarget(t *testing.T) {
	ba, err := numerology.CalculateName("ba")
	require.NoError(t, err)
	exact := Target{
		numerology.Expression:  ba.Expression,
		numerology.SoulUrge:    ba.SoulUrge,
		numerology.Personality: ba.Personality,
	}

	res, err := Search(Query{Limit: 1000, Target: exact, MinLetters: 2, MaxLetters: 2})
	require.NoError(t, err)
	assert.Contains(t, res.Words, "ba")
	for _, w := range res.Words {
		sig, err := numerology.CalculateName(w)
		require.NoError(t, err)
		assert.Equal(t, ba.Expression, sig.Expression, w)
		assert.Equal(t, ba.SoulUrge, sig.SoulUrge, w)
		assert.Equal(t, ba.Personality, sig.Personality, w)
	}

	partial, err := Search(Query{
		Limit:      1000,
		Target:     Target{numerology.Expression: ba.Expression},
		MinLetters: 2,
		MaxLetters: 2,
	})
	require.NoError(t, err)
	assert.Subset(t, partial.Words, res.Words)
	assert.GreaterOrEqual(t, len(partial.Words), len(res.Words))
}

func TestSearch_UnsetAttributesAreIgnored(t *testing.T) {
	res, err := Search(Query{
		Limit:      1000,
		Target:     Target{numerology.SoulUrge: 1},
		MinLetters: 1,
		MaxLetters: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Words)

	expressions := map[int]bool{}
	for _, w := range res.Words {
		sig, err := numerology.CalculateName(w)
		require.NoError(t, err)
		assert.Equal(t, 1, sig.SoulUrge, w)
		expressions[sig.Expression] = true
	}
	assert.Greater(t, len(expressions), 1)
}

func TestSearch_HugeMaxLetters(t *testing.T) {
	res, err := Search(Query{
		Limit:      1,
		Target:     Target{numerology.Expression: 1},
		MinLetters: 1,
		MaxLetters: math.MaxInt,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Words)
	assert.False(t, res.Exhausted)
}

func TestSearch_LimitOnLastCandidate(t *testing.T) {
	// h, q and z are the only single letters worth 8; z is the last candidate
	res, err := Search(Query{
		Limit:      3,
		Target:     Target{numerology.Expression: 8},
		MinLetters: 1,
		MaxLetters: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "q", "z"}, res.Words)
	assert.Equal(t, 26, res.Examined)
	assert.True(t, res.Exhausted)
}

func TestSearch_Budget(t *testing.T) {
	res, err := Search(Query{
		Limit:      1000,
		Target:     Target{numerology.Expression: 1},
		MinLetters: 1,
		MaxLetters: 3,
		Budget:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Examined)
	assert.False(t, res.Exhausted)
	// a, ab, aba, abe, abi
	assert.Equal(t, []string{"a"}, res.Words)
}

func TestSearch_NoMatch(t *testing.T) {
	res, err := Search(Query{
		Limit:      10,
		Target:     Target{numerology.SoulUrge: 22},
		MinLetters: 1,
		MaxLetters: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Words)
	assert.Empty(t, res.Words)
	assert.True(t, res.Exhausted)
}

func TestSearch_InvalidParameters(t *testing.T) {
	valid := Query{Limit: 10, Target: Target{numerology.Expression: 1}, MinLetters: 1, MaxLetters: 2}

	tests := []struct {
		desc   string
		mutate func(q *Query)
	}{
		{"empty target", func(q *Query) { q.Target = Target{} }},
		{"nil target", func(q *Query) { q.Target = nil }},
		{"zero limit", func(q *Query) { q.Limit = 0 }},
		{"negative limit", func(q *Query) { q.Limit = -1 }},
		{"zero min letters", func(q *Query) { q.MinLetters = 0 }},
		{"max below min", func(q *Query) { q.MinLetters = 3; q.MaxLetters = 2 }},
		{"negative budget", func(q *Query) { q.Budget = -1 }},
		{"unknown attribute", func(q *Query) { q.Target = Target{"life_path": 3} }},
		{"unreduced value", func(q *Query) { q.Target = Target{numerology.Expression: 13} }},
	}
	for _, tt := range tests {
		q := valid
		q.Target = Target{numerology.Expression: 1}
		tt.mutate(&q)
		_, err := Search(q)
		assert.ErrorIs(t, err, ErrInvalidSearchParameters, tt.desc)
	}
}

func TestTarget_String(t *testing.T) {
	target := Target{numerology.Personality: 8, numerology.Expression: 3}
	assert.Equal(t, "expression=3,personality=8", target.String())
}
