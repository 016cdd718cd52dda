package wordsearch

import (
	"testing"

	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(maxLetters int) []string {
	var words []string
	for w := range Candidates(maxLetters) {
		words = append(words, string(w))
	}
	return words
}

func TestCandidates_SingleLetters(t *testing.T) {
	words := collect(1)
	require.Len(t, words, 26)
	for i, w := range words {
		assert.Equal(t, string(numerology.Alphabet[i]), w)
	}
}

func TestCandidates_Order(t *testing.T) {
	words := collect(2)
	require.Len(t, words, 26+6*20+20*6)

	assert.Equal(t, []string{"a", "ab", "ac", "ad", "af"}, words[:5])
	// "a" is followed by its 20 consonant extensions, then "b" and its vowels.
	assert.Equal(t, []string{"b", "ba", "be", "bi", "bo", "bu", "by", "c"}, words[21:29])
	assert.Equal(t, "zy", words[len(words)-1])
}

func TestCandidates_StrictlyIncreasing(t *testing.T) {
	words := collect(4)
	for i := 1; i < len(words); i++ {
		require.Less(t, words[i-1], words[i], "order broken at %d", i)
	}
}

func TestCandidates_Alternate(t *testing.T) {
	for _, w := range collect(4) {
		require.LessOrEqual(t, len(w), 4)
		for i := 1; i < len(w); i++ {
			prev, _ := numerology.Position(rune(w[i-1]))
			cur, _ := numerology.Position(rune(w[i]))
			require.NotEqual(t, numerology.IsVowel(prev), numerology.IsVowel(cur), "%q does not alternate", w)
		}
	}
}

func TestCandidates_NoLetters(t *testing.T) {
	assert.Empty(t, collect(0))
}

func TestCandidates_StopEarly(t *testing.T) {
	n := 0
	for range Candidates(5) {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)
}
