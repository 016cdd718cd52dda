package wordsearch

import (
	"iter"

	"github.com/hazyhaar/numen/pkg/numerology"
)

const alphabetSize = len(numerology.Alphabet)

// next[v][i] is the smallest alphabet position greater than i whose letter is
// a vowel (v) or a consonant (!v), or -1. first[v] is next[v] from before 'a'.
var (
	next  [2][alphabetSize]int
	first [2]int
)

func init() {
	for v := 0; v < 2; v++ {
		want := v == 1
		upcoming := -1
		for i := alphabetSize - 1; i >= 0; i-- {
			next[v][i] = upcoming
			if numerology.IsVowel(i) == want {
				upcoming = i
			}
		}
		first[v] = upcoming
	}
}

func class(pos int) int {
	if numerology.IsVowel(pos) {
		return 1
	}
	return 0
}

// maxPreallocLetters caps the capacity reserved up front; longer words grow
// the buffers by appending.
const maxPreallocLetters = 32

// Candidates yields every alternating letter sequence of 1 to maxLetters
// letters in depth-first lexicographic order: a, ab, aba, abab, ... A letter
// following a vowel is always a consonant and vice versa. The first letter
// ranges over the whole alphabet.
//
// The yielded slice is reused between iterations.
func Candidates(maxLetters int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if maxLetters < 1 {
			return
		}
		path := make([]int, 1, min(maxLetters, maxPreallocLetters))
		word := make([]byte, 1, min(maxLetters, maxPreallocLetters))
		word[0] = numerology.Alphabet[0]

		for {
			if !yield(word) {
				return
			}

			// Descend.
			if len(path) < maxLetters {
				pos := first[1-class(path[len(path)-1])]
				path = append(path, pos)
				word = append(word, numerology.Alphabet[pos])
				continue
			}

			// Increment the last position, carrying into shorter prefixes.
			for {
				i := len(path) - 1
				if pos := successor(path, i); pos >= 0 {
					path[i] = pos
					word[i] = numerology.Alphabet[pos]
					break
				}
				path, word = path[:i], word[:i]
				if len(path) == 0 {
					return
				}
			}
		}
	}
}

// successor returns the next admissible alphabet position for path[i], or -1.
func successor(path []int, i int) int {
	if i == 0 {
		if path[0]+1 < alphabetSize {
			return path[0] + 1
		}
		return -1
	}
	return next[1-class(path[i-1])][path[i]]
}
