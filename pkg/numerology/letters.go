package numerology

import "fmt"

// Alphabet is the 26-letter Latin alphabet indexed by alphabet position.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Vowels and Consonants partition Alphabet, both in alphabet order.
const (
	Vowels     = "aeiouy"
	Consonants = "bcdfghjklmnpqrstvwxz"
)

var vowelTable = func() (t [26]bool) {
	for i := 0; i < len(Vowels); i++ {
		t[Vowels[i]-'a'] = true
	}
	return t
}()

// IsVowel reports whether the letter at alphabet position pos belongs to Vowels.
func IsVowel(pos int) bool {
	return pos >= 0 && pos < len(vowelTable) && vowelTable[pos]
}

// IsConsonant reports whether the letter at alphabet position pos belongs to Consonants.
func IsConsonant(pos int) bool {
	return pos >= 0 && pos < len(vowelTable) && !vowelTable[pos]
}

// Position returns the zero-based alphabet position of an ASCII letter.
func Position(r rune) (int, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	}
	return 0, false
}

// LetterValue returns the numerological value of a single character.
// Digits count as their literal value, letters as their 1-based alphabet
// position (a=1 ... z=26). Letter values are never reduced here.
func LetterValue(r rune) (int, error) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), nil
	}
	if pos, ok := Position(r); ok {
		return pos + 1, nil
	}
	return 0, &LetterError{Letter: r}
}

// TokenValue is LetterValue for a one-character string.
func TokenValue(token string) (int, error) {
	runes := []rune(token)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: %q is not a single character", ErrInvalidLetter, token)
	}
	return LetterValue(runes[0])
}
