package numerology

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumber           = errors.New("invalid number")
	ErrInvalidLetter           = errors.New("invalid letter")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrInvalidSearchParameters = errors.New("invalid search parameters")
)

// LetterError reports a character that is neither an ASCII letter nor a digit.
type LetterError struct {
	Letter rune
}

func (e *LetterError) Error() string {
	return fmt.Sprintf("%v: %q is neither a letter nor a digit", ErrInvalidLetter, e.Letter)
}

func (e *LetterError) Unwrap() error { return ErrInvalidLetter }

// IsInvalidInput reports whether err was caused by bad caller input: one of
// the sentinels above, or any error in the chain with an InvalidInput method
// returning true.
func IsInvalidInput(err error) bool {
	if err == nil {
		return false
	}
	for _, sentinel := range []error{ErrInvalidNumber, ErrInvalidLetter, ErrInvalidDateRange, ErrInvalidSearchParameters} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	var invalid interface{ InvalidInput() bool }
	return errors.As(err, &invalid) && invalid.InvalidInput()
}
