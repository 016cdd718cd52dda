// Package numerology computes numerological signatures of names and dates.
//
// All functions are pure and safe for concurrent use. Values are reduced by
// repeated digit summing until a single digit remains, except that the master
// numbers 11 and 22 are kept wherever they appear along the way.
package numerology

import (
	"fmt"
	"math"
)

// MasterNumbers are exempt from reduction.
var MasterNumbers = [...]int{11, 22}

// IsMasterNumber reports whether n is one of the MasterNumbers.
func IsMasterNumber(n int) bool {
	for _, m := range MasterNumbers {
		if n == m {
			return true
		}
	}
	return false
}

// IsDigitValue reports whether n is a fully reduced value: 0-9 or a master number.
// Zero only occurs for empty input (e.g. a name without vowels).
func IsDigitValue(n int) bool {
	return (n >= 0 && n <= 9) || IsMasterNumber(n)
}

// Reduce sums the decimal digits of n until the result has a single digit or
// is a master number. A master number reached at any step is returned as is,
// so Reduce(994) == 22.
func Reduce(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNumber, n)
	}
	for !IsMasterNumber(n) && n > 9 {
		n = digitSum(n)
	}
	return n, nil
}

// ReduceIgnoringMasters is like Reduce but also reduces master numbers.
func ReduceIgnoringMasters(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNumber, n)
	}
	for n > 9 {
		n = digitSum(n)
	}
	return n, nil
}

// ReduceFloat reduces a number received in floating point form (JSON, query
// strings). It fails for NaN, infinities and values with a fractional part.
func ReduceFloat(x float64) (int, error) {
	n, err := Integer(x)
	if err != nil {
		return 0, err
	}
	return Reduce(n)
}

// Maturity is the reduced sum of a name's expression and a date's life path.
func Maturity(expression, lifePath int) (int, error) {
	return Reduce(expression + lifePath)
}

func digitSum(n int) int {
	sum := 0
	for ; n > 0; n /= 10 {
		sum += n % 10
	}
	return sum
}

// Integer converts x to an int, failing with ErrInvalidNumber for NaN,
// infinities, fractions and values outside the int range.
func Integer(x float64) (int, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, x)
	}
	if x != math.Trunc(x) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidNumber, x)
	}
	if x >= math.MaxInt64 || x < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidNumber, x)
	}
	return int(x), nil
}
