package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hazyhaar/numen/pkg/numerology"
)

// ParseDate reads a calendar date in any layout dateparse understands
// ("2023-12-10", "10 December 2023", "12/10/2023", ...). Times of day are
// dropped; ambiguous numeric dates are read month first.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalidf("date is empty")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, invalidf("invalid date %q: %v", s, err)
	}
	return numerology.CalendarDay(t), nil
}

// ParseOptionalDate is ParseDate returning nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseIntList reads a comma-separated list such as "1,11,22".
func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, invalidf("invalid number %q in list", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// SplitList reads a comma-separated list of strings, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
