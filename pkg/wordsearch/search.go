// Package wordsearch generates letter sequences whose name signature matches
// a partial target.
package wordsearch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/numen/pkg/numerology"
)

// ErrInvalidSearchParameters is returned for queries that cannot be run.
var ErrInvalidSearchParameters = numerology.ErrInvalidSearchParameters

// Target is a partial name signature. Attributes missing from the map match
// any value; a target with every attribute set is an exact match.
type Target map[numerology.Attribute]int

// Matches reports whether sig agrees with every attribute set in t.
func (t Target) Matches(sig numerology.NameSignature) bool {
	for attr, want := range t {
		got, ok := sig.Value(attr)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (t Target) String() string {
	parts := make([]string, 0, len(t))
	for attr, v := range t {
		parts = append(parts, fmt.Sprintf("%s=%d", attr, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Query describes one search.
type Query struct {
	// Limit is the maximum number of matching words returned.
	Limit      int
	Target     Target
	MinLetters int
	MaxLetters int
	// Budget caps the number of candidates examined, short ones included.
	// Zero means the whole candidate space is walked.
	Budget int
}

// Result is the outcome of a search. Words are in generation order.
type Result struct {
	Words    []string `json:"words"`
	Examined int      `json:"examined"`
	// Exhausted is set when every candidate up to MaxLetters was examined.
	Exhausted bool `json:"exhausted"`
}

// Validate checks q without running it.
func (q Query) Validate() error {
	switch {
	case len(q.Target) == 0:
		return fmt.Errorf("%w: target has no attributes", ErrInvalidSearchParameters)
	case q.Limit <= 0:
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidSearchParameters, q.Limit)
	case q.MinLetters < 1:
		return fmt.Errorf("%w: min letters must be at least 1, got %d", ErrInvalidSearchParameters, q.MinLetters)
	case q.MaxLetters < q.MinLetters:
		return fmt.Errorf("%w: max letters %d is below min letters %d", ErrInvalidSearchParameters, q.MaxLetters, q.MinLetters)
	case q.Budget < 0:
		return fmt.Errorf("%w: budget must not be negative, got %d", ErrInvalidSearchParameters, q.Budget)
	}
	for attr, v := range q.Target {
		if _, ok := (numerology.NameSignature{}).Value(attr); !ok {
			return fmt.Errorf("%w: unknown attribute %q", ErrInvalidSearchParameters, attr)
		}
		if !numerology.IsDigitValue(v) {
			return fmt.Errorf("%w: %s=%d is not a reduced value", ErrInvalidSearchParameters, attr, v)
		}
	}
	return nil
}

// Search walks Candidates(q.MaxLetters) and collects the words of at least
// q.MinLetters letters whose signature matches q.Target. It stops after
// q.Limit matches, after q.Budget candidates, or when the space is exhausted.
// Running out of budget is not an error.
func Search(q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Words: []string{}, Exhausted: true}
	for word := range Candidates(q.MaxLetters) {
		// Checked before counting, so a limit or budget reached on the
		// last candidate still leaves Exhausted set.
		if len(res.Words) == q.Limit || (q.Budget > 0 && res.Examined == q.Budget) {
			res.Exhausted = false
			break
		}
		res.Examined++

		if len(word) < q.MinLetters {
			continue
		}
		sig, err := numerology.CalculateName(string(word))
		if err != nil {
			return nil, err
		}
		if !q.Target.Matches(sig) {
			continue
		}
		res.Words = append(res.Words, string(word))
	}
	return res, nil
}
