package numerology

import (
	"fmt"
	"regexp"
	"strings"
)

// Attribute names one numeric field of a NameSignature.
type Attribute string

const (
	Expression  Attribute = "expression"
	SoulUrge    Attribute = "soul_urge"
	Personality Attribute = "personality"
)

// Attributes lists every NameSignature attribute in display order.
var Attributes = []Attribute{Expression, SoulUrge, Personality}

// ParseAttribute accepts the snake_case name and the camelCase spelling.
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "")) {
	case "expression":
		return Expression, nil
	case "soulurge":
		return SoulUrge, nil
	case "personality":
		return Personality, nil
	}
	return "", fmt.Errorf("unknown attribute %q", s)
}

// NameSignature holds the numerological values derived from a name.
type NameSignature struct {
	Name        string `json:"name"`
	Expression  int    `json:"expression"`
	SoulUrge    int    `json:"soul_urge"`
	Personality int    `json:"personality"`
}

// Value returns the value of attribute a.
func (s NameSignature) Value(a Attribute) (int, bool) {
	switch a {
	case Expression:
		return s.Expression, true
	case SoulUrge:
		return s.SoulUrge, true
	case Personality:
		return s.Personality, true
	}
	return 0, false
}

// Y counts as a vowel only after another vowel, as in Hayde, Doyle or Raymond.
var vowelPattern = regexp.MustCompile(`(?i)ay|ey|oy|uy|iy|[aeiou]`)

var notLetterOrSpace = regexp.MustCompile(`(?i)[^\sa-z]`)

// CalculateName computes the signature of name. The name is normalized
// first, so "Föö Bär" and "Foeoe Baer" share a signature.
func CalculateName(name string) (NameSignature, error) {
	cleaned := Normalize(name)

	expression, err := reduceWords(cleaned)
	if err != nil {
		return NameSignature{}, fmt.Errorf("expression of %q: %w", name, err)
	}
	soulUrge, err := reduceWords(FilterVowels(cleaned))
	if err != nil {
		return NameSignature{}, fmt.Errorf("soul urge of %q: %w", name, err)
	}
	personality, err := reduceWords(FilterConsonants(cleaned))
	if err != nil {
		return NameSignature{}, fmt.Errorf("personality of %q: %w", name, err)
	}

	return NameSignature{
		Name:        name,
		Expression:  expression,
		SoulUrge:    soulUrge,
		Personality: personality,
	}, nil
}

// FilterVowels keeps only the vowel sounds of each word, words separated by
// single spaces: "foo bar" -> "oo a", "hayde" -> "aye".
func FilterVowels(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.Join(vowelPattern.FindAllString(w, -1), "")
	}
	return strings.Join(words, " ")
}

// FilterConsonants drops the vowel sounds and every character that is not a
// letter or whitespace: "fooBar" -> "fBr", "C00L" -> "CL".
func FilterConsonants(s string) string {
	return notLetterOrSpace.ReplaceAllString(vowelPattern.ReplaceAllString(s, ""), "")
}

// reduceWords sums the unreduced letter values of every word and reduces
// the grand total.
func reduceWords(s string) (int, error) {
	total := 0
	for _, word := range strings.Fields(s) {
		for _, r := range word {
			v, err := LetterValue(r)
			if err != nil {
				return 0, err
			}
			total += v
		}
	}
	return Reduce(total)
}
