package numerology

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Decomposed input ("a" + U+0308) must be composed before folding.
var compose transform.Transformer = norm.NFC

var foldDigraphs = strings.NewReplacer(
	"ß", "ss", "ẞ", "ss",
	"ä", "ae", "Ä", "ae",
	"ü", "ue", "Ü", "ue",
	"ö", "oe", "Ö", "oe",
)

var nonAlnumRun = regexp.MustCompile(`[^0-9A-Za-z]+`)

// Normalize folds German umlauts and ß to their digraphs (Föö -> Foeoe) and
// collapses every run of characters other than ASCII letters and digits into
// a single space. Other accented letters are not transliterated.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	composed, _, err := transform.String(compose, s)
	if err != nil {
		composed = s
	}
	return nonAlnumRun.ReplaceAllString(foldDigraphs.Replace(composed), " ")
}
