package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinTermLength is the shortest term that is indexed or matchable. Shorter
// terms are dropped entirely on both the indexing and the query side.
const MinTermLength = 2

// Folder lowercases text consistently with one display locale, so that index
// and container-pass comparisons agree with what the user sees. A Caser is
// stateful and must not be shared between goroutines, so the Folder holds the
// tag and every operation builds its own; a Folder is safe for concurrent use.
type Folder struct {
	tag language.Tag
}

// New creates a Folder for the given locale.
func New(tag language.Tag) Folder {
	return Folder{tag: tag}
}

// Fold lowercases s with locale-aware rules.
func (f Folder) Fold(s string) string {
	return cases.Lower(f.tag).String(s)
}

// Terms splits s on non-alphanumeric boundaries, folds each token and drops
// tokens shorter than MinTermLength.
func (f Folder) Terms(s string) []string {
	raw := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	caser := cases.Lower(f.tag)
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		if utf8.RuneCountInString(t) < MinTermLength {
			continue
		}
		terms = append(terms, caser.String(t))
	}
	return terms
}
