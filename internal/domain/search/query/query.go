package query

import (
	"fmt"
	"strings"
)

// MaxLength is the maximum allowed query length.
const MaxLength = 512

// Query is a validated directory search query. Folding and term splitting are
// the index's responsibility; the query carries raw text only.
type Query struct {
	text string
}

// New validates and creates a Query. Surrounding whitespace is trimmed; an
// all-whitespace query is equivalent to the empty query.
func New(text string) (Query, error) {
	if len(text) > MaxLength {
		return Query{}, fmt.Errorf("query too long (max %d chars)", MaxLength)
	}
	return Query{text: strings.TrimSpace(text)}, nil
}

// Text returns the raw query text.
func (q Query) Text() string { return q.text }

// IsEmpty reports whether the query carries no text. Empty queries skip the
// document pass entirely and show every permitted row.
func (q Query) IsEmpty() bool { return q.text == "" }
