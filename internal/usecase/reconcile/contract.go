package reconcile

import "github.com/lorehall/packdex/internal/domain/search/match"

// Searcher answers prefix/AND queries over the built index.
type Searcher interface {
	Query(text string) []match.Match
}
