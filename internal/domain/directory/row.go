package directory

import "github.com/lorehall/packdex/internal/domain/search/match"

// MatchGroup is an ordered set of matches sharing one document type tag,
// destined for the row section that renders that type.
type MatchGroup struct {
	entryType string
	matches   []match.Match
}

// NewMatchGroup creates a match group.
func NewMatchGroup(entryType string, matches []match.Match) MatchGroup {
	return MatchGroup{entryType: entryType, matches: matches}
}

// EntryType returns the document type tag shared by the group.
func (g MatchGroup) EntryType() string { return g.entryType }

// Matches returns the group's matches in score-then-insertion order.
func (g MatchGroup) Matches() []match.Match { return g.matches }

// RowState is the computed visibility and content of one pack row. It is
// rebuilt wholesale on every query change, never diffed.
type RowState struct {
	packID string
	title  string
	shown  bool
	groups []MatchGroup
}

// NewRowState creates a row state.
func NewRowState(packID, title string, shown bool, groups []MatchGroup) RowState {
	return RowState{packID: packID, title: title, shown: shown, groups: groups}
}

// PackID returns the identifier of the pack this row renders.
func (r RowState) PackID() string { return r.packID }

// Title returns the pack display title.
func (r RowState) Title() string { return r.title }

// Shown reports whether the row is visible.
func (r RowState) Shown() bool { return r.shown }

// Groups returns the type-grouped document matches for this row. Empty when
// the query was empty or nothing in the pack matched.
func (r RowState) Groups() []MatchGroup { return r.groups }

// HasMatches reports whether any group carries at least one match.
func (r RowState) HasMatches() bool {
	for i := range r.groups {
		if len(r.groups[i].matches) > 0 {
			return true
		}
	}
	return false
}
