package reconcile

import (
	"strings"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/directory"
	"github.com/lorehall/packdex/internal/domain/pack"
	"github.com/lorehall/packdex/internal/domain/search/fold"
	"github.com/lorehall/packdex/internal/domain/search/match"
	"github.com/lorehall/packdex/internal/domain/search/query"
)

// Service reconciles the container-level title filter with document-level
// search results into per-row visibility and contents. Stateless across
// invocations: every call recomputes from scratch.
type Service struct {
	searcher Searcher
	folder   fold.Folder
}

// New creates a reconciler.
func New(searcher Searcher, folder fold.Folder) *Service {
	return &Service{searcher: searcher, folder: folder}
}

// Reconcile computes the row states for one query against the supplied packs.
//
// Container pass: an empty query shows every permitted row; otherwise a row's
// title must contain the folded query as a substring. Intentionally looser
// than the document pass (containment, not prefix/AND). Packs the viewer may
// not see stay hidden regardless of query.
//
// Document pass: skipped for empty queries. Matches are computed by the index
// independently of the container pass, so a document hit surfaces its pack
// even when the title test failed. Matches whose pack is no longer in the
// supplied set are stale and silently dropped.
//
// Zero matches and zero visible rows are ordinary outcomes, never errors.
func (s *Service) Reconcile(q query.Query, packs []pack.Pack, viewer domain.Viewer) []directory.RowState {
	known := make(map[string]bool, len(packs))
	for _, p := range packs {
		known[p.ID()] = true
	}

	byPack := make(map[string][]match.Match)
	if !q.IsEmpty() {
		// The index owns folding; the query goes in raw.
		for _, m := range s.searcher.Query(q.Text()) {
			if !known[m.PackID()] {
				continue // stale index entry, treat as absent
			}
			byPack[m.PackID()] = append(byPack[m.PackID()], m)
		}
	}

	folded := s.folder.Fold(q.Text())
	rows := make([]directory.RowState, 0, len(packs))
	for _, p := range packs {
		if !viewer.CanSee(p.Private()) {
			rows = append(rows, directory.NewRowState(p.ID(), p.Title(), false, nil))
			continue
		}

		groups := groupByType(byPack[p.ID()])
		titleHit := q.IsEmpty() || strings.Contains(s.folder.Fold(p.Title()), folded)
		shown := titleHit || len(groups) > 0
		rows = append(rows, directory.NewRowState(p.ID(), p.Title(), shown, groups))
	}
	return rows
}

// groupByType partitions ranked matches by document type tag, keeping groups
// in order of first appearance and matches in their ranked order.
func groupByType(matches []match.Match) []directory.MatchGroup {
	if len(matches) == 0 {
		return nil
	}
	var types []string
	grouped := make(map[string][]match.Match)
	for _, m := range matches {
		t := m.EntryType()
		if _, ok := grouped[t]; !ok {
			types = append(types, t)
		}
		grouped[t] = append(grouped[t], m)
	}

	groups := make([]directory.MatchGroup, 0, len(types))
	for _, t := range types {
		groups = append(groups, directory.NewMatchGroup(t, grouped[t]))
	}
	return groups
}
