package memindex

import (
	"sort"
	"strings"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/search/fold"
	"github.com/lorehall/packdex/internal/domain/search/match"
	"github.com/lorehall/packdex/internal/domain/search/record"
)

// exactBoost is the per-term score of an exact token hit. A prefix hit scores
// len(term)/len(token), which is always below 1, so exact always outranks it.
const exactBoost = 2.0

// posting records one token occurrence inside one record's name.
type posting struct {
	ord int // record insertion ordinal, also the tie-break key
	pos int // token position within the name, earlier is better
}

// Index is the in-memory inverted prefix index over record display names.
// Built once per directory lifetime via Build, read-only afterwards; queries
// are synchronous and never touch pack storage.
type Index struct {
	folder   fold.Folder
	byID     map[string]int // record ID -> insertion ordinal
	order    []record.Record
	tokens   []string // sorted, unique
	postings map[string][]posting
}

// New creates an empty index folding with the given locale folder.
func New(folder fold.Folder) *Index {
	return &Index{
		folder:   folder,
		byID:     make(map[string]int),
		postings: make(map[string][]posting),
	}
}

// Build bulk-inserts records. A record whose identifier is already present is
// a caller error: identifiers are pack-unique upstream, so a collision means
// a broken extraction, and the index must not silently overwrite. The whole
// batch is validated before anything is admitted, so a failed Build leaves
// the index exactly as it was.
func (ix *Index) Build(records []record.Record) error {
	batch := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := ix.byID[r.ID()]; ok {
			return domain.NewDuplicateRecord(r.ID())
		}
		if _, ok := batch[r.ID()]; ok {
			return domain.NewDuplicateRecord(r.ID())
		}
		batch[r.ID()] = struct{}{}
	}

	for _, r := range records {
		ord := len(ix.order)
		ix.byID[r.ID()] = ord
		ix.order = append(ix.order, r)

		for pos, tok := range ix.folder.Terms(r.Name()) {
			if _, seen := ix.postings[tok]; !seen {
				ix.tokens = append(ix.tokens, tok)
			}
			ix.postings[tok] = append(ix.postings[tok], posting{ord: ord, pos: pos})
		}
	}
	sort.Strings(ix.tokens)
	return nil
}

// Len returns the number of indexed records.
func (ix *Index) Len() int { return len(ix.order) }

// Get retrieves a record by identifier.
func (ix *Index) Get(id string) (record.Record, bool) {
	ord, ok := ix.byID[id]
	if !ok {
		return record.Record{}, false
	}
	return ix.order[ord], true
}

// Query answers a prefix/AND search over record names. Every folded query
// term must prefix-match some token of a record's name for the record to
// match. The empty query (and a query whose terms are all too short) returns
// nothing; showing everything is the caller's decision, not the index's.
// Ordering is deterministic: score descending, ties by insertion order.
func (ix *Index) Query(text string) []match.Match {
	terms := ix.folder.Terms(text)
	if len(terms) == 0 {
		return nil
	}

	// Per record: best contribution per query term.
	scores := make(map[int][]float64)
	for ti, term := range terms {
		for _, tok := range ix.tokensWithPrefix(term) {
			base := float64(len(term)) / float64(len(tok))
			if tok == term {
				base = exactBoost
			}
			for _, p := range ix.postings[tok] {
				contribs, ok := scores[p.ord]
				if !ok {
					contribs = make([]float64, len(terms))
					scores[p.ord] = contribs
				}
				if c := base / float64(1+p.pos); c > contribs[ti] {
					contribs[ti] = c
				}
			}
		}
	}

	type hit struct {
		ord   int
		score float64
	}
	hits := make([]hit, 0, len(scores))
	for ord, contribs := range scores {
		total := 0.0
		conjunctive := true
		for _, c := range contribs {
			if c == 0 {
				conjunctive = false
				break
			}
			total += c
		}
		if conjunctive {
			hits = append(hits, hit{ord: ord, score: total})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].ord < hits[j].ord
	})

	matches := make([]match.Match, 0, len(hits))
	for _, h := range hits {
		r := ix.order[h.ord]
		matches = append(matches, match.New(
			r.ID(), r.Pack().ID, r.Pack().Label,
			r.Name(), r.Image(), r.EntryType(), h.score,
		))
	}
	return matches
}

// tokensWithPrefix scans the sorted token table for tokens starting with term.
func (ix *Index) tokensWithPrefix(term string) []string {
	start := sort.SearchStrings(ix.tokens, term)
	var out []string
	for i := start; i < len(ix.tokens) && strings.HasPrefix(ix.tokens[i], term); i++ {
		out = append(out, ix.tokens[i])
	}
	return out
}
