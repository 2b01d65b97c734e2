package reconcile

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/lorehall/packdex/internal/domain"
	domdir "github.com/lorehall/packdex/internal/domain/directory"
	"github.com/lorehall/packdex/internal/domain/pack"
	"github.com/lorehall/packdex/internal/domain/pack/entry"
	"github.com/lorehall/packdex/internal/domain/search/fold"
	"github.com/lorehall/packdex/internal/domain/search/match"
	"github.com/lorehall/packdex/internal/domain/search/query"
)

// --- Mocks ---

type mockSearcher struct {
	matches  []match.Match
	called   bool
	lastText string
}

func (m *mockSearcher) Query(text string) []match.Match {
	m.called = true
	m.lastText = text
	return m.matches
}

func mkMatch(id, packID, name, entryType string, score float64) match.Match {
	return match.New(id, packID, "Label", name, "", entryType, score)
}

func mkQuery(t *testing.T, text string) query.Query {
	t.Helper()
	q, err := query.New(text)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func testPacks() []pack.Pack {
	return []pack.Pack{
		pack.Reconstruct("p1", "world.bestiary", "Bestiary", "Actor", false,
			[]entry.Entry{entry.Reconstruct("e1", "Goblin Warrior", "", "")}),
		pack.Reconstruct("p2", "world.vault", "Bestiary Vault", "Item", false,
			[]entry.Entry{entry.Reconstruct("e2", "Vorpal Sword", "", "")}),
		pack.Reconstruct("p3", "world.gm", "GM Secrets", "Actor", true,
			[]entry.Entry{entry.Reconstruct("e3", "Hidden Villain", "", "")}),
	}
}

func newService(searcher Searcher) *Service {
	return New(searcher, fold.New(language.English))
}

func rowByPack(t *testing.T, rows []domdir.RowState, packID string) domdir.RowState {
	t.Helper()
	for _, r := range rows {
		if r.PackID() == packID {
			return r
		}
	}
	t.Fatalf("no row for pack %q", packID)
	return domdir.RowState{}
}

// --- Tests ---

func TestReconcile_EmptyQueryShowsAllPermitted(t *testing.T) {
	searcher := &mockSearcher{}
	svc := newService(searcher)

	rows := svc.Reconcile(mkQuery(t, ""), testPacks(), domain.Viewer{})

	if searcher.called {
		t.Error("document pass must be skipped for the empty query")
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if !rowByPack(t, rows, "p1").Shown() || !rowByPack(t, rows, "p2").Shown() {
		t.Error("empty query must show every permitted row")
	}
	if rowByPack(t, rows, "p3").Shown() {
		t.Error("private pack must stay hidden from an unprivileged viewer")
	}
	for _, r := range rows {
		if len(r.Groups()) != 0 {
			t.Errorf("row %q has %d groups, want none on empty query", r.PackID(), len(r.Groups()))
		}
	}
}

func TestReconcile_ContainerPassIsSubstring(t *testing.T) {
	svc := newService(&mockSearcher{})

	// "vau" is a substring of "Bestiary Vault" (not a word prefix), so the
	// container pass shows p2. No document matched, p1's title lacks "vau".
	rows := svc.Reconcile(mkQuery(t, "vau"), testPacks(), domain.Viewer{})

	if rowByPack(t, rows, "p1").Shown() {
		t.Error("p1 shown: title lacks the substring and there are no matches")
	}
	if !rowByPack(t, rows, "p2").Shown() {
		t.Error("p2 hidden: container pass is substring containment over the title")
	}
}

func TestReconcile_ContainerPassFoldsCase(t *testing.T) {
	svc := newService(&mockSearcher{})

	rows := svc.Reconcile(mkQuery(t, "BESTIARY"), testPacks(), domain.Viewer{})
	if !rowByPack(t, rows, "p1").Shown() || !rowByPack(t, rows, "p2").Shown() {
		t.Error("container pass must be case-insensitive")
	}
}

func TestReconcile_MatchSurfacesPackWhenTitleFails(t *testing.T) {
	// Title "Bestiary" does not contain "gob", but a document match exists,
	// so the match surfaces its pack and the row is shown with its group.
	searcher := &mockSearcher{matches: []match.Match{
		mkMatch("e1", "p1", "Goblin Warrior", "Actor", 2.0),
	}}
	svc := newService(searcher)

	rows := svc.Reconcile(mkQuery(t, "gob"), testPacks(), domain.Viewer{})

	if !searcher.called {
		t.Fatal("document pass must run for a non-empty query")
	}
	if searcher.lastText != "gob" {
		t.Errorf("index received %q, want the raw query text", searcher.lastText)
	}

	p1 := rowByPack(t, rows, "p1")
	if !p1.Shown() {
		t.Error("p1 must be shown by its document match despite the failed title test")
	}
	if len(p1.Groups()) != 1 || p1.Groups()[0].EntryType() != "Actor" {
		t.Fatalf("p1 groups = %+v, want one Actor group", p1.Groups())
	}
	got := p1.Groups()[0].Matches()
	if len(got) != 1 || got[0].ID() != "e1" {
		t.Errorf("p1 matches = %+v, want [e1]", got)
	}

	if rowByPack(t, rows, "p2").Shown() {
		t.Error("p2 shown with neither a title hit nor matches")
	}
}

func TestReconcile_PrivatePackHiddenEvenOnExactMatch(t *testing.T) {
	searcher := &mockSearcher{matches: []match.Match{
		mkMatch("e3", "p3", "Hidden Villain", "Actor", 2.0),
	}}
	svc := newService(searcher)

	rows := svc.Reconcile(mkQuery(t, "GM Secrets"), testPacks(), domain.Viewer{})
	p3 := rowByPack(t, rows, "p3")
	if p3.Shown() {
		t.Error("private pack shown to unprivileged viewer despite exact title match")
	}
	if len(p3.Groups()) != 0 {
		t.Error("private pack must carry no match groups for an unprivileged viewer")
	}

	rows = svc.Reconcile(mkQuery(t, "GM Secrets"), testPacks(), domain.Viewer{Privileged: true})
	if !rowByPack(t, rows, "p3").Shown() {
		t.Error("privileged viewer must see the private pack")
	}
}

func TestReconcile_StaleMatchSkipped(t *testing.T) {
	searcher := &mockSearcher{matches: []match.Match{
		mkMatch("gone", "removed-pack", "Ghost", "Actor", 1.0),
		mkMatch("e1", "p1", "Goblin Warrior", "Actor", 0.5),
	}}
	svc := newService(searcher)

	rows := svc.Reconcile(mkQuery(t, "gh"), testPacks(), domain.Viewer{})

	p1 := rowByPack(t, rows, "p1")
	if !p1.Shown() || len(p1.Groups()) != 1 {
		t.Fatal("resolvable match must survive a stale sibling")
	}
	for _, r := range rows {
		for _, g := range r.Groups() {
			for _, m := range g.Matches() {
				if m.ID() == "gone" {
					t.Error("stale match must be treated as absent, not rendered")
				}
			}
		}
	}
}

func TestReconcile_GroupsByTypePreservingRank(t *testing.T) {
	searcher := &mockSearcher{matches: []match.Match{
		mkMatch("a", "p1", "Alpha", "Actor", 3.0),
		mkMatch("b", "p1", "Bravo", "Item", 2.0),
		mkMatch("c", "p1", "Charlie", "Actor", 1.0),
	}}
	svc := newService(searcher)

	rows := svc.Reconcile(mkQuery(t, "xx"), testPacks(), domain.Viewer{})
	groups := rowByPack(t, rows, "p1").Groups()

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].EntryType() != "Actor" || groups[1].EntryType() != "Item" {
		t.Errorf("group order = [%s %s], want first-appearance order [Actor Item]",
			groups[0].EntryType(), groups[1].EntryType())
	}
	actors := groups[0].Matches()
	if len(actors) != 2 || actors[0].ID() != "a" || actors[1].ID() != "c" {
		t.Errorf("Actor group = %+v, want ranked order [a c]", actors)
	}
}

func TestReconcile_ZeroMatchesIsNotAnError(t *testing.T) {
	svc := newService(&mockSearcher{})

	rows := svc.Reconcile(mkQuery(t, "zzzz"), testPacks(), domain.Viewer{})
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want a row state per pack", len(rows))
	}
	for _, r := range rows {
		if r.Shown() {
			t.Errorf("row %q shown with no title hit and no matches", r.PackID())
		}
	}
}
