package pack

import (
	"strings"
	"testing"

	"github.com/lorehall/packdex/internal/domain/pack/entry"
)

func testEntries(t *testing.T) []entry.Entry {
	t.Helper()
	e1, err := entry.New("e1", "Goblin Warrior", "", "")
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}
	e2, err := entry.New("e2", "Goblin Shaman", "", "")
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}
	return []entry.Entry{e1, e2}
}

func TestNew_Valid(t *testing.T) {
	p, err := New("p1", "world.bestiary", "Bestiary", "Actor", false, testEntries(t))
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	if p.ID() != "p1" {
		t.Errorf("ID() = %q, want %q", p.ID(), "p1")
	}
	if p.Collection() != "world.bestiary" {
		t.Errorf("Collection() = %q, want %q", p.Collection(), "world.bestiary")
	}
	if p.Title() != "Bestiary" {
		t.Errorf("Title() = %q, want %q", p.Title(), "Bestiary")
	}
	if p.PackType() != "Actor" {
		t.Errorf("PackType() = %q, want %q", p.PackType(), "Actor")
	}
	if p.Private() {
		t.Error("Private() = true, want false")
	}
	if len(p.Entries()) != 2 {
		t.Errorf("len(Entries()) = %d, want 2", len(p.Entries()))
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		collection string
		title      string
		wantErr    string
	}{
		{"empty id", "", "world.x", "T", "required"},
		{"bad id chars", "p 1", "world.x", "T", "alphanumeric"},
		{"empty collection", "p1", "", "T", "required"},
		{"bad collection chars", "p1", "world x", "T", "alphanumeric"},
		{"empty title", "p1", "world.x", "", "required"},
		{"title too long", "p1", "world.x", strings.Repeat("x", 257), "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.collection, tt.title, "Actor", false, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestNew_DuplicateEntryIDs(t *testing.T) {
	dup := []entry.Entry{
		entry.Reconstruct("e1", "First", "", ""),
		entry.Reconstruct("e1", "Second", "", ""),
	}
	_, err := New("p1", "world.x", "Things", "Item", false, dup)
	if err == nil {
		t.Fatal("expected error for duplicate entry IDs")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %q, want 'duplicate'", err)
	}
}

func TestEntryByID(t *testing.T) {
	p := Reconstruct("p1", "world.x", "Bestiary", "Actor", false, testEntries(t))

	e, ok := p.EntryByID("e2")
	if !ok {
		t.Fatal("EntryByID(e2) not found")
	}
	if e.Name() != "Goblin Shaman" {
		t.Errorf("Name() = %q, want %q", e.Name(), "Goblin Shaman")
	}

	if _, ok := p.EntryByID("missing"); ok {
		t.Error("EntryByID(missing) = found, want not found")
	}
}

func TestIsJournal(t *testing.T) {
	j := Reconstruct("p1", "world.notes", "Notes", TypeJournal, false, nil)
	if !j.IsJournal() {
		t.Error("IsJournal() = false for journal pack")
	}
	a := Reconstruct("p2", "world.actors", "Actors", "Actor", false, nil)
	if a.IsJournal() {
		t.Error("IsJournal() = true for actor pack")
	}
}

func TestNew_ClonesEntries(t *testing.T) {
	entries := testEntries(t)
	p, err := New("p1", "world.x", "Bestiary", "Actor", false, entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	entries[0] = entry.Reconstruct("zz", "Mutated", "", "")
	if p.Entries()[0].ID() != "e1" {
		t.Error("Pack entries must be copies, not aliases of the caller's slice")
	}
}
