package pack

import (
	"fmt"
	"regexp"

	"github.com/lorehall/packdex/internal/domain/pack/entry"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// TypeJournal is the pack type whose entries are never name-searchable.
const TypeJournal = "JournalEntry"

// Pack is a named, read-only content container (immutable value object).
// Its entry index is the lightweight listing used for search, not the
// full documents.
type Pack struct {
	id         string
	collection string
	title      string
	packType   string
	private    bool
	entries    []entry.Entry
}

func validateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("pack %s is required", kind)
	}
	if len(id) > 128 {
		return fmt.Errorf("pack %s too long (max 128)", kind)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("pack %s must be alphanumeric with underscores, hyphens and dots", kind)
	}
	return nil
}

func validateEntries(entries []entry.Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID()] {
			return fmt.Errorf("duplicate entry ID: %s", e.ID())
		}
		seen[e.ID()] = true
	}
	return nil
}

// New validates and creates a Pack.
// ID and collection: ^[a-zA-Z0-9_.-]+$, max 128. Title: non-empty, max 256.
// Entry identifiers must be unique within the pack.
func New(id, collection, title, packType string, private bool, entries []entry.Entry) (Pack, error) {
	if err := validateID("ID", id); err != nil {
		return Pack{}, err
	}
	if err := validateID("collection", collection); err != nil {
		return Pack{}, err
	}
	if title == "" {
		return Pack{}, fmt.Errorf("pack title is required")
	}
	if len(title) > 256 {
		return Pack{}, fmt.Errorf("pack title too long (max 256)")
	}
	if err := validateEntries(entries); err != nil {
		return Pack{}, err
	}

	return Pack{
		id:         id,
		collection: collection,
		title:      title,
		packType:   packType,
		private:    private,
		entries:    cloneEntries(entries),
	}, nil
}

// Reconstruct creates a Pack without validation (storage hydration).
func Reconstruct(id, collection, title, packType string, private bool, entries []entry.Entry) Pack {
	return Pack{
		id:         id,
		collection: collection,
		title:      title,
		packType:   packType,
		private:    private,
		entries:    entries,
	}
}

// ID returns the stable pack identifier.
func (p Pack) ID() string { return p.id }

// Collection returns the fully qualified collection key (e.g. "world.bestiary").
func (p Pack) Collection() string { return p.collection }

// Title returns the display title.
func (p Pack) Title() string { return p.title }

// PackType returns the document type tag of the pack's contents.
func (p Pack) PackType() string { return p.packType }

// Private reports whether the pack is hidden from non-privileged viewers.
func (p Pack) Private() bool { return p.private }

// Entries returns the ordered lightweight entry index.
func (p Pack) Entries() []entry.Entry { return p.entries }

// IsJournal reports whether this pack holds journal entries, which are
// excluded from name search.
func (p Pack) IsJournal() bool { return p.packType == TypeJournal }

// EntryByID looks up an entry by its pack-unique identifier.
func (p Pack) EntryByID(id string) (entry.Entry, bool) {
	for _, e := range p.entries {
		if e.ID() == id {
			return e, true
		}
	}
	return entry.Entry{}, false
}

func cloneEntries(entries []entry.Entry) []entry.Entry {
	if entries == nil {
		return nil
	}
	c := make([]entry.Entry, len(entries))
	copy(c, entries)
	return c
}
