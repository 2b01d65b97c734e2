package entry

import "fmt"

// Entry is an immutable summary of one document inside a content pack.
// It carries just enough to list and search the document without loading it.
type Entry struct {
	id        string
	name      string
	image     string
	entryType string
}

// New validates and creates an Entry.
// ID and name are required; the identifier is unique within its owning pack,
// not globally. Image is an optional path.
func New(id, name, image, entryType string) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("entry ID is required")
	}
	if len(id) > 64 {
		return Entry{}, fmt.Errorf("entry ID %q too long (max 64)", id)
	}
	if name == "" {
		return Entry{}, fmt.Errorf("entry name is required")
	}
	if len(name) > 256 {
		return Entry{}, fmt.Errorf("entry name too long (max 256)")
	}
	return Entry{id: id, name: name, image: image, entryType: entryType}, nil
}

// Reconstruct creates an Entry without validation (storage hydration).
func Reconstruct(id, name, image, entryType string) Entry {
	return Entry{id: id, name: name, image: image, entryType: entryType}
}

// ID returns the entry identifier (pack-unique).
func (e Entry) ID() string { return e.id }

// Name returns the display name.
func (e Entry) Name() string { return e.name }

// Image returns the image path, or "" when the entry has none.
func (e Entry) Image() string { return e.image }

// EntryType returns the document type tag of this entry.
func (e Entry) EntryType() string { return e.entryType }
