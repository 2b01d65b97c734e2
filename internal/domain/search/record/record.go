package record

// PackMeta is the owning-pack metadata denormalized onto every record so a
// consumer can tell the document's own type apart from its pack's type.
type PackMeta struct {
	ID    string
	Label string
	Type  string
}

// Record is the unit stored in the search index: one entry's display fields
// plus its owning pack's metadata. Records are copies, never references into
// pack storage, so index queries do not re-touch packs.
type Record struct {
	id        string
	name      string
	image     string
	entryType string
	pack      PackMeta
}

// New creates a Record.
func New(id, name, image, entryType string, pack PackMeta) Record {
	return Record{id: id, name: name, image: image, entryType: entryType, pack: pack}
}

// ID returns the record identifier (re-used as the index key).
func (r Record) ID() string { return r.id }

// Name returns the display name, the only indexed field.
func (r Record) Name() string { return r.name }

// Image returns the stored image path.
func (r Record) Image() string { return r.image }

// EntryType returns the document's own type tag.
func (r Record) EntryType() string { return r.entryType }

// Pack returns the owning-pack metadata.
func (r Record) Pack() PackMeta { return r.pack }
