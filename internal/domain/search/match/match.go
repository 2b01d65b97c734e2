package match

// Match is a single query hit. Ephemeral: recomputed per query, never stored.
type Match struct {
	id        string
	packID    string
	packLabel string
	name      string
	image     string
	entryType string
	score     float64
}

// New creates a search match.
func New(id, packID, packLabel, name, image, entryType string, score float64) Match {
	return Match{
		id: id, packID: packID, packLabel: packLabel,
		name: name, image: image, entryType: entryType, score: score,
	}
}

// ID returns the matched record's identifier.
func (m *Match) ID() string { return m.id }

// PackID returns the owning pack identifier.
func (m *Match) PackID() string { return m.packID }

// PackLabel returns the owning pack's display label.
func (m *Match) PackLabel() string { return m.packLabel }

// Name returns the display name.
func (m *Match) Name() string { return m.name }

// Image returns the image path.
func (m *Match) Image() string { return m.image }

// EntryType returns the document type tag, used for grouping.
func (m *Match) EntryType() string { return m.entryType }

// Score returns the relevance score. Higher is better; used only for
// ordering, never shown to the user.
func (m *Match) Score() float64 { return m.score }
