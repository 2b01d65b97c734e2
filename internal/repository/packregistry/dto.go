package packregistry

import (
	"fmt"

	"github.com/lorehall/packdex/internal/domain/pack"
	"github.com/lorehall/packdex/internal/domain/pack/entry"
)

// entryDTO is the wire shape of one entry summary.
type entryDTO struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"img,omitempty" yaml:"img,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// packDTO is the wire shape of a pack manifest.
type packDTO struct {
	ID         string     `json:"id" yaml:"id"`
	Collection string     `json:"collection" yaml:"collection"`
	Title      string     `json:"title" yaml:"title"`
	Type       string     `json:"type" yaml:"type"`
	Private    bool       `json:"private,omitempty" yaml:"private,omitempty"`
	Entries    []entryDTO `json:"entries" yaml:"entries"`
}

// toDomain validates a manifest into a Pack. Manifests are external input,
// so the validating constructors run, not the hydration ones.
func (d packDTO) toDomain() (pack.Pack, error) {
	entries := make([]entry.Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		ent, err := entry.New(e.ID, e.Name, e.Image, e.Type)
		if err != nil {
			return pack.Pack{}, fmt.Errorf("pack %q entry %q: %w", d.ID, e.ID, err)
		}
		entries = append(entries, ent)
	}
	p, err := pack.New(d.ID, d.Collection, d.Title, d.Type, d.Private, entries)
	if err != nil {
		return pack.Pack{}, fmt.Errorf("pack %q: %w", d.ID, err)
	}
	return p, nil
}
