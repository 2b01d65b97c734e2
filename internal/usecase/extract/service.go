package extract

import (
	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/pack"
	"github.com/lorehall/packdex/internal/domain/search/record"
)

// Records flattens the eligible packs' entry indexes into search-ready
// records, denormalizing each pack's metadata onto its entries. Pure and
// synchronous: no I/O, no side effects; indexing the result is the caller's
// job.
//
// Eligibility: packs with an empty index are skipped, journal packs are never
// name-searchable, and private packs are skipped unless the viewer is
// privileged.
func Records(packs []pack.Pack, viewer domain.Viewer) []record.Record {
	var records []record.Record
	for _, p := range packs {
		if len(p.Entries()) == 0 || p.IsJournal() || !viewer.CanSee(p.Private()) {
			continue
		}
		meta := record.PackMeta{ID: p.ID(), Label: p.Title(), Type: p.PackType()}
		for _, e := range p.Entries() {
			// Entries without their own type tag inherit the pack's.
			et := e.EntryType()
			if et == "" {
				et = p.PackType()
			}
			records = append(records, record.New(e.ID(), e.Name(), e.Image(), et, meta))
		}
	}
	return records
}
