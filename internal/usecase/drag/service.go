package drag

import (
	"fmt"
	"sync"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/dragdrop"
	"github.com/lorehall/packdex/internal/domain/pack"
)

// Service builds the drag payload and preview a native drag-start against an
// opened container would have produced. It owns the single preview slot:
// starting a new drag discards whatever an interrupted one left behind.
type Service struct {
	packs map[string]pack.Pack

	mu      sync.Mutex
	preview dragdrop.PreviewSlot
}

// New creates a drag service over the given packs.
func New(packs []pack.Pack) *Service {
	byID := make(map[string]pack.Pack, len(packs))
	for _, p := range packs {
		byID[p.ID()] = p
	}
	return &Service{packs: byID}
}

// Start resolves the entry strictly and returns its payload together with a
// freshly acquired preview. A private pack is unresolvable for an
// unprivileged viewer, indistinguishable from a pack that does not exist.
// The UI never offers a drag handle for an entry it cannot resolve, so a
// failed lookup is a caller error; it fails this single gesture only and
// corrupts nothing.
func (s *Service) Start(packID, entryID string, viewer domain.Viewer) (dragdrop.Payload, *dragdrop.Preview, error) {
	p, ok := s.packs[packID]
	if !ok || !viewer.CanSee(p.Private()) {
		return dragdrop.Payload{}, nil, fmt.Errorf("resolve pack %q: %w", packID, domain.ErrPackNotFound)
	}
	e, ok := p.EntryByID(entryID)
	if !ok {
		return dragdrop.Payload{}, nil, fmt.Errorf(
			"resolve entry %q in pack %q: %w", entryID, packID, domain.ErrEntryNotFound,
		)
	}

	docType := e.EntryType()
	if docType == "" {
		docType = p.PackType()
	}
	payload := dragdrop.NewPayload(docType, p.Collection(), e.ID())

	s.mu.Lock()
	preview := s.preview.Acquire(e.Image(), e.Name())
	s.mu.Unlock()
	return payload, preview, nil
}

// End releases the live preview.
func (s *Service) End() {
	s.mu.Lock()
	s.preview.Release()
	s.mu.Unlock()
}

// ActivePreview returns the preview of the drag in flight, or nil.
func (s *Service) ActivePreview() *dragdrop.Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview.Current()
}
