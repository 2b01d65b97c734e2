package dragdrop

import "fmt"

// ContainerKind is the reference namespace for documents living in packs.
const ContainerKind = "Compendium"

// Payload is the transferable descriptor a drag-start produces. It must be
// byte-identical to what dragging from a live, opened container yields, so
// existing drop targets parse both the same way.
type Payload struct {
	docType string
	uuid    string
}

// NewPayload composes a payload from the resolved document type, the owning
// pack's collection key and the document identifier.
func NewPayload(docType, collection, entryID string) Payload {
	return Payload{
		docType: docType,
		uuid:    fmt.Sprintf("%s.%s.%s", ContainerKind, collection, entryID),
	}
}

// DocType returns the resolved document type tag.
func (p Payload) DocType() string { return p.docType }

// UUID returns the fully qualified reference string
// ("Compendium.<collection>.<id>").
func (p Payload) UUID() string { return p.uuid }

// Preview is the transient visual element shown under the cursor during a
// drag: an image and a title, nothing else.
type Preview struct {
	image string
	title string
}

// Image returns the preview image path ("" means the renderer's default).
func (p *Preview) Image() string { return p.image }

// Title returns the preview title.
func (p *Preview) Title() string { return p.title }

// PreviewSlot owns the single live preview. Acquiring a new preview releases
// whatever a prior, possibly interrupted drag left behind.
type PreviewSlot struct {
	current *Preview
}

// Acquire replaces the live preview with a fresh one and returns it.
func (s *PreviewSlot) Acquire(image, title string) *Preview {
	s.current = &Preview{image: image, title: title}
	return s.current
}

// Release discards the live preview (drag-end).
func (s *PreviewSlot) Release() {
	s.current = nil
}

// Current returns the live preview, or nil when no drag is in flight.
func (s *PreviewSlot) Current() *Preview {
	return s.current
}
