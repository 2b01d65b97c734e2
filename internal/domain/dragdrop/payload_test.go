package dragdrop

import "testing"

func TestNewPayload_UUIDComposition(t *testing.T) {
	p := NewPayload("Actor", "world.bestiary", "e1")

	if p.DocType() != "Actor" {
		t.Errorf("DocType() = %q, want %q", p.DocType(), "Actor")
	}
	if p.UUID() != "Compendium.world.bestiary.e1" {
		t.Errorf("UUID() = %q, want %q", p.UUID(), "Compendium.world.bestiary.e1")
	}
}

func TestPreviewSlot_SingleOwner(t *testing.T) {
	var slot PreviewSlot

	if slot.Current() != nil {
		t.Fatal("fresh slot must hold no preview")
	}

	first := slot.Acquire("icons/goblin.png", "Goblin Warrior")
	if slot.Current() != first {
		t.Error("Current() must return the acquired preview")
	}

	// A new drag supersedes an interrupted one.
	second := slot.Acquire("", "Goblin Shaman")
	if slot.Current() != second {
		t.Error("Current() must return the newest preview")
	}
	if slot.Current() == first {
		t.Error("acquiring a new preview must release the previous one")
	}
	if second.Title() != "Goblin Shaman" {
		t.Errorf("Title() = %q, want %q", second.Title(), "Goblin Shaman")
	}

	slot.Release()
	if slot.Current() != nil {
		t.Error("Release() must clear the slot")
	}
}
