package packregistry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const bestiaryManifest = `id: p1
collection: world.bestiary
title: Bestiary
type: Actor
entries:
  - id: e1
    name: Goblin Warrior
    img: icons/goblin.png
  - id: e2
    name: Orc Shaman
    type: npc
`

const vaultManifest = `id: p2
collection: world.vault
title: Bestiary Vault
type: Item
private: true
entries:
  - id: e1
    name: Vorpal Sword
`

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestFileRegistry_LoadsManifestsInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of order on purpose; loading must sort by filename.
	writeManifest(t, dir, "20-vault.yaml", vaultManifest)
	writeManifest(t, dir, "10-bestiary.yaml", bestiaryManifest)
	writeManifest(t, dir, "ignored.txt", "not a manifest")

	reg, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer reg.Close()

	packs, err := reg.Packs(context.Background())
	if err != nil {
		t.Fatalf("Packs: %v", err)
	}
	if len(packs) != 2 {
		t.Fatalf("len(packs) = %d, want 2", len(packs))
	}
	if packs[0].ID() != "p1" || packs[1].ID() != "p2" {
		t.Errorf("pack order = [%s %s], want [p1 p2]", packs[0].ID(), packs[1].ID())
	}

	p1 := packs[0]
	if p1.Title() != "Bestiary" || p1.PackType() != "Actor" || p1.Private() {
		t.Errorf("p1 = %q/%q/private=%v, want Bestiary/Actor/false", p1.Title(), p1.PackType(), p1.Private())
	}
	if len(p1.Entries()) != 2 {
		t.Fatalf("p1 entries = %d, want 2", len(p1.Entries()))
	}
	e1 := p1.Entries()[0]
	if e1.Name() != "Goblin Warrior" || e1.Image() != "icons/goblin.png" {
		t.Errorf("e1 = %q/%q, want Goblin Warrior/icons/goblin.png", e1.Name(), e1.Image())
	}
	if !packs[1].Private() {
		t.Error("p2 must be private")
	}
}

func TestFileRegistry_InvalidManifestFails(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bad.yaml", "id: ''\ncollection: world.x\ntitle: X\n")

	reg, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := reg.Packs(context.Background()); err == nil {
		t.Error("expected validation error for an empty pack id")
	}
}

func TestFileRegistry_DuplicateEntryIDsRejected(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "dup.yaml", `id: p1
collection: world.x
title: Dupes
type: Item
entries:
  - id: e1
    name: First
  - id: e1
    name: Second
`)

	reg, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := reg.Packs(context.Background()); err == nil {
		t.Error("expected error for duplicate entry ids within one pack")
	}
}

func TestFileRegistry_Ping(t *testing.T) {
	dir := t.TempDir()
	reg, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := reg.Ping(context.Background()); err != nil {
		t.Errorf("Ping on existing dir: %v", err)
	}

	gone, err := NewFile(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := gone.Ping(context.Background()); err == nil {
		t.Error("Ping on missing dir must fail")
	}
}
