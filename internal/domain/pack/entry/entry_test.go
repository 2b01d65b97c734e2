package entry

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	e, err := New("e1", "Goblin Warrior", "icons/goblin.png", "Actor")
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	if e.ID() != "e1" {
		t.Errorf("ID() = %q, want %q", e.ID(), "e1")
	}
	if e.Name() != "Goblin Warrior" {
		t.Errorf("Name() = %q, want %q", e.Name(), "Goblin Warrior")
	}
	if e.Image() != "icons/goblin.png" {
		t.Errorf("Image() = %q, want %q", e.Image(), "icons/goblin.png")
	}
	if e.EntryType() != "Actor" {
		t.Errorf("EntryType() = %q, want %q", e.EntryType(), "Actor")
	}
}

func TestNew_OptionalImageAndType(t *testing.T) {
	e, err := New("e1", "Goblin", "", "")
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	if e.Image() != "" {
		t.Errorf("Image() = %q, want empty", e.Image())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		eName   string
		wantErr string
	}{
		{"empty id", "", "Goblin", "required"},
		{"id too long", strings.Repeat("x", 65), "Goblin", "too long"},
		{"empty name", "e1", "", "required"},
		{"name too long", "e1", strings.Repeat("x", 257), "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.eName, "", "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}
