package query

import (
	"strings"
	"testing"
)

func TestNew_TrimsWhitespace(t *testing.T) {
	q, err := New("  goblin  ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if q.Text() != "goblin" {
		t.Errorf("Text() = %q, want %q", q.Text(), "goblin")
	}
	if q.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty query")
	}
}

func TestNew_WhitespaceOnlyIsEmpty(t *testing.T) {
	q, err := New("   \t ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false for whitespace-only query")
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxLength+1))
	if err == nil {
		t.Fatal("expected error for oversized query")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q, want 'too long'", err)
	}
}
