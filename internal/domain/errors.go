package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPackNotFound signals a missing content pack.
	ErrPackNotFound = errors.New("pack not found")
	// ErrEntryNotFound signals a missing entry inside a pack.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDuplicateRecord signals an identifier collision at index build time.
	ErrDuplicateRecord = errors.New("duplicate record identifier")
	// ErrTemplateMissing signals an absent or unparseable match-row template.
	ErrTemplateMissing = errors.New("match row template missing")
	// ErrRegistryUnavailable signals that the pack registry cannot be reached.
	ErrRegistryUnavailable = errors.New("pack registry unavailable")
)

// DuplicateRecordError wraps ErrDuplicateRecord with the colliding identifier.
type DuplicateRecordError struct {
	ID string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateRecord.Error(), e.ID)
}

func (e *DuplicateRecordError) Unwrap() error { return ErrDuplicateRecord }

// NewDuplicateRecord creates a duplicate record error for the given identifier.
func NewDuplicateRecord(id string) error {
	return &DuplicateRecordError{ID: id}
}
