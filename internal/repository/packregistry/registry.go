// Package packregistry loads content-pack manifests from their backing store.
// Packs are read-only from the directory's perspective: the registry is read
// once per session and the resulting snapshot is never mutated.
package packregistry

import (
	"context"

	"github.com/lorehall/packdex/internal/domain/pack"
)

// Registry is the store-agnostic contract both providers satisfy.
type Registry interface {
	Packs(ctx context.Context) ([]pack.Pack, error)
	Ping(ctx context.Context) error
	Close()
}
