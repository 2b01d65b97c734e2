package directory

import (
	"context"

	"github.com/lorehall/packdex/internal/domain/pack"
)

// Registry supplies the available packs from the host content store.
type Registry interface {
	Packs(ctx context.Context) ([]pack.Pack, error)
}
