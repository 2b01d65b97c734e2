package health

import "context"

// RegistryPinger checks pack registry availability.
type RegistryPinger interface {
	Ping(ctx context.Context) error
}
