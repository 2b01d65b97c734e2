package packregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/rueidis"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/pack"
)

// Compile-time check: RedisRegistry implements Registry.
var _ Registry = (*RedisRegistry)(nil)

// RedisConfig holds connection parameters for a Redis-backed registry.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisRegistry reads pack manifests stored as JSON values. Pack ids live in
// the set "<prefix>packs"; each manifest lives at "<prefix>pack:<id>".
type RedisRegistry struct {
	client rueidis.Client
	prefix string
}

// NewRedis creates a Redis-backed registry via rueidis.
func NewRedis(cfg RedisConfig) (*RedisRegistry, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "packdex:"
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisRegistry{client: client, prefix: prefix}, nil
}

// Packs loads and validates every manifest listed in the pack set. Order is
// made stable by sorting the set members before fetching.
func (r *RedisRegistry) Packs(ctx context.Context) ([]pack.Pack, error) {
	cmd := r.client.B().Smembers().Key(r.prefix + "packs").Build()
	ids, err := r.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("%w: list packs: %w", domain.ErrRegistryUnavailable, err)
	}
	sort.Strings(ids)

	packs := make([]pack.Pack, 0, len(ids))
	for _, id := range ids {
		get := r.client.B().Get().Key(r.prefix + "pack:" + id).Build()
		data, err := r.client.Do(ctx, get).AsBytes()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue // listed but gone, skip rather than fail the session
			}
			return nil, fmt.Errorf("%w: get pack %q: %w", domain.ErrRegistryUnavailable, id, err)
		}

		var dto packDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("decode pack %q: %w", id, err)
		}
		p, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return packs, nil
}

// Ping checks connectivity.
func (r *RedisRegistry) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (r *RedisRegistry) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for registry: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Close shuts down the client.
func (r *RedisRegistry) Close() {
	r.client.Close()
}
