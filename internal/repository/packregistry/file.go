package packregistry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/pack"
)

// Compile-time check: FileRegistry implements Registry.
var _ Registry = (*FileRegistry)(nil)

// FileRegistry reads pack manifests from a directory of YAML files, one pack
// per file. Useful for local setups and tests where no Redis is around.
type FileRegistry struct {
	dir string
}

// NewFile creates a filesystem-backed registry.
func NewFile(dir string) (*FileRegistry, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	return &FileRegistry{dir: dir}, nil
}

// Packs loads every *.yaml/*.yml manifest in the directory, in lexical file
// order so the pack order is stable across sessions.
func (r *FileRegistry) Packs(_ context.Context) ([]pack.Pack, error) {
	names, err := manifestNames(r.dir)
	if err != nil {
		return nil, err
	}

	packs := make([]pack.Pack, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", name, err)
		}
		var dto packDTO
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("decode manifest %s: %w", name, err)
		}
		p, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		packs = append(packs, p)
	}
	return packs, nil
}

// Ping checks that the manifest directory exists.
func (r *FileRegistry) Ping(_ context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRegistryUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrRegistryUnavailable, r.dir)
	}
	return nil
}

// Close is a no-op for the filesystem provider.
func (r *FileRegistry) Close() {}

func manifestNames(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir: %w", domain.ErrRegistryUnavailable, err)
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, d.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
