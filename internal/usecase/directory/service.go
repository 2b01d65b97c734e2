package directory

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/lorehall/packdex/internal/domain"
	domdir "github.com/lorehall/packdex/internal/domain/directory"
	"github.com/lorehall/packdex/internal/domain/pack"
	"github.com/lorehall/packdex/internal/domain/search/fold"
	"github.com/lorehall/packdex/internal/domain/search/query"
	"github.com/lorehall/packdex/internal/repository/memindex"
	"github.com/lorehall/packdex/internal/usecase/extract"
	"github.com/lorehall/packdex/internal/usecase/reconcile"
)

// Service is one viewer's directory session: packs snapshotted from the
// registry and a search index built over them at construction. The index is
// read-only afterwards; if packs change, the session is stale until a new
// Service is constructed.
type Service struct {
	packs      []pack.Pack
	viewer     domain.Viewer
	index      *memindex.Index
	reconciler *reconcile.Service
}

// New snapshots the registry, extracts searchable records for the viewer and
// builds the index. A duplicate record identifier is an extraction bug
// upstream and fails construction.
func New(
	ctx context.Context, registry Registry,
	viewer domain.Viewer, locale language.Tag, logger *zap.Logger,
) (*Service, error) {
	packs, err := registry.Packs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load packs: %w", err)
	}

	folder := fold.New(locale)
	records := extract.Records(packs, viewer)

	index := memindex.New(folder)
	if err := index.Build(records); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	logger.Info("directory index built",
		zap.Int("packs", len(packs)),
		zap.Int("records", index.Len()),
		zap.Bool("privileged", viewer.Privileged),
		zap.String("locale", locale.String()),
	)

	return &Service{
		packs:      packs,
		viewer:     viewer,
		index:      index,
		reconciler: reconcile.New(index, folder),
	}, nil
}

// Reconcile validates the query text and computes the per-row states.
func (s *Service) Reconcile(text string) ([]domdir.RowState, error) {
	q, err := query.New(text)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	return s.reconciler.Reconcile(q, s.packs, s.viewer), nil
}

// Packs returns the packs this viewer is permitted to see, in registry order.
func (s *Service) Packs() []pack.Pack {
	permitted := make([]pack.Pack, 0, len(s.packs))
	for _, p := range s.packs {
		if s.viewer.CanSee(p.Private()) {
			permitted = append(permitted, p)
		}
	}
	return permitted
}

// IndexLen returns the number of records in the session index.
func (s *Service) IndexLen() int { return s.index.Len() }
