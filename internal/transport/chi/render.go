package chi

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/lorehall/packdex/internal/domain"
	"github.com/lorehall/packdex/internal/domain/dragdrop"
	"github.com/lorehall/packdex/internal/domain/search/match"
)

// previewTemplate materializes the transient drag preview: an image and a
// title, exactly what a native drag from an opened container shows.
const previewTemplate = `<div class="drag-preview"><img src="{{.Image}}" alt=""/>` +
	`<span class="title">{{.Title}}</span></div>`

// defaultPreviewImage is used when an entry has no image of its own.
const defaultPreviewImage = "icons/document.svg"

// RowRenderer materializes match rows and drag previews from templates. The
// match-row template is a structural requirement: without it no match can be
// rendered, so a missing or unparseable one fails construction.
type RowRenderer struct {
	row     *template.Template
	preview *template.Template
}

// NewRowRenderer parses the configured match-row template.
func NewRowRenderer(rowTemplate string) (*RowRenderer, error) {
	if strings.TrimSpace(rowTemplate) == "" {
		return nil, domain.ErrTemplateMissing
	}
	row, err := template.New("match-row").Parse(rowTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateMissing, err)
	}
	preview := template.Must(template.New("drag-preview").Parse(previewTemplate))
	return &RowRenderer{row: row, preview: preview}, nil
}

type rowData struct {
	ID        string
	PackID    string
	Name      string
	Image     string
	PackLabel string
}

// MatchRow renders one match row.
func (r *RowRenderer) MatchRow(m *match.Match) (string, error) {
	var sb strings.Builder
	err := r.row.Execute(&sb, rowData{
		ID:        m.ID(),
		PackID:    m.PackID(),
		Name:      m.Name(),
		Image:     m.Image(),
		PackLabel: m.PackLabel(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: execute: %w", domain.ErrTemplateMissing, err)
	}
	return sb.String(), nil
}

type previewData struct {
	Image string
	Title string
}

// Preview renders the drag preview element.
func (r *RowRenderer) Preview(p *dragdrop.Preview) (string, error) {
	img := p.Image()
	if img == "" {
		img = defaultPreviewImage
	}
	var sb strings.Builder
	if err := r.preview.Execute(&sb, previewData{Image: img, Title: p.Title()}); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return sb.String(), nil
}
