package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lorehall/packdex/internal/domain"
	domdir "github.com/lorehall/packdex/internal/domain/directory"
	"github.com/lorehall/packdex/internal/metrics"
	directoryuc "github.com/lorehall/packdex/internal/usecase/directory"
	draguc "github.com/lorehall/packdex/internal/usecase/drag"
	healthuc "github.com/lorehall/packdex/internal/usecase/health"
)

// errorCode identifies an error class in API responses.
type errorCode string

const (
	codeBadRequest    errorCode = "bad_request"
	codeUnauthorized  errorCode = "unauthorized"
	codePackNotFound  errorCode = "pack_not_found"
	codeEntryNotFound errorCode = "entry_not_found"
	codeInternalError errorCode = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the pack directory over HTTP: reconciled row states, pack
// summaries, drag payloads, health and metrics.
type Server struct {
	public        *directoryuc.Service
	privileged    *directoryuc.Service
	drag          *draguc.Service
	health        *healthuc.Service
	renderer      *RowRenderer
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. A missing or unparseable match-row
// template is a fatal configuration error.
func NewServer(
	public, privileged *directoryuc.Service,
	drag *draguc.Service,
	health *healthuc.Service,
	matchRowTemplate string,
	logger *zap.Logger,
) (*Server, error) {
	renderer, err := NewRowRenderer(matchRowTemplate)
	if err != nil {
		return nil, fmt.Errorf("match row renderer: %w", err)
	}

	s := &Server{
		public:     public,
		privileged: privileged,
		drag:       drag,
		health:     health,
		renderer:   renderer,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPackNotFound, http.StatusNotFound, codePackNotFound),
		sentinelHandler(domain.ErrEntryNotFound, http.StatusNotFound, codeEntryNotFound),
	}
	return s, nil
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/v1/directory", s.getDirectory)
	r.Get("/v1/packs", s.listPacks)
	r.Post("/v1/drag", s.startDrag)
	r.Delete("/v1/drag", s.endDrag)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// session picks the directory built for the viewer's privilege level.
func (s *Server) session(v domain.Viewer) *directoryuc.Service {
	if v.Privileged {
		return s.privileged
	}
	return s.public
}

type matchResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Image     string  `json:"img,omitempty"`
	PackID    string  `json:"pack_id"`
	PackLabel string  `json:"pack_label"`
	Score     float64 `json:"score"`
	HTML      string  `json:"html"`
}

type groupResponse struct {
	Type    string          `json:"type"`
	Matches []matchResponse `json:"matches"`
}

type rowResponse struct {
	PackID string          `json:"pack_id"`
	Title  string          `json:"title"`
	Shown  bool            `json:"shown"`
	Groups []groupResponse `json:"groups,omitempty"`
}

type directoryResponse struct {
	Query string        `json:"query"`
	Rows  []rowResponse `json:"rows"`
}

// getDirectory reconciles the query against the viewer's directory session.
func (s *Server) getDirectory(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFromContext(r.Context())
	session := s.session(viewer)
	q := r.URL.Query().Get("q")

	start := time.Now()
	rows, err := session.Reconcile(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	viewerLabel := viewerLabel(viewer)
	metrics.DirectoryQueryDuration.WithLabelValues(viewerLabel).Observe(time.Since(start).Seconds())
	metrics.DirectoryQueriesTotal.WithLabelValues(viewerLabel, queryOutcome(rows)).Inc()

	resp := directoryResponse{Query: q, Rows: make([]rowResponse, 0, len(rows))}
	for i := range rows {
		row, err := s.rowToResponse(&rows[i])
		if err != nil {
			// Template failure is a configuration error: abort the pass.
			s.logger.Error("render match row", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp.Rows = append(resp.Rows, row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) rowToResponse(row *domdir.RowState) (rowResponse, error) {
	out := rowResponse{PackID: row.PackID(), Title: row.Title(), Shown: row.Shown()}
	for _, g := range row.Groups() {
		gr := groupResponse{Type: g.EntryType(), Matches: make([]matchResponse, 0, len(g.Matches()))}
		for _, m := range g.Matches() {
			html, err := s.renderer.MatchRow(&m)
			if err != nil {
				return rowResponse{}, err
			}
			gr.Matches = append(gr.Matches, matchResponse{
				ID:        m.ID(),
				Name:      m.Name(),
				Image:     m.Image(),
				PackID:    m.PackID(),
				PackLabel: m.PackLabel(),
				Score:     m.Score(),
				HTML:      html,
			})
		}
		out.Groups = append(out.Groups, gr)
	}
	return out, nil
}

type packResponse struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Private    bool   `json:"private"`
	Entries    int    `json:"entries"`
}

// listPacks returns the packs the viewer is permitted to see.
func (s *Server) listPacks(w http.ResponseWriter, r *http.Request) {
	session := s.session(viewerFromContext(r.Context()))

	packs := session.Packs()
	resp := make([]packResponse, 0, len(packs))
	for _, p := range packs {
		resp = append(resp, packResponse{
			ID:         p.ID(),
			Collection: p.Collection(),
			Title:      p.Title(),
			Type:       p.PackType(),
			Private:    p.Private(),
			Entries:    len(p.Entries()),
		})
	}
	writeJSON(w, http.StatusOK, map[string][]packResponse{"packs": resp})
}

type dragRequest struct {
	PackID  string `json:"pack_id"`
	EntryID string `json:"entry_id"`
}

type dragResponse struct {
	Type        string `json:"type"`
	UUID        string `json:"uuid"`
	PreviewHTML string `json:"preview_html"`
}

// startDrag builds the drag payload and preview for one entry.
func (s *Server) startDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PackID == "" || req.EntryID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "pack_id and entry_id are required")
		return
	}

	payload, preview, err := s.drag.Start(req.PackID, req.EntryID, viewerFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	html, err := s.renderer.Preview(preview)
	if err != nil {
		s.logger.Error("render drag preview", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, dragResponse{
		Type:        payload.DocType(),
		UUID:        payload.UUID(),
		PreviewHTML: html,
	})
}

// endDrag releases the live drag preview.
func (s *Server) endDrag(w http.ResponseWriter, _ *http.Request) {
	s.drag.End()
	w.WriteHeader(http.StatusNoContent)
}

// healthz reports component health.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleDomainError maps domain sentinels onto HTTP statuses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func viewerLabel(v domain.Viewer) string {
	if v.Privileged {
		return "privileged"
	}
	return "public"
}

func queryOutcome(rows []domdir.RowState) string {
	for i := range rows {
		if rows[i].HasMatches() {
			return "hits"
		}
	}
	return "empty"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
