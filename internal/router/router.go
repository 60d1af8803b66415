// Package router validates incoming add-layer requests and drives the
// resolver, submission, and event pipeline.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/assets"
	"github.com/atlascene/layer-composer/internal/events"
	"github.com/atlascene/layer-composer/internal/layer"
	"github.com/atlascene/layer-composer/internal/layer/geo"
	"github.com/atlascene/layer-composer/internal/logger"
	"github.com/atlascene/layer-composer/internal/observability"
	"github.com/atlascene/layer-composer/internal/submit"
)

// LayerRequest is the raw form state the editor posts on explicit submission.
// Layers holds committed sub-layer names; PendingLayer is the text still in
// the input row, committed here with blur semantics before the gate runs.
type LayerRequest struct {
	Format       string               `json:"format"`
	Mode         string               `json:"mode"`
	Source       string               `json:"source"`
	Name         string               `json:"name,omitempty"`
	Common       bool                 `json:"common,omitempty"`
	CSV          *layer.CSVParams     `json:"csv,omitempty"`
	GeoJSON      *layer.GeoJSONParams `json:"geojson,omitempty"`
	Layers       []string             `json:"layers,omitempty"`
	PendingLayer string               `json:"pendingLayer,omitempty"`
}

// AssetResolver resolves an asset reference to its metadata.
type AssetResolver interface {
	Lookup(ctx context.Context, ref string) (assets.Asset, error)
}

// EventPublisher pushes scene-change events; nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type Handler struct {
	log       *zerolog.Logger
	submitter submit.Interface
	resolver  AssetResolver
	publisher EventPublisher
	h3Res     int
}

func NewHandler(log *zerolog.Logger, submitter submit.Interface, resolver AssetResolver, publisher EventPublisher, h3Res int) *Handler {
	return &Handler{
		log:       log,
		submitter: submitter,
		resolver:  resolver,
		publisher: publisher,
		h3Res:     h3Res,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// AddLayer is POST /scenes/{sceneID}/layers.
func (h *Handler) AddLayer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
	h.addLayer(sw, r)
	observability.ObserveHTTP(r.Method, "/scenes/{sceneID}/layers", sw.code, time.Since(start).Seconds())
}

func (h *Handler) addLayer(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "sceneID")
	if sceneID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing scene id"})
		return
	}
	ctx := logger.WithScene(r.Context(), sceneID)

	var req LayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	kind, ok := layer.ParseKind(req.Format)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported format %q", req.Format)})
		return
	}
	ctx = logger.WithFormat(ctx, string(kind))

	loc, p, err := resolveForm(kind, req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := gate(loc, p, req.Common); err != nil {
		observability.IncSubmission(string(kind), "rejected")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	name := h.explicitName(ctx, req, loc)

	var cfg layer.Config
	if req.Common {
		cfg = layer.BuildCommon(loc, name, p)
	} else {
		cfg = layer.Build(loc, name, p)
	}

	if err := h.submitter.Submit(ctx, sceneID, cfg); err != nil {
		// surfaced, not swallowed: the editor keeps the form open
		observability.IncSubmission(string(kind), "error")
		logger.FromContext(ctx, h.log).Error().Err(err).Msg("layer submission failed")
		var apiErr *submit.APIError
		if errors.As(err, &apiErr) {
			writeJSON(w, apiErr.Status, errorResponse{Error: apiErr.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	observability.IncSubmission(string(kind), "ok")

	h.publishCreated(ctx, sceneID, kind, loc, cfg)
	writeJSON(w, http.StatusCreated, cfg)
}

// resolveForm rebuilds the form-session state from the posted payload.
func resolveForm(kind layer.Kind, req LayerRequest) (*layer.ContentLocator, layer.Params, error) {
	loc := layer.NewLocator(kind)
	if req.Mode != "" {
		mode, ok := layer.ParseMode(req.Mode)
		if !ok {
			return nil, layer.Params{}, fmt.Errorf("unknown source mode %q", req.Mode)
		}
		if !kind.Supports(mode) {
			return nil, layer.Params{}, fmt.Errorf("format %s does not accept %s sources", kind, mode)
		}
		loc.SetMode(mode)
	}
	loc.SetRaw(req.Source)

	p := layer.Params{CSV: req.CSV, GeoJSON: req.GeoJSON}
	if kind.HasLayerList() {
		var l layer.NameList
		for _, n := range req.Layers {
			l.Add(n)
		}
		l.SetPending(req.PendingLayer)
		l.Commit()
		p.Layers = &l
	}
	return loc, p, nil
}

func gate(loc *layer.ContentLocator, p layer.Params, common bool) error {
	if common {
		return layer.ValidateCommon(loc, p)
	}
	return layer.Validate(loc, p)
}

// explicitName falls back to the picked asset's display name when the editor
// sent none, so asset-backed layers don't end up with random titles.
func (h *Handler) explicitName(ctx context.Context, req LayerRequest, loc *layer.ContentLocator) string {
	if req.Name != "" || loc.Mode() != layer.ModeAsset || h.resolver == nil {
		return req.Name
	}
	a, err := h.resolver.Lookup(ctx, loc.Raw())
	if err != nil {
		logger.FromContext(ctx, h.log).Warn().Err(err).Msg("asset lookup failed")
		return ""
	}
	return a.Name
}

func (h *Handler) publishCreated(ctx context.Context, sceneID string, kind layer.Kind, loc *layer.ContentLocator, cfg layer.Config) {
	if h.publisher == nil {
		return
	}
	e := events.Event{
		Version: 1,
		Op:      events.OpLayerCreated,
		Scene:   sceneID,
		Layer:   cfg.Title,
		Format:  string(kind),
		TS:      time.Now().UTC(),
	}
	if kind == layer.KindGeoJSON && loc.Mode() == layer.ModeValue {
		if bound, ok := geo.Bound(loc.Raw()); ok {
			cells, err := geo.CellsForBound(bound, h.h3Res)
			if err != nil {
				logger.FromContext(ctx, h.log).Warn().Err(err).Msg("cell cover failed")
			} else {
				e.H3Cells = cells
			}
		}
	}
	if err := h.publisher.Publish(ctx, e); err != nil {
		// best effort only; the layer is already created
		logger.FromContext(ctx, h.log).Warn().Err(err).Msg("scene event publish failed")
	}
}

// ListAssets is GET /assets, backing the editor's asset picker. The ext
// parameter carries the accepted format filters as a comma-separated list.
func (h *Handler) ListAssets(catalog *assets.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		listAssets(sw, r, catalog)
		observability.ObserveHTTP(r.Method, "/assets", sw.code, time.Since(start).Seconds())
	}
}

func listAssets(w http.ResponseWriter, r *http.Request, catalog *assets.Catalog) {
	var exts []string
	if raw := r.URL.Query().Get("ext"); raw != "" {
		exts = splitComma(raw)
	}
	out, err := catalog.List(r.Context(), exts)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
