package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/pielabel/pkg/chart"
	"github.com/matzehuels/pielabel/pkg/errors"
	"github.com/matzehuels/pielabel/pkg/httputil"
	"github.com/matzehuels/pielabel/pkg/pipeline"
	"github.com/matzehuels/pielabel/pkg/render"
)

// Response headers set by /v1/render.
const (
	HeaderCache     = "X-Cache"
	HeaderDrawn     = "X-Labels-Drawn"
	HeaderTruncated = "X-Labels-Truncated"
	HeaderSkipped   = "X-Labels-Skipped"
)

// overrides are the optional per-request settings shared by both endpoints.
type overrides struct {
	Config json.RawMessage `json:"config,omitempty"`
	Style  json.RawMessage `json:"style,omitempty"`
}

// renderRequest is a chart document plus overrides.
type renderRequest struct {
	chart.Spec
	overrides
}

type hitRequest struct {
	Chart *chart.Spec `json:"chart"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	overrides
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := render.FormatSVG
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := render.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	var req renderRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(&req.Spec, req.overrides)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []render.Format{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cache := "miss"
	if result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit {
		cache = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set(HeaderCache, cache)
	h.Set(HeaderDrawn, strconv.Itoa(result.Stats.Drawn))
	h.Set(HeaderTruncated, strconv.Itoa(result.Stats.Truncated))
	h.Set(HeaderSkipped, strconv.Itoa(result.Stats.Skipped))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	var req hitRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Chart == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "chart is required"))
		return
	}
	opts, err := s.options(req.Chart, req.overrides)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ev, err := s.runner.Hit(r.Context(), opts, req.X, req.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ev)
}

// options builds pipeline options from the server defaults and the request
// overrides. Override objects are decoded over a copy of the defaults so
// absent fields keep their default value.
func (s *Server) options(spec *chart.Spec, o overrides) (pipeline.Options, error) {
	layout := s.layout
	if len(o.Config) > 0 {
		if err := json.Unmarshal(o.Config, &layout); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
		}
	}
	// Callbacks never travel over the wire.
	layout.OnClick = nil

	style := s.style
	if len(o.Style) > 0 {
		if err := json.Unmarshal(o.Style, &style); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode style")
		}
	}

	return pipeline.Options{
		Chart:  spec,
		Layout: &layout,
		Style:  style,
		Logger: s.logger,
	}, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		return
	}
	s.logger.Debug("rejected request", "path", r.URL.Path, "status", status, "error", err)
}
