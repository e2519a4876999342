package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lineagemap/pkg/buildinfo"
	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

// =============================================================================
// Stored families
// =============================================================================

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type putResponse struct {
	Name     string   `json:"name"`
	People   int      `json:"people"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handlePutTree(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	doc, warnings, err := family.Decode(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if doc.Meta.FamilyName == "" {
		doc.Meta.FamilyName = name
	}

	// Documents that cannot be laid out are rejected before they are stored.
	opts := pipeline.Options{Family: name, Logger: s.logger}
	opts.SetLayoutDefaults()
	g, err := pipeline.Index(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Put(r.Context(), name, doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, putResponse{
		Name:     name,
		People:   len(doc.People),
		Warnings: append(warnings, g.Warnings()...),
	})
}

func (s *Server) handleTreeLayout(w http.ResponseWriter, r *http.Request) {
	s.serveStored(w, r, pipeline.FormatJSON)
}

func (s *Server) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	s.serveStored(w, r, pipeline.FormatSVG)
}

func (s *Server) serveStored(w http.ResponseWriter, r *http.Request, format string) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveRendered(w, r, doc, name, format)
}

type visibilityRequest struct {
	Public *bool `json:"public"`
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Public == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, `"public" is required`))
		return
	}
	vis, err := s.store.SetVisibility(r.Context(), chi.URLParam(r, "name"), *req.Public)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vis)
}

func (s *Server) handlePublic(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.GetPublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Samples
// =============================================================================

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"samples": s.samples.Names()})
}

func (s *Server) handleSampleTree(w http.ResponseWriter, r *http.Request) {
	doc, err := s.samples.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSampleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveSample(w, r, pipeline.FormatJSON)
}

func (s *Server) handleSampleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveSample(w, r, pipeline.FormatSVG)
}

func (s *Server) serveSample(w http.ResponseWriter, r *http.Request, format string) {
	id := chi.URLParam(r, "id")
	doc, err := s.samples.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveRendered(w, r, doc, id, format)
}

// =============================================================================
// Rendering
// =============================================================================

func (s *Server) serveRendered(w http.ResponseWriter, r *http.Request, doc *family.Document, name, format string) {
	opts, err := s.renderOptions(r, name, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.render(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == pipeline.FormatSVG {
		writeRaw(w, "image/svg+xml", data)
		return
	}
	writeRaw(w, "application/json", data)
}

func (s *Server) render(ctx context.Context, doc *family.Document, opts pipeline.Options) ([]byte, error) {
	res, err := s.runner.Execute(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts[opts.Formats[0]], nil
}

// renderOptions builds pipeline options from the query string on top of the
// server's base geometry.
func (s *Server) renderOptions(r *http.Request, name, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Family:  name,
		VizType: q.Get("viz"),
		Style:   q.Get("style"),
		Layout:  s.layout,
		Formats: []string{format},
		Logger:  s.logger,
	}
	flags := []struct {
		key string
		dst *bool
	}{
		{"unions", &opts.Unions},
		{"panzoom", &opts.PanZoom},
		{"curved", &opts.Layout.Curved},
		{"refresh", &opts.Refresh},
	}
	for _, f := range flags {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", f.key, v)
		}
		*f.dst = b
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
