package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/facade/pkg/buildinfo"
	"github.com/matzehuels/facade/pkg/errors"
	"github.com/matzehuels/facade/pkg/pipeline"
	"github.com/matzehuels/facade/pkg/store"
)

// maxRequestBody bounds plan creation payloads (vertices and config).
const maxRequestBody = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	p, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewRecord(p)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("created plan", "id", rec.ID, "name", rec.Name, "hash", rec.Hash)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": recs})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts, format, err := renderOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), rec.Plan, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// renderOptions translates render query parameters into pipeline
// options for a single format.
func renderOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, "", err
	}

	opts := pipeline.Options{
		Formats:    []string{format},
		Style:      q.Get("style"),
		ShowLabels: q.Get("labels") == "true",
		ShowGrid:   q.Get("grid") == "true",
	}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return pipeline.Options{}, "", errors.New(errors.ErrCodeInvalidInput,
				"scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	if v := q.Get("floor"); v != "" {
		floor, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, "", errors.New(errors.ErrCodeInvalidInput,
				"floor must be an integer, got %q", v)
		}
		opts.Floor = &floor
	}

	return opts, format, nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}
