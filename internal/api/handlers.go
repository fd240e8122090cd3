package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/schedtools/slurmspec/internal/docmodel"
	"github.com/schedtools/slurmspec/internal/spec"
)

// handleGenerate turns a documentation page posted in the request body
// into an OpenAPI document. Query params: source (html|markdown),
// server_url, expand_refs, format (json|yaml).
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		jsonError(w, "request body is required", http.StatusBadRequest)
		return
	}

	s.generate(w, r, data)
}

// handleGenerateFromURL fetches the documentation server-side first. The
// url query param overrides the configured source.
func (s *Server) handleGenerateFromURL(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		url = s.cfg.DocsURL
	}

	data, err := s.fetcher.Get(r.Context(), url)
	if err != nil {
		s.log.Error("fetch failed", "url", url, "error", err)
		jsonError(w, "failed to fetch documentation", http.StatusBadGateway)
		return
	}

	s.generate(w, r, data)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, data []byte) {
	q := r.URL.Query()

	var (
		doc *docmodel.Document
		err error
	)
	if q.Get("source") == "markdown" {
		doc, err = docmodel.ParseMarkdown(data)
	} else {
		doc, err = docmodel.Parse(bytes.NewReader(data))
	}
	if err != nil {
		jsonError(w, "failed to parse documentation: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts := spec.Options{
		ServerURL:  q.Get("server_url"),
		ExpandRefs: q.Get("expand_refs") == "true",
	}
	if opts.ServerURL == "" {
		opts.ServerURL = s.cfg.ServerURL
	}

	out := spec.Generate(doc, opts)
	s.log.Info("generated spec",
		"endpoints", len(out.Paths),
		"schemas", len(out.Components.Schemas),
		"expand_refs", opts.ExpandRefs,
	)

	if q.Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		if err := spec.EncodeYAML(w, out); err != nil {
			s.log.Error("encode failed", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := spec.EncodeJSON(w, out); err != nil {
		s.log.Error("encode failed", "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
