package extract

import (
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

// Locate finds every code span declaring the given endpoint, in document
// order. Method matching is case-insensitive and a trailing slash on
// either side of the path is ignored. An empty result is not an error;
// callers fall back to defaults.
func Locate(doc *docmodel.Document, method, path string) []*docmodel.Element {
	want := normalizePath(path)
	var out []*docmodel.Element
	for _, e := range doc.CodeSpans() {
		m := verbRe.FindStringSubmatch(e.Text)
		if m == nil {
			continue
		}
		if !strings.EqualFold(m[1], method) {
			continue
		}
		if normalizePath(m[2]) != want {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Endpoints enumerates every endpoint declared in the document, in
// document order. Duplicate declarations of the same method+path are
// collapsed to the first occurrence; the declared path is kept verbatim
// so extraction can match it exactly.
func Endpoints(doc *docmodel.Document) []Endpoint {
	seen := make(map[Endpoint]bool)
	var out []Endpoint
	for _, e := range doc.CodeSpans() {
		m := verbRe.FindStringSubmatch(e.Text)
		if m == nil {
			continue
		}
		ep := Endpoint{Method: strings.ToLower(m[1]), Path: m[2]}
		key := Endpoint{Method: ep.Method, Path: normalizePath(ep.Path)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ep)
	}
	return out
}
