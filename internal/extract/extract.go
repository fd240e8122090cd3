// Package extract recovers structured facts about documented HTTP
// endpoints from a flattened documentation page: the schema name an
// endpoint returns, its query parameters, and raw example payloads.
//
// Every extractor shares the same shape: walk forward from the endpoint's
// declaration through a bounded window of elements, look for a heading
// matching a keyword set, then scrape the content that follows. Nothing
// here returns an error — a fact that cannot be found is an absent fact,
// which is the common case in the observed corpus.
package extract

import (
	"regexp"
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

// Forward-scan windows, tuned against the Slurm REST API documentation.
// The larger example window accommodates prose between an endpoint's
// declaration and its example payloads.
const (
	returnTypeWindow = 30
	queryParamWindow = 50
	exampleWindow    = 150
	payloadWindow    = 10
)

var verbRe = regexp.MustCompile(`^(?i)(get|post|put|delete|patch)\s+(/\S+)`)

// Endpoint identifies one documented method+path combination.
type Endpoint struct {
	Method string // lowercase HTTP verb
	Path   string // as declared, possibly with a trailing slash
}

// QueryParam describes one query parameter scraped from documentation.
type QueryParam struct {
	Name        string
	Required    bool
	Type        string // "string" or "integer"
	Description string
	Default     string // empty when the docs state no default
}

// Facts bundles everything extracted for one endpoint. Every field is
// optional; absence is an expected outcome, not an error.
type Facts struct {
	ReturnType      string
	QueryParams     []QueryParam
	ResponseExample string
	RequestExample  string
}

// Extract gathers all facts for one endpoint. Query parameters are only
// documented for GET endpoints and request examples only for mutating
// ones, so the corresponding scans are skipped elsewhere.
func Extract(doc *docmodel.Document, method, path string) Facts {
	f := Facts{
		ReturnType:      ReturnType(doc, method, path),
		ResponseExample: ResponseExample(doc, method, path),
	}
	switch strings.ToLower(method) {
	case "get":
		f.QueryParams = QueryParams(doc, method, path)
	case "post", "put", "patch":
		f.RequestExample = RequestExample(doc, method, path)
	}
	return f
}

// isEndpointDecl reports whether an element declares an endpoint. Hitting
// one mid-scan means the window ran into the next endpoint's documentation.
func isEndpointDecl(e *docmodel.Element) bool {
	return e.Tag == "code" && verbRe.MatchString(e.Text)
}

// normalizePath strips a trailing slash so /nodes and /nodes/ match.
func normalizePath(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		p = "/"
	}
	return p
}

// findHeading walks forward from start looking for a heading whose
// lowercased text satisfies accept. The scan gives up when the window is
// exhausted or another endpoint declaration appears first.
func findHeading(doc *docmodel.Document, start *docmodel.Element, window int, levels map[string]bool, accept func(string) bool) *docmodel.Element {
	for _, e := range doc.After(start, window) {
		if isEndpointDecl(e) {
			return nil
		}
		if levels[e.Tag] && accept(strings.ToLower(e.Text)) {
			return e
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
