package spec

import (
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
	"github.com/schedtools/slurmspec/internal/extract"
	"github.com/schedtools/slurmspec/internal/schema"
)

// Options controls document assembly. Zero values fall back to the Slurm
// REST API defaults.
type Options struct {
	// ServerURL is stamped into the servers list; it plays no part in
	// extraction.
	ServerURL string

	Title       string
	Description string
	Version     string

	// ExpandRefs replaces named schema pointers with inlined, cycle-safe
	// structures after assembly.
	ExpandRefs bool
}

func (o Options) withDefaults() Options {
	if o.ServerURL == "" {
		o.ServerURL = "http://localhost:6820"
	}
	if o.Title == "" {
		o.Title = "Slurm REST API"
	}
	if o.Description == "" {
		o.Description = "REST API for Slurm Workload Manager"
	}
	if o.Version == "" {
		o.Version = "v0.0.44"
	}
	return o
}

// Generate assembles an OpenAPI document from parsed API documentation.
// Every declared endpoint is visited in document order; extraction
// failures degrade to generic schemas rather than aborting the run.
func Generate(doc *docmodel.Document, opts Options) *Document {
	opts = opts.withDefaults()
	out := skeleton(opts)
	reg := schema.NewRegistry()

	for _, ep := range extract.Endpoints(doc) {
		facts := extract.Extract(doc, ep.Method, ep.Path)
		path := normalizePath(ep.Path)
		if out.Paths[path] == nil {
			out.Paths[path] = PathItem{}
		}

		respSchema := responseSchema(facts, reg)

		op := &Operation{
			Tags:    []string{tagFor(path)},
			Summary: strings.ToUpper(ep.Method) + " " + path,
			Responses: map[string]Response{
				"200": {
					Description: "Successful operation",
					Content:     jsonContent(respSchema),
				},
				"default": {
					Description: "Error response",
					Content:     jsonContent(respSchema),
				},
			},
		}

		if ep.Method == "get" {
			for _, qp := range facts.QueryParams {
				op.Parameters = append(op.Parameters, Parameter{
					Name:        qp.Name,
					In:          "query",
					Required:    qp.Required,
					Schema:      &schema.Node{Type: qp.Type},
					Description: qp.Description,
				})
			}
		}

		if isMutating(ep.Method) {
			op.RequestBody = &RequestBody{Content: jsonContent(requestSchema(facts))}
		}

		out.Paths[path][ep.Method] = op
	}

	reg.Finalize()
	out.Components.Schemas = reg.Schemas()

	if opts.ExpandRefs {
		out = out.ExpandRefs()
	}
	return out
}

// responseSchema builds the response schema for an endpoint and records
// its return type in the registry. With an example in hand the schema is
// inlined and also stored under the return type's name; without one a
// named pointer is emitted for later resolution. No return type at all
// degrades to a generic object.
func responseSchema(facts extract.Facts, reg *schema.Registry) *schema.Node {
	if facts.ReturnType == "" {
		return &schema.Node{Type: "object"}
	}
	reg.Record(facts.ReturnType, facts.ResponseExample)
	if facts.ResponseExample == "" {
		return schema.Ref(facts.ReturnType)
	}
	s := schema.Infer(facts.ResponseExample)
	s.Description = "Schema for " + facts.ReturnType
	reg.Add(facts.ReturnType, s)
	return s
}

// requestSchema prefers a dedicated request example, falls back to the
// response example's structure, and lastly to a generic object.
func requestSchema(facts extract.Facts) *schema.Node {
	switch {
	case facts.RequestExample != "":
		return schema.Infer(facts.RequestExample)
	case facts.ResponseExample != "":
		return schema.Infer(facts.ResponseExample)
	default:
		return &schema.Node{Type: "object"}
	}
}

func skeleton(opts Options) *Document {
	return &Document{
		OpenAPI: "3.0.0",
		Info: Info{
			Title:       opts.Title,
			Description: opts.Description,
			Version:     opts.Version,
			Contact:     &Contact{Name: "SchedMD", URL: "https://www.schedmd.com"},
		},
		Servers: []Server{
			{URL: opts.ServerURL, Description: "Slurm REST API server"},
		},
		Security: []map[string][]string{
			{"ApiKeyAuth": {}},
			{"BasicAuth": {}},
		},
		Components: Components{
			SecuritySchemes: map[string]SecurityScheme{
				"ApiKeyAuth": {
					Type:        "apiKey",
					In:          "header",
					Name:        "X-SLURM-USER-TOKEN",
					Description: "Slurm user authentication token",
				},
				"BasicAuth": {Type: "http", Scheme: "basic"},
			},
			Schemas: map[string]*schema.Node{},
		},
		Paths: map[string]PathItem{},
		Tags: []Tag{
			{Name: "slurm", Description: "Slurm controller operations"},
			{Name: "slurmdb", Description: "Slurm database operations"},
		},
	}
}

func jsonContent(s *schema.Node) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}

func tagFor(path string) string {
	if strings.Contains(path, "/slurmdb/") {
		return "slurmdb"
	}
	return "slurm"
}

func isMutating(method string) bool {
	return method == "post" || method == "put" || method == "patch"
}

func normalizePath(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		p = "/"
	}
	return p
}
