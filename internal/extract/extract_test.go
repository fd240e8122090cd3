package extract

import (
	"strings"
	"testing"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

// sampleHTML mimics the shape of the Slurm REST API documentation: each
// endpoint is declared in a code span, followed by headings for return
// type, query parameters, and example data.
const sampleHTML = `
<h2>Slurm REST API</h2>

<code>GET /slurm/v0.0.44/nodes/</code>
<h3>Return type</h3>
<p><a href="#v0.0.44_nodes_resp">v0.0.44_nodes_resp</a></p>
<h3>Query parameters</h3>
<div><p>update_time (optional) &mdash; filter by update time. Default: 0</p></div>
<div><p>flags (optional) query flags</p></div>
<h3>Example data</h3>
<p>Content-Type: application/json</p>
<pre>{"nodes": [{"name": "node01", "cpus": 16}], "last_update": "1700000000"}</pre>

<code>POST /slurm/v0.0.44/job/submit</code>
<h3>Return type</h3>
<p><a href="#v0.0.44_job_submit_resp">v0.0.44_job_submit_resp</a></p>
<h3>Example data</h3>
<pre>{"job_id": 42, "step_id": "batch"}</pre>
<h4>Example request</h4>
<pre>{"script": "#!/bin/bash\nsleep 30", "job": {"partition": "debug"}}</pre>

<code>DELETE /slurmdb/v0.0.44/association</code>
<p>Removes an association. No sections follow this one.</p>
`

func parseSample(t *testing.T) *docmodel.Document {
	t.Helper()
	doc, err := docmodel.Parse(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestLocate_TrailingSlashInsensitive(t *testing.T) {
	doc := parseSample(t)

	with := Locate(doc, "get", "/slurm/v0.0.44/nodes/")
	without := Locate(doc, "get", "/slurm/v0.0.44/nodes")
	if len(with) != 1 || len(without) != 1 {
		t.Fatalf("expected 1 match each, got %d and %d", len(with), len(without))
	}
	if with[0] != without[0] {
		t.Error("trailing slash changed the matched node")
	}
}

func TestLocate_CaseInsensitiveMethod(t *testing.T) {
	doc := parseSample(t)

	if got := Locate(doc, "GET", "/slurm/v0.0.44/nodes"); len(got) != 1 {
		t.Errorf("uppercase method: expected 1 match, got %d", len(got))
	}
	if got := Locate(doc, "Delete", "/slurmdb/v0.0.44/association"); len(got) != 1 {
		t.Errorf("mixed-case method: expected 1 match, got %d", len(got))
	}
}

func TestLocate_NoMatchIsEmpty(t *testing.T) {
	doc := parseSample(t)

	if got := Locate(doc, "get", "/slurm/v0.0.44/partitions"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
	if got := Locate(doc, "post", "/slurm/v0.0.44/nodes"); len(got) != 0 {
		t.Errorf("wrong method: expected no matches, got %d", len(got))
	}
}

func TestEndpoints_DocumentOrder(t *testing.T) {
	doc := parseSample(t)

	eps := Endpoints(doc)
	want := []Endpoint{
		{Method: "get", Path: "/slurm/v0.0.44/nodes/"},
		{Method: "post", Path: "/slurm/v0.0.44/job/submit"},
		{Method: "delete", Path: "/slurmdb/v0.0.44/association"},
	}
	if len(eps) != len(want) {
		t.Fatalf("expected %d endpoints, got %d", len(want), len(eps))
	}
	for i, w := range want {
		if eps[i] != w {
			t.Errorf("endpoint[%d]: expected %+v, got %+v", i, w, eps[i])
		}
	}
}

func TestEndpoints_DedupesDeclarations(t *testing.T) {
	src := `<code>GET /jobs</code><p>first</p><code>GET /jobs/</code><p>second</p>`
	doc, err := docmodel.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eps := Endpoints(doc)
	if len(eps) != 1 {
		t.Fatalf("expected 1 endpoint after dedupe, got %d", len(eps))
	}
	if eps[0].Path != "/jobs" {
		t.Errorf("expected first declaration kept, got %q", eps[0].Path)
	}
}

func TestReturnType(t *testing.T) {
	doc := parseSample(t)

	if got := ReturnType(doc, "get", "/slurm/v0.0.44/nodes/"); got != "v0.0.44_nodes_resp" {
		t.Errorf("expected %q, got %q", "v0.0.44_nodes_resp", got)
	}
	if got := ReturnType(doc, "post", "/slurm/v0.0.44/job/submit"); got != "v0.0.44_job_submit_resp" {
		t.Errorf("expected %q, got %q", "v0.0.44_job_submit_resp", got)
	}
}

func TestReturnType_MissingSection(t *testing.T) {
	doc := parseSample(t)

	if got := ReturnType(doc, "delete", "/slurmdb/v0.0.44/association"); got != "" {
		t.Errorf("expected empty return type, got %q", got)
	}
}

func TestQueryParams_SpecimenSection(t *testing.T) {
	doc := parseSample(t)

	params := QueryParams(doc, "get", "/slurm/v0.0.44/nodes/")
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d: %+v", len(params), params)
	}

	ut := params[0]
	if ut.Name != "update_time" {
		t.Errorf("expected name update_time, got %q", ut.Name)
	}
	if ut.Required {
		t.Error("expected update_time to be optional")
	}
	if ut.Type != "integer" {
		t.Errorf("expected integer type (name mentions time), got %q", ut.Type)
	}
	if ut.Description != "filter by update time." {
		t.Errorf("unexpected description %q", ut.Description)
	}
	if ut.Default != "0" {
		t.Errorf("expected default %q, got %q", "0", ut.Default)
	}

	fl := params[1]
	if fl.Name != "flags" || fl.Type != "string" || fl.Required {
		t.Errorf("unexpected flags param: %+v", fl)
	}
	if fl.Default != "" {
		t.Errorf("expected no default, got %q", fl.Default)
	}
}

func TestQueryParams_RequiredWhenNotOptional(t *testing.T) {
	src := `<code>GET /x</code><h3>Query parameters</h3><p>job_id (required) the job to query</p>`
	doc, err := docmodel.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := QueryParams(doc, "get", "/x")
	if len(params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(params))
	}
	if !params[0].Required {
		t.Error("expected job_id to be required")
	}
}

func TestQueryParams_StopsAtNextHeading(t *testing.T) {
	src := `<code>GET /x</code>
<h3>Query parameters</h3>
<p>alpha (optional) first</p>
<h3>Example data</h3>
<p>beta (optional) looks like a param but is not one</p>`
	doc, err := docmodel.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := QueryParams(doc, "get", "/x")
	if len(params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(params))
	}
	if params[0].Name != "alpha" {
		t.Errorf("expected alpha, got %q", params[0].Name)
	}
}

func TestQueryParams_DedupesWrapperAndChild(t *testing.T) {
	// The flattened stream visits both the div and its p with identical
	// text; only one descriptor should come out.
	doc := parseSample(t)

	params := QueryParams(doc, "get", "/slurm/v0.0.44/nodes")
	names := map[string]int{}
	for _, p := range params {
		names[p.Name]++
	}
	for name, n := range names {
		if n > 1 {
			t.Errorf("parameter %q extracted %d times", name, n)
		}
	}
}

func TestResponseExample_SkipsContentTypeHeader(t *testing.T) {
	doc := parseSample(t)

	got := ResponseExample(doc, "get", "/slurm/v0.0.44/nodes/")
	if !strings.HasPrefix(got, `{"nodes"`) {
		t.Errorf("expected nodes payload, got %q", got)
	}
}

func TestResponseExample_StopsAtNextEndpoint(t *testing.T) {
	// A foreign endpoint declaration inside the scan window hides the
	// payload that follows it, even though the payload is valid JSON.
	src := `<code>GET /a</code>
<p>documentation for /a</p>
<code>GET /b</code>
<h3>Example data</h3>
<pre>{"belongs_to": "b"}</pre>`
	doc, err := docmodel.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ResponseExample(doc, "get", "/a"); got != "" {
		t.Errorf("expected no example for /a, got %q", got)
	}
	if got := ResponseExample(doc, "get", "/b"); got != `{"belongs_to": "b"}` {
		t.Errorf("expected /b payload, got %q", got)
	}
}

func TestRequestExample_PrefersRequestHeading(t *testing.T) {
	doc := parseSample(t)

	got := RequestExample(doc, "post", "/slurm/v0.0.44/job/submit")
	if !strings.HasPrefix(got, `{"script"`) {
		t.Errorf("expected request payload, got %q", got)
	}

	// The response extractor picks the earlier generic example.
	resp := ResponseExample(doc, "post", "/slurm/v0.0.44/job/submit")
	if !strings.HasPrefix(resp, `{"job_id"`) {
		t.Errorf("expected response payload, got %q", resp)
	}
}

func TestRequestExample_AbsentForUndocumentedBody(t *testing.T) {
	doc := parseSample(t)

	if got := RequestExample(doc, "delete", "/slurmdb/v0.0.44/association"); got != "" {
		t.Errorf("expected no request example, got %q", got)
	}
}

func TestResponseExample_JSONEmbeddedInParagraph(t *testing.T) {
	src := `<code>GET /x</code>
<h3>Example data</h3>
<p>The response looks like {"count": 3} for small clusters.</p>`
	doc, err := docmodel.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ResponseExample(doc, "get", "/x"); got != `{"count": 3}` {
		t.Errorf("expected embedded payload, got %q", got)
	}
}

func TestExtract_Bundle(t *testing.T) {
	doc := parseSample(t)

	facts := Extract(doc, "get", "/slurm/v0.0.44/nodes/")
	if facts.ReturnType != "v0.0.44_nodes_resp" {
		t.Errorf("unexpected return type %q", facts.ReturnType)
	}
	if len(facts.QueryParams) != 2 {
		t.Errorf("expected 2 query params, got %d", len(facts.QueryParams))
	}
	if facts.ResponseExample == "" {
		t.Error("expected response example")
	}
	if facts.RequestExample != "" {
		t.Error("GET endpoints should not get a request example scan")
	}

	facts = Extract(doc, "post", "/slurm/v0.0.44/job/submit")
	if facts.RequestExample == "" {
		t.Error("expected request example for POST")
	}
	if len(facts.QueryParams) != 0 {
		t.Error("POST endpoints should not get a query param scan")
	}
}

func TestExtract_AllAbsentIsValid(t *testing.T) {
	doc := parseSample(t)

	facts := Extract(doc, "delete", "/slurmdb/v0.0.44/association")
	if facts.ReturnType != "" || facts.ResponseExample != "" || len(facts.QueryParams) != 0 {
		t.Errorf("expected empty facts, got %+v", facts)
	}
}
