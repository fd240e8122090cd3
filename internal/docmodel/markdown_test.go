package docmodel

import (
	"strings"
	"testing"
)

const sampleMarkdown = "## Endpoints\n" +
	"\n" +
	"`GET /slurm/v0.0.44/diag/`\n" +
	"\n" +
	"### Return type\n" +
	"\n" +
	"[v0.0.44_diag_resp](#diag)\n" +
	"\n" +
	"### Example data\n" +
	"\n" +
	"```json\n" +
	"{\"statistics\": {\"parts_packed\": 1}}\n" +
	"```\n"

func TestParseMarkdown_Stream(t *testing.T) {
	doc, err := ParseMarkdown([]byte(sampleMarkdown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tags []string
	for _, e := range doc.Elements() {
		tags = append(tags, e.Tag)
	}
	want := []string{"h2", "p", "code", "h3", "p", "a", "h3", "pre"}
	if strings.Join(tags, " ") != strings.Join(want, " ") {
		t.Fatalf("expected stream %v, got %v", want, tags)
	}
}

func TestParseMarkdown_CodeSpanText(t *testing.T) {
	doc, err := ParseMarkdown([]byte(sampleMarkdown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := doc.CodeSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 code span, got %d", len(spans))
	}
	if spans[0].Text != "GET /slurm/v0.0.44/diag/" {
		t.Errorf("unexpected span text %q", spans[0].Text)
	}
}

func TestParseMarkdown_FencedBlockExcludesFence(t *testing.T) {
	doc, err := ParseMarkdown([]byte(sampleMarkdown))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pre *Element
	for _, e := range doc.Elements() {
		if e.Tag == "pre" {
			pre = e
		}
	}
	if pre == nil {
		t.Fatal("no pre element found")
	}
	if !strings.HasPrefix(pre.Text, "{") {
		t.Errorf("fence marker leaked into payload: %q", pre.Text)
	}
}

func TestParseMarkdown_ParagraphLinkText(t *testing.T) {
	doc, err := ParseMarkdown([]byte("intro [v0.0.44_jobs_resp](#jobs) outro\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	els := doc.Elements()
	if els[0].Tag != "p" {
		t.Fatalf("expected first element p, got %s", els[0].Tag)
	}
	if got := els[0].LinkText(); got != "v0.0.44_jobs_resp" {
		t.Errorf("expected link text, got %q", got)
	}
}

func TestParseMarkdown_HeadingLevels(t *testing.T) {
	doc, err := ParseMarkdown([]byte("# One\n\n##### Five\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	els := doc.Elements()
	if len(els) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(els))
	}
	if els[0].HeadingLevel() != 1 || els[1].HeadingLevel() != 5 {
		t.Errorf("unexpected levels: %d, %d", els[0].HeadingLevel(), els[1].HeadingLevel())
	}
}
