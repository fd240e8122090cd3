package extract

import (
	"regexp"
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

var exampleLevels = map[string]bool{"h2": true, "h3": true, "h4": true, "h5": true}

// Response examples sit under generic headings; request examples need
// keywords mentioning request/body/input specifically, because a response
// example often appears first under the same endpoint.
var (
	responseKeywords = []string{"example data", "example", "response", "output"}
	requestKeywords  = []string{
		"example request",
		"request body",
		"request data",
		"input data",
		"input body",
		"request",
	}
)

var payloadRe = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)

// ResponseExample extracts the raw response example payload documented
// for an endpoint. Empty when none is found in the window.
func ResponseExample(doc *docmodel.Document, method, path string) string {
	return example(doc, method, path, responseKeywords, true)
}

// RequestExample extracts the raw request body example documented for an
// endpoint. Unlike the response scan, it keeps looking past a matching
// heading whose section yields no payload.
func RequestExample(doc *docmodel.Document, method, path string) string {
	return example(doc, method, path, requestKeywords, false)
}

func example(doc *docmodel.Document, method, path string, keywords []string, firstHeadingOnly bool) string {
	for _, decl := range Locate(doc, method, path) {
		for _, e := range doc.After(decl, exampleWindow) {
			if isEndpointDecl(e) {
				break
			}
			if !exampleLevels[e.Tag] || !containsAny(strings.ToLower(e.Text), keywords) {
				continue
			}
			if payload := payloadAfter(doc, e); payload != "" {
				return payload
			}
			if firstHeadingOnly {
				break
			}
		}
	}
	return ""
}

// payloadAfter scans the elements following a matched heading for text
// that looks like a JSON object or array. Content-Type header lines are
// skipped rather than treated as payload.
func payloadAfter(doc *docmodel.Document, heading *docmodel.Element) string {
	for _, e := range doc.After(heading, payloadWindow) {
		lower := strings.ToLower(e.Text)
		if strings.Contains(lower, "content-type") && strings.Contains(lower, "application/json") {
			continue
		}

		// The element itself is preformatted or code content.
		if e.Tag == "pre" || e.Tag == "code" {
			if startsJSON(e.Text) {
				return e.Text
			}
		}

		// A code/pre child of the element.
		if c := strings.TrimSpace(e.CodeText()); startsJSON(c) {
			return c
		}

		// JSON embedded directly in the element's text.
		if e.Tag == "p" || e.Tag == "div" || e.Tag == "pre" {
			if m := payloadRe.FindString(e.Text); m != "" {
				return m
			}
			if startsJSON(e.Text) {
				return e.Text
			}
		}
	}
	return ""
}

func startsJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
