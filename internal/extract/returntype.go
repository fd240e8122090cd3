package extract

import (
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

var returnTypeLevels = map[string]bool{"h2": true, "h3": true, "h4": true}

// ReturnType extracts the schema name an endpoint returns: the first
// hyperlink text under the "Return type" heading that follows the
// endpoint's declaration. Empty when no heading or link is found.
func ReturnType(doc *docmodel.Document, method, path string) string {
	for _, decl := range Locate(doc, method, path) {
		h := findHeading(doc, decl, returnTypeWindow, returnTypeLevels, func(t string) bool {
			return strings.Contains(t, "return type")
		})
		if h == nil {
			continue
		}
		// The link usually sits in the very next element, wrapped in a
		// div or p; scan a few to be safe.
		for _, e := range doc.After(h, 5) {
			if name := strings.TrimSpace(e.LinkText()); name != "" {
				return name
			}
		}
	}
	return ""
}
