package extract

import (
	"regexp"
	"strings"

	"github.com/schedtools/slurmspec/internal/docmodel"
)

var queryParamLevels = map[string]bool{"h2": true, "h3": true, "h4": true}

// Parameter definitions look like "update_time (optional) — filter by
// update time. Default: 0".
var (
	paramRe   = regexp.MustCompile(`^(\w+)\s*\(([^)]+)\)`)
	defaultRe = regexp.MustCompile(`(?i)default:\s*`)
)

// QueryParams extracts the query parameters documented under the "Query
// parameters" heading that follows the endpoint's declaration. It walks
// the elements after the heading until the next heading of any level.
func QueryParams(doc *docmodel.Document, method, path string) []QueryParam {
	for _, decl := range Locate(doc, method, path) {
		h := findHeading(doc, decl, queryParamWindow, queryParamLevels, func(t string) bool {
			return strings.Contains(t, "query parameter")
		})
		if h == nil {
			continue
		}

		var params []QueryParam
		seen := make(map[string]bool)
		for _, e := range doc.After(h, queryParamWindow) {
			if e.IsHeading() {
				break
			}
			m := paramRe.FindStringSubmatch(e.Text)
			if m == nil {
				continue
			}
			name, qualifier := m[1], m[2]
			// The flattened stream visits a wrapper and its child with
			// identical text; keep the first.
			if seen[name] {
				continue
			}
			seen[name] = true

			desc, def := splitDefault(strings.TrimSpace(e.Text[len(m[0]):]))
			if desc == "" {
				desc = "Query parameter " + name
			}

			typ := "string"
			if strings.Contains(strings.ToLower(name), "time") ||
				strings.Contains(strings.ToLower(desc), "timestamp") {
				typ = "integer"
			}

			params = append(params, QueryParam{
				Name:        name,
				Required:    !strings.Contains(strings.ToLower(qualifier), "optional"),
				Type:        typ,
				Description: desc,
				Default:     def,
			})
		}
		return params
	}
	return nil
}

// splitDefault splits descriptive text on a case-insensitive "default:"
// marker into a description and an optional default value. Leading
// punctuation separating the qualifier from the prose is dropped.
func splitDefault(s string) (desc, def string) {
	s = strings.TrimLeft(s, " \t-–—:")
	loc := defaultRe.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:loc[0]]), strings.TrimSpace(s[loc[1]:])
}
