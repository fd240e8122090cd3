package schema

import (
	"encoding/json"
	"sort"
	"strings"
)

// Infer converts a raw example payload into a structural schema. It never
// fails: input that is not valid JSON, even after a recovery pass that
// retries the substring between the first '{' and the last '}', degrades
// to an empty object schema.
func Infer(raw string) *Node {
	cleaned := Clean(raw)

	v, err := parseJSON(cleaned)
	if err != nil {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start >= 0 && end > start {
			if v, err = parseJSON(cleaned[start : end+1]); err == nil {
				return inferValue(v, true)
			}
		}
		return NewObject()
	}
	return inferValue(v, true)
}

// Clean strips the wrappers example payloads arrive in: surrounding
// whitespace, the HTML escapes for quote and ampersand, and a fenced
// code block marker when present.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) > 2 {
			s = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return strings.TrimSpace(s)
}

func parseJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber() // keep the integer/number distinction
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// inferValue applies the recursion rules. Only the outermost object of an
// Infer call marks its direct keys required; nested objects do not. This
// asymmetry is deliberate — generalizing it would change the validation
// strictness of every produced schema.
func inferValue(v any, top bool) *Node {
	switch val := v.(type) {
	case map[string]any:
		n := NewObject()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if val[k] == nil {
				// Null-valued keys are dropped entirely, not marked
				// nullable.
				continue
			}
			n.Properties[k] = inferValue(val[k], false)
			if top {
				n.Required = append(n.Required, k)
			}
		}
		return n
	case []any:
		if len(val) > 0 {
			// First element as template; heterogeneous arrays are not
			// merged.
			return &Node{Type: "array", Items: inferValue(val[0], false)}
		}
		return &Node{Type: "array", Items: &Node{Type: "object"}}
	case bool:
		return &Node{Type: "boolean"}
	case json.Number:
		if strings.ContainsAny(string(val), ".eE") {
			return &Node{Type: "number"}
		}
		return &Node{Type: "integer"}
	case string:
		if len(val) == 10 && isDigits(val) {
			return &Node{Type: "integer", Format: "int64", Description: "Unix timestamp"}
		}
		return &Node{Type: "string"}
	case nil:
		// Best available approximation when no other type information
		// exists.
		return &Node{Type: "string", Nullable: true}
	default:
		return &Node{Type: "object"}
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
