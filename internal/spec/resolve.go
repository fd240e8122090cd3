package spec

import (
	"strings"

	"github.com/schedtools/slurmspec/internal/schema"
)

// ExpandRefs returns a copy of the document with every schema reference
// under paths expanded into an inline, self-contained structure. The
// input is not mutated and components.schemas is left as written.
//
// Two kinds of reference are expanded: direct ones, named by the
// #/components/schemas/ convention, and indirect ones — inline object
// schemas whose description reads "Schema for <name>" but which carry
// none of the properties their registry entry has. A per-path visited set
// guards against cycles: a name already on the current resolution path
// yields a circular-reference placeholder instead of recursing, and is
// released afterwards so sibling branches may still expand it.
func (d *Document) ExpandRefs() *Document {
	out := *d
	out.Paths = make(map[string]PathItem, len(d.Paths))
	for path, item := range d.Paths {
		expanded := make(PathItem, len(item))
		for method, op := range item {
			expanded[method] = expandOperation(op, d.Components.Schemas)
		}
		out.Paths[path] = expanded
	}
	return &out
}

func expandOperation(op *Operation, schemas map[string]*schema.Node) *Operation {
	out := *op
	visited := make(map[string]bool)

	if len(op.Parameters) > 0 {
		out.Parameters = make([]Parameter, len(op.Parameters))
		for i, p := range op.Parameters {
			p.Schema = expandNode(p.Schema, schemas, visited)
			out.Parameters[i] = p
		}
	}

	if op.RequestBody != nil {
		rb := RequestBody{Content: expandContent(op.RequestBody.Content, schemas, visited)}
		out.RequestBody = &rb
	}

	out.Responses = make(map[string]Response, len(op.Responses))
	for code, resp := range op.Responses {
		resp.Content = expandContent(resp.Content, schemas, visited)
		out.Responses[code] = resp
	}

	return &out
}

func expandContent(content map[string]MediaType, schemas map[string]*schema.Node, visited map[string]bool) map[string]MediaType {
	if content == nil {
		return nil
	}
	out := make(map[string]MediaType, len(content))
	for ct, mt := range content {
		out[ct] = MediaType{Schema: expandNode(mt.Schema, schemas, visited)}
	}
	return out
}

func expandNode(n *schema.Node, schemas map[string]*schema.Node, visited map[string]bool) *schema.Node {
	if n == nil {
		return nil
	}

	// Direct reference.
	if name, ok := strings.CutPrefix(n.Ref, schema.RefPrefix); ok && n.Ref != "" {
		entry, known := schemas[name]
		if !known {
			return n.Clone()
		}
		if visited[name] {
			return circular(name)
		}
		visited[name] = true
		out := expandNode(entry, schemas, visited)
		delete(visited, name)
		return out
	}

	// Indirect reference: an under-populated inline duplicate of a
	// registry entry, recognizable by its description.
	if n.Type == "object" && len(n.Properties) == 0 {
		if name, ok := strings.CutPrefix(n.Description, "Schema for "); ok {
			name = strings.TrimSpace(name)
			if entry, known := schemas[name]; known && entry.Populated() && !visited[name] {
				visited[name] = true
				out := expandNode(entry, schemas, visited)
				delete(visited, name)
				out.Description = n.Description
				if n.Format != "" {
					out.Format = n.Format
				}
				if n.Nullable {
					out.Nullable = true
				}
				return out
			}
		}
	}

	out := &schema.Node{
		Type:        n.Type,
		Format:      n.Format,
		Description: n.Description,
		Nullable:    n.Nullable,
		Ref:         n.Ref,
		Required:    append([]string(nil), n.Required...),
	}
	if n.Properties != nil {
		out.Properties = make(map[string]*schema.Node, len(n.Properties))
		for k, v := range n.Properties {
			out.Properties[k] = expandNode(v, schemas, visited)
		}
	}
	if n.Items != nil {
		out.Items = expandNode(n.Items, schemas, visited)
	}
	return out
}

func circular(name string) *schema.Node {
	return &schema.Node{Type: "object", Description: "Circular reference to " + name}
}
