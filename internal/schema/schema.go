// Package schema infers OpenAPI-style structural schemas from example
// JSON payloads and accumulates named schemas across endpoints.
package schema

// RefPrefix is the reference-path convention for registry entries.
const RefPrefix = "#/components/schemas/"

// Node is one inferred schema fragment. The type is closed: object,
// array, string, integer, number, boolean, or nullable string.
type Node struct {
	Type        string           `json:"type,omitempty"`
	Format      string           `json:"format,omitempty"`
	Description string           `json:"description,omitempty"`
	Nullable    bool             `json:"nullable,omitempty"`
	Properties  map[string]*Node `json:"properties,omitempty"`
	Required    []string         `json:"required,omitempty"`
	Items       *Node            `json:"items,omitempty"`
	Ref         string           `json:"$ref,omitempty"`
}

// NewObject returns an empty object schema, the universal fallback.
func NewObject() *Node {
	return &Node{Type: "object", Properties: map[string]*Node{}}
}

// Ref returns a named pointer to a registry entry.
func Ref(name string) *Node {
	return &Node{Ref: RefPrefix + name}
}

// Populated reports whether the node carries at least one property.
func (n *Node) Populated() bool {
	return n != nil && len(n.Properties) > 0
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Properties != nil {
		c.Properties = make(map[string]*Node, len(n.Properties))
		for k, v := range n.Properties {
			c.Properties[k] = v.Clone()
		}
	}
	c.Required = append([]string(nil), n.Required...)
	c.Items = n.Items.Clone()
	return &c
}
