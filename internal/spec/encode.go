package spec

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes the document as two-space indented JSON.
func EncodeJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode spec: %w", err)
	}
	return nil
}

// EncodeYAML writes the document as YAML. The document is round-tripped
// through JSON first so the OpenAPI wire names on the json tags carry
// over.
func EncodeYAML(w io.Writer, d *Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode spec: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		enc.Close()
		return fmt.Errorf("encode spec: %w", err)
	}
	return enc.Close()
}
