package spec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks the assembled document against the OpenAPI 3.0 rules by
// reloading it through kin-openapi. Generation itself never fails, so
// this is the place a caller learns the heuristics produced something
// structurally implausible.
func (d *Document) Validate(ctx context.Context) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	loader := openapi3.NewLoader()
	t, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	if err := t.Validate(ctx); err != nil {
		return fmt.Errorf("validate spec: %w", err)
	}
	return nil
}
