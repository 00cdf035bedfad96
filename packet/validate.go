package packet

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaBytes []byte

// Validator checks raw transport records against the packet wire schema.
// Validation is diagnostic only: Parse stays tolerant regardless, and a
// record that fails validation still folds (as Unknown). The replay CLI's
// lint mode and integration tests use the Validator to surface producer bugs
// that tolerant parsing would otherwise hide.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded packet schema.
func NewValidator() (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaBytes, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal packet schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("packet.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := c.Compile("packet.json")
	if err != nil {
		return nil, fmt.Errorf("compile packet schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate reports whether raw is a well-formed packet record. A nil error
// means the record conforms to the wire schema for its declared type.
func (v *Validator) Validate(raw json.RawMessage) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("unmarshal packet: %w", err)
	}
	return v.schema.Validate(payload)
}
