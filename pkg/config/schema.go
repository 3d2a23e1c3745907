package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	_ "embed"
)

//go:embed config.v1beta1.json
var schemaJSON []byte

const schemaURL = "https://raw.githubusercontent.com/sievekit/sieve/refs/heads/main/pkg/config/config.v1beta1.json"

// DefaultValidator validates configuration data against the embedded JSON
// schema.
var DefaultValidator = MustNewValidator(schemaJSON)

// Validator validates decoded configuration data against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a [Validator] from JSON schema data.
func NewValidator(schemaData []byte) (*Validator, error) {
	var schema any
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schema); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

// MustNewValidator creates a [Validator] and panics on error.
func MustNewValidator(schemaData []byte) *Validator {
	v, err := NewValidator(schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate validates the given data against the schema.
func (v *Validator) Validate(data any) error {
	if err := v.schema.Validate(data); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	return nil
}
