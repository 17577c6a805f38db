package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema generates a JSON schema document describing the settings file,
// used by `veil config schema` and by editors for completion.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	schema := r.Reflect(&Config{})
	schema.Title = "veil configuration"
	schema.Description = "Settings for the veil browser shell, partitioned into general, privacy, and wallet sections."

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config schema: %w", err)
	}
	return b, nil
}
