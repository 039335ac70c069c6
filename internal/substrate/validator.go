package substrate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// schemaValidator checks a spec blob against a JSON schema for one provider
// type.
type schemaValidator struct {
	providerType string
	schema       gojsonschema.JSONLoader
}

func newSchemaValidator(providerType, schemaJSON string) *schemaValidator {
	return &schemaValidator{
		providerType: providerType,
		schema:       gojsonschema.NewStringLoader(schemaJSON),
	}
}

// ValidateSpec implements entity.SpecValidator.
func (v *schemaValidator) ValidateSpec(spec map[string]any) error {
	result, err := gojsonschema.Validate(v.schema, gojsonschema.NewGoLoader(spec))
	if err != nil {
		return fmt.Errorf("validating %s spec: %w", v.providerType, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return fmt.Errorf("invalid %s spec: %s", v.providerType, strings.Join(details, "; "))
}
