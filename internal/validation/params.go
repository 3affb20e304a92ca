package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateParams checks a task's raw parameter mapping against the report
// type's JSON schema before any value reaches the query layer
func ValidateParams(schemaJSON string, params map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return fmt.Errorf("failed to load parameter schema: %w", err)
	}

	documentLoader := gojsonschema.NewGoLoader(params)
	result, err := schema.Validate(documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate parameters: %w", err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("parameter validation failed: %v", errs)
	}

	return nil
}
