package artifact

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	schemaModel   = "schemas/model.json"
	schemaScaler  = "schemas/scaler.json"
	schemaColumns = "schemas/columns.json"
)

var compiledSchemas = sync.OnceValues(func() (map[string]*gojsonschema.Schema, error) {
	out := make(map[string]*gojsonschema.Schema, 3)
	for _, name := range []string{schemaModel, schemaScaler, schemaColumns} {
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
})

// validateDocument checks doc against the named embedded schema and returns
// every violation in a single error.
func validateDocument(schemaName string, doc gojsonschema.JSONLoader) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}

	schema, ok := schemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema: %s", schemaName)
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
