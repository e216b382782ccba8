package dataset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	schemaOnce sync.Once
	fileSchema *jsonschema.Resolved
	schemaErr  error
)

func resolvedFileSchema() (*jsonschema.Resolved, error) {
	schemaOnce.Do(func() {
		schema, err := jsonschema.For[File](nil)
		if err != nil {
			schemaErr = err
			return
		}
		fileSchema, schemaErr = schema.Resolve(nil)
	})
	return fileSchema, schemaErr
}

// DecodeFile validates raw JSON against the schema inferred from the File
// type, then decodes it. Validation catches malformed hand-edited datasets
// with a field-level error instead of silently zeroing fields.
func DecodeFile(raw []byte) (File, error) {
	resolved, err := resolvedFileSchema()
	if err != nil {
		return File{}, fmt.Errorf("failed to build dataset schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return File{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return File{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return File{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return file, nil
}
