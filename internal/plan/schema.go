package plan

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed plan_schema.json
var documentSchemaJSON string

var (
	compileOnce    sync.Once
	documentSchema *jsonschema.Schema
	compileErr     error
)

// DocumentSchema returns the compiled JSON Schema for plan documents. The
// schema accepts exactly the two document variants: an executable plan or a
// declined response.
func DocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("plan_schema.json", strings.NewReader(documentSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("plan_schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile plan schema: %w", err)
			return
		}
		documentSchema = schema
	})
	return documentSchema, compileErr
}

// validateDocumentSchema runs the structural pass over raw document bytes.
// Everything the schema can express is rejected here; the validator only
// deals with catalog and snapshot checks afterwards.
func validateDocumentSchema(data []byte) error {
	schema, err := DocumentSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("document does not match plan schema: %w", err)
	}
	return nil
}
