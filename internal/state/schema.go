package state

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed import.schema.json
var importSchemaJSON []byte

const importSchemaURL = "schema://mindforge/import.json"

var importSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(importSchemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse import schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(importSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add import schema: %w", err)
	}
	return c.Compile(importSchemaURL)
})

// validateImport checks the shape of an import document before any
// section is decoded.
func validateImport(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	schema, err := importSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return nil
}
