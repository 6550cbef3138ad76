// Where: internal/domain/settings/schema.go
// What: JSON schema validation for proxy settings documents.
// Why: Report shape failures before anything is rewritten.
package settings

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://mimesort/settings.schema.json"

//go:embed schema/settings.schema.json
var schemaSource string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(schemaURL, schemaSource)
	})
	return compiledSchema, schemaErr
}

// validateShape checks a generically decoded document against the settings schema.
func validateShape(document any) error {
	sch, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("%w: %w", ErrShape, err)
	}
	return nil
}
