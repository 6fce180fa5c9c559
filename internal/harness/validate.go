package harness

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// scenarioSchema compiles the embedded schema once and returns the #Scenario
// definition.
func scenarioSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		root := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaValue = root.LookupPath(cue.ParsePath("#Scenario"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Scenario: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// ValidateScenario checks scenario YAML against the embedded CUE schema.
// Returns a detailed error naming the offending field on mismatch.
func ValidateScenario(data []byte) error {
	schema, err := scenarioSchema()
	if err != nil {
		return err
	}

	if err := cueyaml.Validate(data, schema); err != nil {
		return fmt.Errorf("scenario schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}
