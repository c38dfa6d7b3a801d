package model

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
)

var (
	schemaOnce sync.Once
	schemaJSON json.RawMessage
	schemaErr  error
)

// Schema returns the JSON-Schema description of LOIFields: every field
// name, type, optionality, and default. Reflected once and cached.
func Schema() (json.RawMessage, error) {
	schemaOnce.Do(func() {
		r := jsonschema.Reflector{
			DoNotReference: false,
		}
		s := r.Reflect(&LOIFields{})
		s.Title = "LOIFields"
		s.Description = "Complete Letter of Intent data structure for a commercial real estate deal"

		b, err := json.Marshal(s)
		if err != nil {
			schemaErr = eris.Wrap(err, "model: marshal schema")
			return
		}
		schemaJSON = b
	})
	return schemaJSON, schemaErr
}
