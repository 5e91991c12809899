package programfmt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/opal-lang/mirror/core/invariant"
)

//go:embed document.schema.json
var documentSchema string

const schemaURL = "mirror://document.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
)

// Schema returns the JSON Schema (draft 2020-12) that documents must satisfy
func Schema() string {
	return documentSchema
}

func schema() *jsonschema.Schema {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		// The schema is self-contained; refuse to load anything else.
		compiler.LoadURL = func(url string) (io.ReadCloser, error) {
			return nil, fmt.Errorf("external $ref not allowed: %s", url)
		}

		err := compiler.AddResource(schemaURL, strings.NewReader(documentSchema))
		invariant.ExpectNoError(err, "adding embedded document schema")

		compiledSchema, err = compiler.Compile(schemaURL)
		invariant.ExpectNoError(err, "compiling embedded document schema")
	})
	return compiledSchema
}

// SchemaError reports where a document violates the schema
type SchemaError struct {
	Location string // JSON pointer into the document, "" for the root
	Message  string
}

func (e *SchemaError) Error() string {
	loc := e.Location
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("document invalid at %s: %s", loc, e.Message)
}

// Validate checks raw JSON against the document schema
func Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	if err := schema().Validate(value); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// convertValidationError reduces a jsonschema error tree to its deepest cause
func convertValidationError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Location: ve.InstanceLocation, Message: ve.Message}
}
