package jsonschema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "schema.json"

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Compile parses and compiles a JSON Schema document
func Compile(schema []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return compiled, nil
}

// Validate checks an already decoded JSON value against a JSON Schema. A
// schema that does not compile is reported as a plain error; a document that
// fails validation yields ValidationErrors with one entry per failing
// location.
func Validate(doc interface{}, schema []byte) error {
	compiled, err := Compile(schema)
	if err != nil {
		return err
	}

	err = compiled.Validate(doc)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return extractValidationErrors(validationErr)
	}
	return ValidationErrors{err}
}

// extractValidationErrors flattens the leaf causes of a ValidationError
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errors ValidationErrors
	for _, cause := range err.Causes {
		errors = append(errors, extractValidationErrors(cause)...)
	}
	return errors
}
