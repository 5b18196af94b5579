package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

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

// Schema is a compiled JSON Schema that payloads can be checked against.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles a JSON Schema document. The name identifies the schema in
// error messages.
func Compile(name, document string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, strings.NewReader(document)); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	return &Schema{name: name, schema: schema}, nil
}

// MustCompile is like Compile but panics if the schema cannot be compiled.
// It is meant for schemas embedded in the binary.
func MustCompile(name, document string) *Schema {
	s, err := Compile(name, document)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled with.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a raw JSON document. It returns nil when the document
// conforms, otherwise ValidationErrors with one entry per violated keyword.
func (s *Schema) Validate(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}
	return s.ValidateValue(value)
}

// ValidateValue checks an already decoded JSON value, as produced by
// encoding/json into an interface{}.
func (s *Schema) ValidateValue(value interface{}) error {
	err := s.schema.Validate(value)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		if errs := extractValidationErrors(validationErr); len(errs) > 0 {
			return errs
		}
	}
	return ValidationErrors{err}
}

// extractValidationErrors flattens the leaves of a jsonschema.ValidationError tree
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errs ValidationErrors
	for _, childErr := range err.Causes {
		errs = append(errs, extractValidationErrors(childErr)...)
	}
	return errs
}
