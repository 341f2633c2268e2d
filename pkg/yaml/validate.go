package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates decoded documents against a JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var doc any

	err := json.Unmarshal(schemaData, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: s}, nil
}

func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate checks data, as produced by decoding YAML into an any. Failures
// are returned as an [*Error] whose path points at the most specific
// failing location.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return NewError(verr, WithPath(pathFromLocation(deepestLocation(verr))))
}

// ValidateBytes decodes data and validates it. Failures carry data as their
// source.
func (v *Validator) ValidateBytes(data []byte) error {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}

	return Annotate(v.Validate(doc), WithSource(data))
}

func deepestLocation(err *jsonschema.ValidationError) []string {
	loc := err.InstanceLocation

	for _, cause := range err.Causes {
		if l := deepestLocation(cause); len(l) > len(loc) {
			loc = l
		}
	}

	return loc
}

func pathFromLocation(location []string) *yaml.Path {
	b := NewPathBuilder().Root()

	for _, part := range location {
		if i, err := strconv.ParseUint(part, 10, 0); err == nil {
			b = b.Index(uint(i))

			continue
		}

		b = b.Child(part)
	}

	return b.Build()
}
