package config

import (
	"bytes"
	"errors"

	"github.com/macropower/textdlg/api"
	"github.com/macropower/textdlg/api/v1beta1"
	"github.com/macropower/textdlg/pkg/yaml"
)

// Validator validates decoded document data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader decodes and validates a document of kind T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	data      []byte
}

// NewLoaderFromBytes returns a [Loader] for data. newFunc constructs the
// value to decode into.
func NewLoaderFromBytes[T v1beta1.Object](data []byte, newFunc func() T, v Validator) *Loader[T] {
	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: v,
	}
}

// NewLoaderFromFile returns a [Loader] for the file at path.
func NewLoaderFromFile[T v1beta1.Object](path string, newFunc func() T, v Validator) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, v), nil
}

// Data returns the raw document.
func (l *Loader[T]) Data() []byte {
	return l.data
}

// Validate checks the document against the schema without loading it.
func (l *Loader[T]) Validate() error {
	var doc any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&doc)
	if err != nil {
		return l.annotate(err)
	}

	if l.validator == nil {
		return nil
	}

	return l.annotate(l.validator.Validate(doc))
}

// Load decodes the document, fills in defaults and runs the document's own
// validation if it has one.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	var zero T

	obj := l.newFunc()

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(obj)
	if err != nil {
		return zero, l.annotate(err)
	}

	obj.EnsureDefaults()

	if v, ok := any(obj).(interface{ Validate() error }); ok {
		err = v.Validate()
		if err != nil {
			return zero, l.annotate(err)
		}
	}

	return obj, nil
}

// ValidateAndLoad runs [Loader.Validate] then [Loader.Load].
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) ValidateAndLoad() (T, error) {
	err := l.Validate()
	if err != nil {
		var zero T

		return zero, err
	}

	return l.Load()
}

func (l *Loader[T]) annotate(err error) error {
	if err == nil {
		return nil
	}

	var yamlErr *yaml.Error
	if errors.As(err, &yamlErr) && yamlErr.Source == nil {
		yamlErr.Source = l.data
	}

	return err
}
