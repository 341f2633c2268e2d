package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder reads YAML documents. Syntax and type errors are returned as
// [*Error] values pointing at the offending token.
type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	return &Decoder{d: yaml.NewDecoder(r, opts...)}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()), WithToken(yamlErr.GetToken()))
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes a single document from data into v, rejecting unknown
// fields. Errors carry data as their source.
func Unmarshal(data []byte, v any) error {
	err := NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField()).Decode(v)

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		yamlErr.Source = data
	}

	return err
}
