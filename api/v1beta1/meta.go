// Package v1beta1 contains the v1beta1 API types for textdlg files.
package v1beta1

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// APIVersion is the current API version for all textdlg kinds.
const APIVersion = "textdlg.macropower.dev/v1beta1"

// ValidAPIVersions contains all valid API versions.
var ValidAPIVersions = []string{APIVersion}

// TypeMeta contains the API version and kind metadata common to all kinds.
type TypeMeta struct {
	// APIVersion specifies the API version of the document.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of the document.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Object is implemented by every document kind.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// ExtendSchemaWithEnums restricts apiVersion and kind to the given values.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	for prop, values := range map[string][]string{
		"apiVersion": apiVersions,
		"kind":       kinds,
	} {
		s, ok := jss.Properties.Get(prop)
		if !ok {
			panic(prop + " property not found in schema")
		}

		for _, v := range values {
			s.Enum = append(s.Enum, v)
		}
	}
}

// Schema reflects the JSON schema of v, registered under id.
func Schema(id string, v any) ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}

	s := r.Reflect(v)
	s.ID = jsonschema.ID(id)

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return b, nil
}
