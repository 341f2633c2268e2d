package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/macropower/textdlg/api"
	"github.com/macropower/textdlg/api/v1beta1"
	"github.com/macropower/textdlg/api/v1beta1/configs"
	"github.com/macropower/textdlg/api/v1beta1/scripts"
	"github.com/macropower/textdlg/pkg/yaml"
)

var (
	// ConfigValidator returns the validator for Configuration documents.
	ConfigValidator = sync.OnceValue(func() *yaml.Validator {
		return mustValidator(configs.SchemaID, configs.New())
	})

	// ScriptValidator returns the validator for Script documents.
	ScriptValidator = sync.OnceValue(func() *yaml.Validator {
		return mustValidator(scripts.SchemaID, scripts.New())
	})
)

func mustValidator(id string, v any) *yaml.Validator {
	schema, err := v1beta1.Schema(id, v)
	if err != nil {
		panic(err)
	}

	return yaml.MustNewValidator(id, schema)
}

// LoadConfig reads the configuration at path. A missing file yields the
// defaults when allowMissing is set.
func LoadConfig(path string, allowMissing bool) (*configs.Config, error) {
	l, err := NewLoaderFromFile(path, configs.New, ConfigValidator())
	if errors.Is(err, fs.ErrNotExist) && allowMissing {
		slog.Debug("no configuration file, using defaults", slog.String("path", path))

		return configs.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := l.ValidateAndLoad()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadScript reads and validates the script at path.
func LoadScript(path string) (*scripts.Script, error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}

	return s, nil
}

// ParseScript validates and decodes a script document.
func ParseScript(data []byte) (*scripts.Script, error) {
	//nolint:wrapcheck // Errors are already annotated.
	return NewLoaderFromBytes(data, scripts.New, ScriptValidator()).ValidateAndLoad()
}

// Schemas returns the JSON schemas of every document kind, keyed by file
// name.
func Schemas() (map[string][]byte, error) {
	out := map[string][]byte{}

	for name, kind := range map[string]struct {
		obj any
		id  string
	}{
		"configs.v1beta1.json": {obj: configs.New(), id: configs.SchemaID},
		"scripts.v1beta1.json": {obj: scripts.New(), id: scripts.SchemaID},
	} {
		b, err := v1beta1.Schema(kind.id, kind.obj)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out[name] = b
	}

	return out, nil
}
