// Package configs provides the Configuration kind for textdlg.
package configs

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/invopop/jsonschema"

	"github.com/macropower/textdlg/api"
	"github.com/macropower/textdlg/api/v1beta1"
	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/clock"
	"github.com/macropower/textdlg/pkg/typewriter"
)

const (
	// Kind is the kind of global configuration documents.
	Kind = "Configuration"

	// SchemaID identifies the reflected configuration schema.
	SchemaID = "https://textdlg.macropower.dev/schemas/configs.v1beta1.json"

	// DefaultMaxChars is the input length used when a script does not set one.
	DefaultMaxChars = 30

	// DefaultBorderPreset names the glyphs used when the config sets none.
	DefaultBorderPreset = "ascii"
)

var (
	// ErrBorderGlyph is returned for glyphs that are not a single character.
	ErrBorderGlyph = errors.New("border glyph must be a single character")
	// ErrBorderPreset is returned for unknown preset names.
	ErrBorderPreset = errors.New("unknown border preset")

	_ v1beta1.Object = (*Config)(nil)
)

// Config is the global textdlg configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	v1beta1.TypeMeta `json:",inline"`

	Render *Render `json:"render,omitempty" jsonschema:"title=Render"`
	Border *Border `json:"border,omitempty" jsonschema:"title=Border"`
	Input  *Input  `json:"input,omitempty"  jsonschema:"title=Input"`
}

// Render configures the typewriter effect.
type Render struct {
	// Delay between characters in milliseconds.
	Delay *int `json:"delay,omitempty" jsonschema:"title=Delay,minimum=0"`
	// Bell rings the terminal bell after every character.
	Bell bool `json:"bell,omitempty" jsonschema:"title=Bell"`
	// Wrap word-wraps text at this many columns. Zero disables wrapping.
	Wrap int `json:"wrap,omitempty" jsonschema:"title=Wrap,minimum=0"`
}

// Border selects the glyphs of framed dialogs. Individual glyphs override
// the preset.
type Border struct {
	Preset string `json:"preset,omitempty" jsonschema:"title=Preset,enum=ascii,enum=hash,enum=star"`
	Corner string `json:"corner,omitempty" jsonschema:"title=Corner,minLength=1,maxLength=1"`
	Side   string `json:"side,omitempty"   jsonschema:"title=Side,minLength=1,maxLength=1"`
	Plane  string `json:"plane,omitempty"  jsonschema:"title=Plane,minLength=1,maxLength=1"`
}

// Input configures input dialogs.
type Input struct {
	// MaxChars is the default input length.
	MaxChars *int `json:"maxChars,omitempty" jsonschema:"title=Max Characters,minimum=0,maximum=4096"`
}

// New returns a [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes unset fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Render == nil {
		c.Render = &Render{}
	}
	if c.Render.Delay == nil {
		delay := int(typewriter.DefaultDelay / time.Millisecond)
		c.Render.Delay = &delay
	}

	if c.Border == nil {
		c.Border = &Border{}
	}
	if c.Border.Preset == "" {
		c.Border.Preset = DefaultBorderPreset
	}

	if c.Input == nil {
		c.Input = &Input{}
	}
	if c.Input.MaxChars == nil {
		maxChars := DefaultMaxChars
		c.Input.MaxChars = &maxChars
	}
}

// Validate checks constraints the schema cannot express.
func (c *Config) Validate() error {
	_, err := c.Border.Glyphs()
	if err != nil {
		return fmt.Errorf("border: %w", err)
	}

	return nil
}

// TypewriterConfig returns the render settings.
func (c *Config) TypewriterConfig() typewriter.Config {
	return typewriter.Config{
		Delay: clock.Millis(*c.Render.Delay),
		Bell:  c.Render.Bell,
		Wrap:  c.Render.Wrap,
	}
}

// Glyphs resolves the preset and overrides.
func (b *Border) Glyphs() (border.Glyphs, error) {
	name := b.Preset
	if name == "" {
		name = DefaultBorderPreset
	}

	g, ok := border.Presets[name]
	if !ok {
		return border.Glyphs{}, fmt.Errorf("%w: %q", ErrBorderPreset, name)
	}

	for _, o := range []struct {
		dst *rune
		src string
	}{
		{&g.Corner, b.Corner},
		{&g.Side, b.Side},
		{&g.Plane, b.Plane},
	} {
		if o.src == "" {
			continue
		}
		if utf8.RuneCountInString(o.src) != 1 {
			return border.Glyphs{}, fmt.Errorf("%w: %q", ErrBorderGlyph, o.src)
		}

		r, _ := utf8.DecodeRuneInString(o.src)
		*o.dst = r
	}

	return g, nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{Kind})
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Write writes the config to path if no file exists there yet.
func (c Config) Write(path string) error {
	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	_, err = api.WriteFile(path, b, false)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// GetPath returns the path of the global configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
