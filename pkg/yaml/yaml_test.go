package yaml_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/pkg/yaml"
)

const testSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {"delay": {"type": "integer", "minimum": 0}}
      }
    }
  }
}`

func TestMarshalUnmarshal(t *testing.T) {
	t.Parallel()

	type doc struct {
		Name  string   `yaml:"name"`
		Lines []string `yaml:"lines"`
	}

	data, err := yaml.Marshal(doc{Name: "intro", Lines: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "name: intro\nlines:\n  - a\n  - b\n", string(data))

	var got doc
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, doc{Name: "intro", Lines: []string{"a", "b"}}, got)
}

func TestUnmarshalError(t *testing.T) {
	t.Parallel()

	var got struct {
		Name string `yaml:"name"`
	}

	err := yaml.Unmarshal([]byte("name: a\nextra: b\n"), &got)
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	require.NotNil(t, yamlErr.Token)
	assert.Equal(t, 2, yamlErr.Token.Position.Line)
	assert.Contains(t, err.Error(), "extra")
}

func TestPathBuilder(t *testing.T) {
	t.Parallel()

	step := func(i int) *yaml.PathBuilder {
		return yaml.NewPathBuilder().Root().Child("steps").Index(uint(i))
	}

	err := yaml.NewError(errors.New("unknown step id"), yaml.WithPath(step(1).Child("goto").Build()))
	assert.Equal(t, "error at $.steps[1].goto: unknown step id", err.Error())
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	path := yaml.NewPathBuilder().Root().Child("render").Child("delay").Build()

	tcs := map[string]struct {
		err      *yaml.Error
		want     string
		contains []string
	}{
		"no location": {
			err:  yaml.NewError(errors.New("boom")),
			want: "boom",
		},
		"nil error": {
			err:  yaml.NewError(nil),
			want: "",
		},
		"path without source": {
			err:  yaml.NewError(errors.New("boom"), yaml.WithPath(path)),
			want: "error at $.render.delay: boom",
		},
		"path with source": {
			err: yaml.NewError(errors.New("boom"),
				yaml.WithPath(path),
				yaml.WithSource([]byte("render:\n  delay: -1\n")),
			),
			contains: []string{"[2:", "error at $.render.delay: boom", "delay: -1"},
		},
		"path missing from source": {
			err: yaml.NewError(errors.New("boom"),
				yaml.WithPath(path),
				yaml.WithSource([]byte("other: 1\n")),
			),
			want: "error at $.render.delay: boom",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			if tc.contains == nil {
				assert.Equal(t, tc.want, got)
				return
			}

			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")
	assert.Equal(t, plain, yaml.Annotate(plain, yaml.WithSource([]byte("x"))))

	yerr := yaml.NewError(plain)
	err := yaml.Annotate(yerr, yaml.WithSource([]byte("x")), yaml.WithColor(true))
	assert.Equal(t, []byte("x"), yerr.Source)
	assert.True(t, yerr.Colored)
	require.ErrorIs(t, err, plain)
}

func TestValidator(t *testing.T) {
	t.Parallel()

	v, err := yaml.NewValidator("test.json", []byte(testSchema))
	require.NoError(t, err)

	tcs := map[string]struct {
		data     string
		wantPath string
	}{
		"valid": {
			data: "name: a\nsteps:\n  - delay: 3\n",
		},
		"unknown field": {
			data:     "nme: a\n",
			wantPath: "$",
		},
		"nested": {
			data:     "steps:\n  - delay: 1\n  - delay: -5\n",
			wantPath: "$.steps[1].delay",
		},
		"wrong type": {
			data:     "name: 3\n",
			wantPath: "$.name",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v.ValidateBytes([]byte(tc.data))
			if tc.wantPath == "" {
				require.NoError(t, err)
				return
			}

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
			assert.Equal(t, []byte(tc.data), yamlErr.Source)
		})
	}
}

func TestNewValidatorInvalid(t *testing.T) {
	t.Parallel()

	_, err := yaml.NewValidator("bad.json", []byte("{"))
	require.Error(t, err)

	_, err = yaml.NewValidator("bad.json", []byte(`{"type": 5}`))
	require.Error(t, err)

	assert.Panics(t, func() {
		yaml.MustNewValidator("bad.json", []byte("{"))
	})
}

func TestFormatterFor(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		profile termenv.Profile
		want    string
	}{
		"true color": {profile: termenv.TrueColor, want: "terminal16m"},
		"256":        {profile: termenv.ANSI256, want: "terminal256"},
		"16":         {profile: termenv.ANSI, want: "terminal8"},
		"ascii":      {profile: termenv.Ascii, want: "noop"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, yaml.FormatterFor(tc.profile))
		})
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	src := []byte("render:\n  delay: 70\n")

	var plain bytes.Buffer
	require.NoError(t, yaml.Highlight(&plain, src, termenv.Ascii))
	assert.Equal(t, string(src), plain.String())

	var colored bytes.Buffer
	require.NoError(t, yaml.Highlight(&colored, src, termenv.TrueColor))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "delay")
}
