package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/api/v1beta1/configs"
	"github.com/macropower/textdlg/api/v1beta1/scripts"
)

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    string
		errText string
		args    []string
	}{
		"default kind": {
			args: []string{"schema"},
			want: configs.SchemaID,
		},
		"config": {
			args: []string{"schema", "config"},
			want: configs.SchemaID,
		},
		"script": {
			args: []string{"schema", "script"},
			want: scripts.SchemaID,
		},
		"unknown kind": {
			args:    []string{"schema", "policy"},
			errText: "invalid argument",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tc.args)
			if tc.errText != "" {
				require.ErrorContains(t, err, tc.errText)

				return
			}

			require.NoError(t, err)
			assert.Contains(t, out, tc.want)
			assert.Contains(t, out, `"additionalProperties": false`)
		})
	}
}

func TestSchemaCmdOutDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "schemas")

	out, err := execute(t, []string{"schema", "-o", dir})
	require.NoError(t, err)
	assert.Empty(t, out)

	for _, name := range []string{"configs.v1beta1.json", "scripts.v1beta1.json"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(b), `"$schema"`)
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, []string{"version"})
	require.NoError(t, err)
	assert.Contains(t, out, "textdlg ")
	assert.Contains(t, out, "revision:")
	assert.Contains(t, out, "go: go")
}
