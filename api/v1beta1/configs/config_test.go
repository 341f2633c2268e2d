package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/api/v1beta1/configs"
	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/typewriter"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := configs.New()

	assert.Equal(t, "textdlg.macropower.dev/v1beta1", cfg.GetAPIVersion())
	assert.Equal(t, "Configuration", cfg.GetKind())
	assert.Equal(t, 70, *cfg.Render.Delay)
	assert.Equal(t, configs.DefaultMaxChars, *cfg.Input.MaxChars)
	assert.Equal(t, typewriter.DefaultConfig(), cfg.TypewriterConfig())
}

func TestEnsureDefaultsKeepsValues(t *testing.T) {
	t.Parallel()

	delay := 0
	cfg := &configs.Config{Render: &configs.Render{Delay: &delay, Bell: true}}
	cfg.EnsureDefaults()

	assert.Equal(t, typewriter.Config{Delay: 0, Bell: true}, cfg.TypewriterConfig())
	assert.Equal(t, configs.DefaultBorderPreset, cfg.Border.Preset)
}

func TestTypewriterConfig(t *testing.T) {
	t.Parallel()

	delay := 200
	cfg := &configs.Config{Render: &configs.Render{Delay: &delay, Wrap: 40}}
	cfg.EnsureDefaults()

	assert.Equal(t, typewriter.Config{Delay: 200 * time.Millisecond, Wrap: 40}, cfg.TypewriterConfig())
}

func TestBorderGlyphs(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		border  configs.Border
		want    border.Glyphs
		wantErr error
	}{
		"default": {
			want: border.ASCII,
		},
		"preset": {
			border: configs.Border{Preset: "star"},
			want:   border.Star,
		},
		"overrides": {
			border: configs.Border{Preset: "hash", Side: "│", Plane: "─"},
			want:   border.Glyphs{Corner: '#', Side: '│', Plane: '─'},
		},
		"unknown preset": {
			border:  configs.Border{Preset: "fancy"},
			wantErr: configs.ErrBorderPreset,
		},
		"long glyph": {
			border:  configs.Border{Corner: "++"},
			wantErr: configs.ErrBorderGlyph,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.border.Glyphs()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := configs.New()
	require.NoError(t, cfg.Validate())

	cfg.Border.Plane = "=="
	require.ErrorIs(t, cfg.Validate(), configs.ErrBorderGlyph)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, configs.New().Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: textdlg.macropower.dev/v1beta1")
	assert.Contains(t, string(data), "kind: Configuration")
	assert.Contains(t, string(data), "delay: 70")

	// An existing file is kept.
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o600))
	require.NoError(t, configs.New().Write(path))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}
