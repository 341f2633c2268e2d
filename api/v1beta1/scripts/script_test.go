package scripts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/textdlg/api/v1beta1/scripts"
	"github.com/macropower/textdlg/pkg/yaml"
)

func intp(v int) *int {
	return &v
}

func show(text string) *scripts.Show {
	return &scripts.Show{Frame: scripts.Frame{X: 1, Y: 1, Text: text}}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		script   scripts.Script
		wantErr  error
		wantPath string
	}{
		"valid": {
			script: scripts.Script{Steps: []scripts.Step{
				{ID: "start", Show: show("hi")},
				{Choice: &scripts.Choice{
					Frame:   scripts.Frame{X: 1, Y: 1, Text: "?"},
					Options: []scripts.Option{{Label: "again", Next: "start"}, {Label: "on"}},
				}},
				{Input: &scripts.Input{Frame: scripts.Frame{X: 1, Y: 1, Text: "name", Border: "config"}, Var: "name"}},
				{Pause: intp(10)},
				{Set: &scripts.Settings{Delay: intp(0)}},
				{Goto: "start"},
				{End: true},
			}},
		},
		"no steps": {
			wantErr:  scripts.ErrNoSteps,
			wantPath: "$.steps",
		},
		"no action": {
			script:   scripts.Script{Steps: []scripts.Step{{ID: "x"}}},
			wantErr:  scripts.ErrStepAction,
			wantPath: "$.steps[0]",
		},
		"two actions": {
			script:   scripts.Script{Steps: []scripts.Step{{Show: show("a")}, {Show: show("b"), End: true}}},
			wantErr:  scripts.ErrStepAction,
			wantPath: "$.steps[1]",
		},
		"duplicate id": {
			script:   scripts.Script{Steps: []scripts.Step{{ID: "a", End: true}, {ID: "a", End: true}}},
			wantErr:  scripts.ErrDuplicateID,
			wantPath: "$.steps[1].id",
		},
		"unknown goto": {
			script:   scripts.Script{Steps: []scripts.Step{{Goto: "nowhere"}}},
			wantErr:  scripts.ErrUnknownTarget,
			wantPath: "$.steps[0].goto",
		},
		"unknown next": {
			script: scripts.Script{Steps: []scripts.Step{{Choice: &scripts.Choice{
				Frame:   scripts.Frame{X: 1, Y: 1, Text: "?"},
				Options: []scripts.Option{{Label: "a"}, {Label: "b", Next: "nowhere"}},
			}}}},
			wantErr:  scripts.ErrUnknownTarget,
			wantPath: "$.steps[0].choice.options[1].next",
		},
		"too many options": {
			script: scripts.Script{Steps: []scripts.Step{{Choice: &scripts.Choice{
				Frame:   scripts.Frame{X: 1, Y: 1, Text: "?"},
				Options: make([]scripts.Option, 10),
			}}}},
			wantErr:  scripts.ErrOptionCount,
			wantPath: "$.steps[0].choice.options",
		},
		"negative pause": {
			script:   scripts.Script{Steps: []scripts.Step{{Pause: intp(-1)}}},
			wantErr:  scripts.ErrNegative,
			wantPath: "$.steps[0].pause",
		},
		"negative delay": {
			script:   scripts.Script{Steps: []scripts.Step{{Set: &scripts.Settings{Delay: intp(-1)}}}},
			wantErr:  scripts.ErrNegative,
			wantPath: "$.steps[0].set.delay",
		},
		"negative max chars": {
			script: scripts.Script{Steps: []scripts.Step{{Input: &scripts.Input{
				Frame:    scripts.Frame{X: 1, Y: 1, Text: "?"},
				MaxChars: intp(-2),
			}}}},
			wantErr:  scripts.ErrNegative,
			wantPath: "$.steps[0].input.maxChars",
		},
		"bad var": {
			script: scripts.Script{Steps: []scripts.Step{{Input: &scripts.Input{
				Frame: scripts.Frame{X: 1, Y: 1, Text: "?"},
				Var:   "my-name",
			}}}},
			wantErr:  scripts.ErrVarName,
			wantPath: "$.steps[0].input.var",
		},
		"bad initial var": {
			script: scripts.Script{
				Vars:  map[string]string{"1st": "x"},
				Steps: []scripts.Step{{End: true}},
			},
			wantErr:  scripts.ErrVarName,
			wantPath: "$.vars.1st",
		},
		"unknown border": {
			script: scripts.Script{Steps: []scripts.Step{{Show: &scripts.Show{
				Frame: scripts.Frame{X: 1, Y: 1, Text: "?", Border: "fancy"},
			}}}},
			wantErr:  scripts.ErrBorder,
			wantPath: "$.steps[0].show.border",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.script.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
		})
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	s := scripts.Script{Steps: []scripts.Step{{End: true}, {ID: "b", End: true}}}

	i, ok := s.Index("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = s.Index("c")
	assert.False(t, ok)
}

func TestDemo(t *testing.T) {
	t.Parallel()

	demo := scripts.Demo()
	assert.Contains(t, string(demo), "kind: Script")

	demo[0] = 'X'
	assert.NotEqual(t, demo[0], scripts.Demo()[0], "Demo returns a copy")
}
