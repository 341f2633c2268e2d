// Package scripts provides the Script kind: a sequence of dialogs played by
// [github.com/macropower/textdlg/pkg/script.Player].
package scripts

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/textdlg/api/v1beta1"
	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/dialog"
	"github.com/macropower/textdlg/pkg/yaml"
)

const (
	// Kind is the kind of script documents.
	Kind = "Script"

	// SchemaID identifies the reflected script schema.
	SchemaID = "https://textdlg.macropower.dev/schemas/scripts.v1beta1.json"

	// BorderConfig frames a dialog with the glyphs from the configuration.
	BorderConfig = "config"
)

var (
	//go:embed demo.yaml
	demoYAML []byte

	ErrNoSteps       = errors.New("script has no steps")
	ErrStepAction    = errors.New("step must have exactly one action")
	ErrDuplicateID   = errors.New("duplicate step id")
	ErrUnknownTarget = errors.New("unknown step id")
	ErrOptionCount   = errors.New("choice needs between 1 and 9 options")
	ErrNegative      = errors.New("must not be negative")
	ErrVarName       = errors.New("invalid variable name")
	ErrBorder        = errors.New("unknown border")

	varName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	_ v1beta1.Object = (*Script)(nil)
)

// Script is a sequence of dialog steps.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Script struct {
	v1beta1.TypeMeta `json:",inline"`

	// Name is shown in logs.
	Name string `json:"name,omitempty" jsonschema:"title=Name"`
	// Vars are initial values for ${name} expansion.
	Vars map[string]string `json:"vars,omitempty" jsonschema:"title=Variables"`
	// Steps run in order unless redirected by goto or a choice option.
	Steps []Step `json:"steps" jsonschema:"title=Steps,minItems=1"`
}

// Step is one action. Exactly one action field is set.
type Step struct {
	// ID names the step as a goto or choice target.
	ID string `json:"id,omitempty" jsonschema:"title=ID"`

	Show   *Show     `json:"show,omitempty"   jsonschema:"title=Show"`
	Choice *Choice   `json:"choice,omitempty" jsonschema:"title=Choice"`
	Input  *Input    `json:"input,omitempty"  jsonschema:"title=Input"`
	Set    *Settings `json:"set,omitempty"    jsonschema:"title=Set"`
	// Pause sleeps for the given number of milliseconds.
	Pause *int `json:"pause,omitempty" jsonschema:"title=Pause,minimum=0"`
	// Goto continues at the step with this ID.
	Goto string `json:"goto,omitempty" jsonschema:"title=Goto"`
	// End stops the script.
	End bool `json:"end,omitempty" jsonschema:"title=End"`
}

// Frame places a dialog and selects its border. Border is empty for no
// frame, "config" for the configured glyphs, or a preset name.
type Frame struct {
	X      int    `json:"x"                jsonschema:"title=X,minimum=1"`
	Y      int    `json:"y"                jsonschema:"title=Y,minimum=1"`
	Text   string `json:"text"             jsonschema:"title=Text"`
	Border string `json:"border,omitempty" jsonschema:"title=Border"`
}

// Show displays text.
type Show struct {
	Frame `json:",inline"`

	// NoClear keeps the current screen contents.
	NoClear bool `json:"noClear,omitempty" jsonschema:"title=No Clear"`
	// NoKey continues without waiting for a key.
	NoKey bool `json:"noKey,omitempty" jsonschema:"title=No Key"`
}

// Choice asks the user to pick an option.
type Choice struct {
	Frame `json:",inline"`

	Options []Option `json:"options" jsonschema:"title=Options,minItems=1,maxItems=9"`
}

// Option is one choice. Next, if set, is the step to continue at.
type Option struct {
	Label string `json:"label"          jsonschema:"title=Label"`
	Next  string `json:"next,omitempty" jsonschema:"title=Next"`
}

// Input asks the user for a line of text.
type Input struct {
	Frame `json:",inline"`

	// MaxChars limits the answer. Defaults to the configured length.
	MaxChars *int `json:"maxChars,omitempty" jsonschema:"title=Max Characters,minimum=0,maximum=4096"`
	// Var stores the answer for ${name} expansion.
	Var string `json:"var,omitempty" jsonschema:"title=Variable"`
}

// Settings change the render configuration for subsequent dialogs.
type Settings struct {
	Delay *int  `json:"delay,omitempty" jsonschema:"title=Delay,minimum=0"`
	Bell  *bool `json:"bell,omitempty"  jsonschema:"title=Bell"`
	Wrap  *int  `json:"wrap,omitempty"  jsonschema:"title=Wrap,minimum=0"`
	// Reset restores the configured values before applying the others.
	Reset bool `json:"reset,omitempty" jsonschema:"title=Reset"`
}

// New returns an empty [Script].
func New() *Script {
	s := &Script{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	s.EnsureDefaults()

	return s
}

// Demo returns the embedded demo script.
func Demo() []byte {
	return slices.Clone(demoYAML)
}

func (s *Script) EnsureDefaults() {
	if s.Vars == nil {
		s.Vars = map[string]string{}
	}
}

func (s Script) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{Kind})
}

// Index returns the position of the step with the given ID.
func (s *Script) Index(id string) (int, bool) {
	i := slices.IndexFunc(s.Steps, func(st Step) bool {
		return st.ID == id
	})

	return i, i >= 0
}

// Validate checks the step graph. Errors are [*yaml.Error] values pointing at
// the offending field.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return yaml.NewError(ErrNoSteps, yaml.WithPath(path().Child("steps").Build()))
	}

	for name := range s.Vars {
		if !varName.MatchString(name) {
			return yaml.NewError(fmt.Errorf("%w: %q", ErrVarName, name),
				yaml.WithPath(path().Child("vars").Child(name).Build()))
		}
	}

	ids := map[string]bool{}

	for i, st := range s.Steps {
		if st.ID == "" {
			continue
		}
		if ids[st.ID] {
			return yaml.NewError(fmt.Errorf("%w: %q", ErrDuplicateID, st.ID),
				yaml.WithPath(stepPath(i).Child("id").Build()))
		}

		ids[st.ID] = true
	}

	for i, st := range s.Steps {
		err := st.validate(i, ids)
		if err != nil {
			return err
		}
	}

	return nil
}

func (st *Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Show != nil,
		st.Choice != nil,
		st.Input != nil,
		st.Set != nil,
		st.Pause != nil,
		st.Goto != "",
		st.End,
	} {
		if set {
			n++
		}
	}

	return n
}

func (st *Step) validate(i int, ids map[string]bool) error {
	if st.actions() != 1 {
		return yaml.NewError(ErrStepAction, yaml.WithPath(stepPath(i).Build()))
	}

	target := func(id string, p *yaml.PathBuilder) error {
		if ids[id] {
			return nil
		}

		return yaml.NewError(fmt.Errorf("%w: %q", ErrUnknownTarget, id), yaml.WithPath(p.Build()))
	}

	switch {
	case st.Show != nil:
		return st.Show.Frame.validate(stepPath(i).Child("show"))

	case st.Choice != nil:
		p := stepPath(i).Child("choice")

		n := len(st.Choice.Options)
		if n < 1 || n > dialog.MaxChoices {
			return yaml.NewError(fmt.Errorf("%w: got %d", ErrOptionCount, n),
				yaml.WithPath(p.Child("options").Build()))
		}

		for j, o := range st.Choice.Options {
			if o.Next == "" {
				continue
			}

			err := target(o.Next, stepPath(i).Child("choice").Child("options").Index(uint(j)).Child("next"))
			if err != nil {
				return err
			}
		}

		return st.Choice.Frame.validate(p)

	case st.Input != nil:
		p := stepPath(i).Child("input")

		if st.Input.MaxChars != nil && *st.Input.MaxChars < 0 {
			return yaml.NewError(ErrNegative, yaml.WithPath(p.Child("maxChars").Build()))
		}
		if st.Input.Var != "" && !varName.MatchString(st.Input.Var) {
			return yaml.NewError(fmt.Errorf("%w: %q", ErrVarName, st.Input.Var),
				yaml.WithPath(stepPath(i).Child("input").Child("var").Build()))
		}

		return st.Input.Frame.validate(p)

	case st.Set != nil:
		for field, v := range map[string]*int{"delay": st.Set.Delay, "wrap": st.Set.Wrap} {
			if v != nil && *v < 0 {
				return yaml.NewError(ErrNegative, yaml.WithPath(stepPath(i).Child("set").Child(field).Build()))
			}
		}

	case st.Pause != nil:
		if *st.Pause < 0 {
			return yaml.NewError(ErrNegative, yaml.WithPath(stepPath(i).Child("pause").Build()))
		}

	case st.Goto != "":
		return target(st.Goto, stepPath(i).Child("goto"))
	}

	return nil
}

func (f *Frame) validate(p *yaml.PathBuilder) error {
	if f.Border == "" || f.Border == BorderConfig {
		return nil
	}

	if _, ok := border.Presets[f.Border]; !ok {
		return yaml.NewError(fmt.Errorf("%w: %q", ErrBorder, f.Border), yaml.WithPath(p.Child("border").Build()))
	}

	return nil
}

func path() *yaml.PathBuilder {
	return yaml.NewPathBuilder().Root()
}

func stepPath(i int) *yaml.PathBuilder {
	//nolint:gosec // G115: indexes are never negative.
	return path().Child("steps").Index(uint(i))
}
