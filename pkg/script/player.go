// Package script plays dialog scripts.
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/macropower/textdlg/api/v1beta1/scripts"
	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/clock"
	"github.com/macropower/textdlg/pkg/dialog"
	"github.com/macropower/textdlg/pkg/log"
	"github.com/macropower/textdlg/pkg/typewriter"
)

// ErrStepLimit is returned when a script runs more steps than allowed.
var ErrStepLimit = errors.New("step limit exceeded")

var errNoChoice = errors.New("no option picked")

// Dialog shows dialogs. It is implemented by [*dialog.Dialog].
type Dialog interface {
	Render(x, y int, text string, o dialog.Options) error
	ShowChoice(x, y int, text string, choices []string, h dialog.ChoiceHandler) error
	ShowChoiceBorder(x, y int, text string, g border.Glyphs, choices []string, h dialog.ChoiceHandler) error
	ShowInput(x, y int, text string, maxChars int, h dialog.InputHandler) error
	ShowInputBorder(x, y int, text string, maxChars int, g border.Glyphs, h dialog.InputHandler) error
	Config() typewriter.Config
	SetConfig(cfg typewriter.Config)
}

// Player runs [scripts.Script] documents against a [Dialog].
type Player struct {
	d         Dialog
	sleeper   clock.Sleeper
	glyphs    border.Glyphs
	maxChars  int
	stepLimit int
}

// Option configures a [Player].
type Option func(*Player)

// WithSleeper sets the clock used by pause steps.
func WithSleeper(s clock.Sleeper) Option {
	return func(p *Player) {
		p.sleeper = s
	}
}

// WithGlyphs sets the glyphs used by steps with border "config".
func WithGlyphs(g border.Glyphs) Option {
	return func(p *Player) {
		p.glyphs = g
	}
}

// WithMaxChars sets the input length used when a step does not set one.
func WithMaxChars(n int) Option {
	return func(p *Player) {
		p.maxChars = n
	}
}

// WithStepLimit stops scripts after n steps. Zero means no limit.
func WithStepLimit(n int) Option {
	return func(p *Player) {
		p.stepLimit = n
	}
}

// NewPlayer returns a [Player] showing dialogs with d.
func NewPlayer(d Dialog, opts ...Option) *Player {
	p := &Player{
		d:        d,
		sleeper:  clock.Real{},
		glyphs:   border.ASCII,
		maxChars: 30,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result summarises a finished script.
type Result struct {
	// Vars holds the script variables, including captured input.
	Vars map[string]string
	// Choices lists the picked options in order.
	Choices []int
	// Steps counts the executed steps.
	Steps int
}

// run is the state of one script execution.
type run struct {
	p      *Player
	s      *scripts.Script
	logger *slog.Logger
	base   typewriter.Config
	res    Result
}

// Play runs s from its first step until it ends, falls off the last step,
// or a dialog fails. The render configuration is restored afterwards. ctx is
// checked between steps.
func (p *Player) Play(ctx context.Context, s *scripts.Script) (Result, error) {
	r := &run{
		p:      p,
		s:      s,
		logger: log.FromContext(ctx).With(slog.String("script", s.Name)),
		base:   p.d.Config(),
		res: Result{
			Vars: maps.Clone(s.Vars),
		},
	}
	if r.res.Vars == nil {
		r.res.Vars = map[string]string{}
	}

	defer p.d.SetConfig(r.base)

	r.logger.Debug("play script", slog.Int("steps", len(s.Steps)))

	i := 0
	for i >= 0 && i < len(s.Steps) {
		err := ctx.Err()
		if err != nil {
			return r.res, fmt.Errorf("play script: %w", err)
		}

		if p.stepLimit > 0 && r.res.Steps >= p.stepLimit {
			return r.res, fmt.Errorf("play script: %w (%d)", ErrStepLimit, p.stepLimit)
		}

		r.res.Steps++

		next, err := r.step(i)
		if err != nil {
			return r.res, fmt.Errorf("step %d: %w", i, err)
		}

		i = next
	}

	r.logger.Debug("script finished", slog.Int("steps", r.res.Steps))

	return r.res, nil
}

// step executes step i and returns the index of the next step, or -1 to
// stop.
func (r *run) step(i int) (int, error) {
	st := r.s.Steps[i]
	next := i + 1

	switch {
	case st.Show != nil:
		return next, r.show(st.Show)

	case st.Choice != nil:
		picked, err := r.choice(st.Choice)
		if err != nil {
			return 0, err
		}

		if target := st.Choice.Options[picked-1].Next; target != "" {
			return r.target(target)
		}

		return next, nil

	case st.Input != nil:
		return next, r.input(st.Input)

	case st.Set != nil:
		r.set(st.Set)

		return next, nil

	case st.Pause != nil:
		r.logger.Debug("pause", slog.Int("ms", *st.Pause))

		err := r.p.sleeper.Sleep(clock.Millis(*st.Pause))
		if err != nil {
			return 0, fmt.Errorf("pause: %w", err)
		}

		return next, nil

	case st.Goto != "":
		return r.target(st.Goto)

	case st.End:
		return -1, nil
	}

	return 0, scripts.ErrStepAction
}

func (r *run) target(id string) (int, error) {
	i, ok := r.s.Index(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", scripts.ErrUnknownTarget, id)
	}

	return i, nil
}

func (r *run) show(s *scripts.Show) error {
	g, err := r.glyphs(s.Border)
	if err != nil {
		return err
	}

	return r.p.d.Render(s.X, s.Y, r.expand(s.Text), dialog.Options{ //nolint:wrapcheck // Step index added by caller.
		Border:  g,
		NoClear: s.NoClear,
		NoKey:   s.NoKey,
	})
}

func (r *run) choice(c *scripts.Choice) (int, error) {
	g, err := r.glyphs(c.Border)
	if err != nil {
		return 0, err
	}

	labels := make([]string, 0, len(c.Options))
	for _, o := range c.Options {
		labels = append(labels, r.expand(o.Label))
	}

	picked := 0
	h := dialog.ChoiceHandlerFunc(func(choice int) {
		picked = choice
	})

	text := r.expand(c.Text)
	if g != nil {
		err = r.p.d.ShowChoiceBorder(c.X, c.Y, text, *g, labels, h)
	} else {
		err = r.p.d.ShowChoice(c.X, c.Y, text, labels, h)
	}

	if err != nil {
		return 0, err //nolint:wrapcheck // Step index added by caller.
	}
	if picked < 1 || picked > len(labels) {
		return 0, fmt.Errorf("%w: got %d", errNoChoice, picked)
	}

	r.logger.Debug("picked option", slog.Int("choice", picked), slog.String("label", labels[picked-1]))
	r.res.Choices = append(r.res.Choices, picked)

	return picked, nil
}

func (r *run) input(in *scripts.Input) error {
	g, err := r.glyphs(in.Border)
	if err != nil {
		return err
	}

	maxChars := r.p.maxChars
	if in.MaxChars != nil {
		maxChars = *in.MaxChars
	}

	h := dialog.InputHandlerFunc(func(text string) {
		if in.Var != "" {
			r.res.Vars[in.Var] = text
		}
	})

	text := r.expand(in.Text)
	if g != nil {
		return r.p.d.ShowInputBorder(in.X, in.Y, text, maxChars, *g, h) //nolint:wrapcheck // Step index added by caller.
	}

	return r.p.d.ShowInput(in.X, in.Y, text, maxChars, h) //nolint:wrapcheck // Step index added by caller.
}

func (r *run) set(s *scripts.Settings) {
	cfg := r.p.d.Config()
	if s.Reset {
		cfg = r.base
	}

	if s.Delay != nil {
		cfg.Delay = clock.Millis(*s.Delay)
	}
	if s.Bell != nil {
		cfg.Bell = *s.Bell
	}
	if s.Wrap != nil {
		cfg.Wrap = *s.Wrap
	}

	r.logger.Debug("set render config",
		slog.Duration("delay", cfg.Delay),
		slog.Bool("bell", cfg.Bell),
		slog.Int("wrap", cfg.Wrap),
	)

	r.p.d.SetConfig(cfg)
}

func (r *run) glyphs(name string) (*border.Glyphs, error) {
	switch name {
	case "":
		return nil, nil
	case scripts.BorderConfig:
		g := r.p.glyphs

		return &g, nil
	}

	g, ok := border.Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", scripts.ErrBorder, name)
	}

	return &g, nil
}

// expand replaces ${name} and $name with script variables. Unknown names
// expand to nothing.
func (r *run) expand(text string) string {
	return os.Expand(text, func(name string) string {
		v, ok := r.res.Vars[name]
		if !ok {
			r.logger.Debug("unknown variable", slog.String("name", name))
		}

		return v
	})
}
