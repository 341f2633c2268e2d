// Package typewriter reveals text on a terminal one character at a time.
//
// A [Renderer] positions the cursor before every character, so multi-line
// text is laid out as a left aligned block anchored at the starting column.
// The pace is set by [Config.Delay]: rendering n visible characters takes at
// least n times the delay.
//
// Characters are counted after NFC composition: a base letter followed by a
// combining mark is one character, drawn with one cursor move and one pause.
//
// A Renderer holds mutable configuration and is not safe for concurrent use.
package typewriter

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/unicode/norm"

	"github.com/macropower/textdlg/pkg/clock"
	"github.com/macropower/textdlg/pkg/screen"
)

// DefaultDelay is the pause after each character unless configured otherwise.
const DefaultDelay = 70 * time.Millisecond

// Config controls the pace and side effects of a render.
type Config struct {
	// Delay is the pause after each visible character.
	Delay time.Duration
	// Bell rings the terminal bell with every visible character.
	Bell bool
	// Wrap word-wraps text to this many columns. Zero disables wrapping.
	Wrap int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Delay: DefaultDelay}
}

// Renderer writes text with the typewriter effect.
type Renderer struct {
	scr     *screen.Screen
	sleeper clock.Sleeper
	cfg     Config
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(r *Renderer) {
		r.cfg = cfg
	}
}

// WithSleeper replaces the pause implementation.
func WithSleeper(s clock.Sleeper) Option {
	return func(r *Renderer) {
		r.sleeper = s
	}
}

// New returns a [Renderer] drawing on scr.
func New(scr *screen.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		scr:     scr,
		sleeper: clock.Real{},
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Config returns the current configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// SetConfig replaces the configuration used by subsequent renders.
func (r *Renderer) SetConfig(cfg Config) {
	r.cfg = cfg
}

// Screen returns the screen the renderer draws on.
func (r *Renderer) Screen() *screen.Screen {
	return r.scr
}

// Prepare normalises text the way [Renderer.Render] does before drawing:
// CRLF becomes LF, characters are NFC composed and, if configured, lines are
// word-wrapped.
func (r *Renderer) Prepare(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = norm.NFC.String(text)

	if r.cfg.Wrap > 0 {
		text = wordwrap.String(text, r.cfg.Wrap)
	}

	return text
}

// Render prepares text and draws it starting at the 1-based (x, y).
func (r *Renderer) Render(x, y int, text string) error {
	return r.Draw(x, y, r.Prepare(text))
}

// Draw writes already prepared text starting at the 1-based (x, y). Empty
// text draws nothing.
func (r *Renderer) Draw(x, y int, text string) error {
	if text == "" {
		return nil
	}

	cfg := r.cfg
	col, row := x, y
	sleepFailed := false

	for _, ch := range text {
		if ch == '\n' {
			row++
			col = x

			continue
		}

		r.scr.MoveTo(col, row)
		r.scr.Put(ch)
		if cfg.Bell {
			r.scr.Ring()
		}

		err := r.scr.Flush()
		if err != nil {
			return fmt.Errorf("render at %d,%d: %w", col, row, err)
		}

		err = r.sleeper.Sleep(cfg.Delay)
		if err != nil && !sleepFailed {
			sleepFailed = true

			slog.Warn("skip character delay",
				slog.Duration("delay", cfg.Delay),
				slog.Any("err", err),
			)
		}

		col += max(runewidth.RuneWidth(ch), 1)
	}

	slog.Debug("rendered text",
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Int("rows", row-y+1),
	)

	return nil
}
