package dialog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/screen"
	"github.com/macropower/textdlg/pkg/termmode"
	"github.com/macropower/textdlg/pkg/typewriter"
)

var (
	// ErrNilHandler is reported when a choice or input dialog has no handler.
	ErrNilHandler = errors.New("handler is null")
	// ErrChoiceCount is reported when a choice dialog has fewer than one or
	// more than [MaxChoices] options.
	ErrChoiceCount = errors.New("invalid number of choices")
)

// Dialog draws dialogs and runs their interactions.
type Dialog struct {
	scr  *screen.Screen
	r    *typewriter.Renderer
	ctrl *termmode.Controller
	diag io.Writer
	exit func(code int)
}

// Option configures a [Dialog].
type Option func(*Dialog)

// WithDiagnostics sets where fatal diagnostics are printed. Defaults to
// [os.Stdout].
func WithDiagnostics(w io.Writer) Option {
	return func(d *Dialog) {
		d.diag = w
	}
}

// WithExit replaces the function terminating the process after a fatal
// diagnostic. Defaults to [os.Exit].
func WithExit(exit func(code int)) Option {
	return func(d *Dialog) {
		d.exit = exit
	}
}

// New returns a [Dialog] rendering with r and reading keys through ctrl.
func New(r *typewriter.Renderer, ctrl *termmode.Controller, opts ...Option) *Dialog {
	d := &Dialog{
		scr:  r.Screen(),
		r:    r,
		ctrl: ctrl,
		diag: os.Stdout,
		exit: os.Exit,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Config returns the render configuration.
func (d *Dialog) Config() typewriter.Config {
	return d.r.Config()
}

// SetConfig replaces the render configuration for subsequent dialogs.
func (d *Dialog) SetConfig(cfg typewriter.Config) {
	d.r.SetConfig(cfg)
}

// fatal prints a diagnostic and terminates the process. It returns err for
// exit functions that do not terminate.
func (d *Dialog) fatal(op string, err error) error {
	slog.Error("fatal dialog error", slog.String("op", op), slog.Any("err", err))

	_, werr := fmt.Fprintf(d.diag, "\nError in %s: %v\n\n", op, err)
	if werr != nil {
		slog.Error("write diagnostic", slog.Any("err", werr))
	}

	d.exit(1)

	return fmt.Errorf("%s: %w", op, err)
}

// begin clears the screen if requested and draws the frame, if any, so it is
// visible while the text is still animating.
func (d *Dialog) begin(clearScreen bool, frame *border.Frame) error {
	if clearScreen {
		d.scr.Clear()
	}

	if frame != nil {
		return border.Draw(d.scr, *frame)
	}

	return nil
}

// waitKey blocks for a single keypress, discards it and drops pending input.
func (d *Dialog) waitKey() error {
	key, err := d.ctrl.ReadKey()
	if err != nil {
		return fmt.Errorf("wait for key: %w", err)
	}

	slog.Debug("key pressed", slog.Int("key", int(key)))

	return d.ctrl.Discard()
}

// lastRow returns the row of the last line of a text block starting at y.
func lastRow(y int, lines []string) int {
	return y + len(lines) - 1
}
