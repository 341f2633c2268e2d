package dialog

import (
	"fmt"
	"log/slog"

	"github.com/macropower/textdlg/pkg/border"
	"github.com/macropower/textdlg/pkg/termmode"
)

const inputOp = "show_input_dialog"

// InputPrompt is drawn at the start of the input row.
const InputPrompt = "> "

// MaxInputChars is the largest accepted input length. Larger limits are
// lowered to it.
const MaxInputChars = 4096

// ShowInput clears the screen, renders the prompt, and reads one line of at
// most maxChars characters two rows below it. Longer lines are truncated. h
// is called exactly once with the text. maxChars is clamped to
// [0, MaxInputChars]. If the read leaves the terminal in another mode than
// before the prompt, that mode is restored before h runs.
//
// A nil handler is a programming error: a diagnostic is printed and the
// process exits.
func (d *Dialog) ShowInput(x, y int, text string, maxChars int, h InputHandler) error {
	return d.input(x, y, text, maxChars, h, nil)
}

// ShowInputBorder is [Dialog.ShowInput] with a frame drawn by g. The frame is
// as wide as the wider of the prompt and maxChars.
func (d *Dialog) ShowInputBorder(x, y int, text string, maxChars int, g border.Glyphs, h InputHandler) error {
	return d.input(x, y, text, maxChars, h, &g)
}

func (d *Dialog) input(x, y int, text string, maxChars int, h InputHandler, g *border.Glyphs) error {
	if isNilInputHandler(h) {
		return d.fatal(inputOp, ErrNilHandler)
	}

	maxChars = min(max(maxChars, 0), MaxInputChars)

	saved, err := d.ctrl.Snapshot()
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	text = d.r.Prepare(text)
	lines := border.Lines(text)

	var frame *border.Frame
	if g != nil {
		f := border.ForInput(x, y, lines, maxChars, *g)
		frame = &f
	}

	err = d.begin(true, frame)
	if err != nil {
		return err
	}

	err = d.r.Draw(x, y, text)
	if err != nil {
		return err
	}

	d.scr.MoveTo(x, lastRow(y, lines)+2)
	d.scr.PutString(InputPrompt)

	err = d.scr.Flush()
	if err != nil {
		return fmt.Errorf("draw input prompt: %w", err)
	}

	line, err := d.ctrl.ReadLine(maxChars)

	rerr := d.restoreDrift(saved)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if rerr != nil {
		return rerr
	}

	slog.Debug("input read", slog.Int("chars", len([]rune(line))))

	h.HandleInput(line)

	return nil
}

// restoreDrift reinstalls saved if the terminal is no longer in that mode.
func (d *Dialog) restoreDrift(saved termmode.Mode) error {
	current, err := d.ctrl.Snapshot()
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if current == saved {
		return nil
	}

	slog.Debug("terminal mode changed during input, restoring",
		slog.Bool("canonical", saved.Canonical),
		slog.Bool("echo", saved.Echo),
	)

	err = d.ctrl.Restore(saved)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	return nil
}
