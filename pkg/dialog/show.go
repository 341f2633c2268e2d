package dialog

import (
	"log/slog"

	"github.com/macropower/textdlg/pkg/border"
)

// Options selects the behaviour of [Dialog.Render].
type Options struct {
	// Border draws a frame around the text when non-nil.
	Border *border.Glyphs
	// NoClear keeps the current screen contents.
	NoClear bool
	// NoKey returns without waiting for a keypress.
	NoKey bool
}

// Render shows text at the 1-based (x, y) with the behaviour selected by o.
// Empty text returns immediately without clearing or waiting.
func (d *Dialog) Render(x, y int, text string, o Options) error {
	if text == "" {
		return nil
	}

	slog.Debug("show dialog",
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Bool("clear", !o.NoClear),
		slog.Bool("border", o.Border != nil),
		slog.Bool("wait", !o.NoKey),
	)

	text = d.r.Prepare(text)

	var frame *border.Frame
	if o.Border != nil {
		f := border.ForText(x, y, border.Lines(text), *o.Border)
		frame = &f
	}

	err := d.begin(!o.NoClear, frame)
	if err != nil {
		return err
	}

	err = d.r.Draw(x, y, text)
	if err != nil {
		return err
	}

	if o.NoKey {
		return nil
	}

	return d.waitKey()
}

// Show clears the screen, renders text and waits for a key.
func (d *Dialog) Show(x, y int, text string) error {
	return d.Render(x, y, text, Options{})
}

// ShowNoKey clears the screen and renders text.
func (d *Dialog) ShowNoKey(x, y int, text string) error {
	return d.Render(x, y, text, Options{NoKey: true})
}

// ShowNoClear renders text over the current screen and waits for a key.
func (d *Dialog) ShowNoClear(x, y int, text string) error {
	return d.Render(x, y, text, Options{NoClear: true})
}

// ShowNoKeyNoClear renders text over the current screen.
func (d *Dialog) ShowNoKeyNoClear(x, y int, text string) error {
	return d.Render(x, y, text, Options{NoClear: true, NoKey: true})
}

// ShowBorder is [Dialog.Show] with a frame drawn by g.
func (d *Dialog) ShowBorder(x, y int, text string, g border.Glyphs) error {
	return d.Render(x, y, text, Options{Border: &g})
}

// ShowBorderNoKey is [Dialog.ShowNoKey] with a frame drawn by g.
func (d *Dialog) ShowBorderNoKey(x, y int, text string, g border.Glyphs) error {
	return d.Render(x, y, text, Options{Border: &g, NoKey: true})
}

// ShowBorderNoClear is [Dialog.ShowNoClear] with a frame drawn by g.
func (d *Dialog) ShowBorderNoClear(x, y int, text string, g border.Glyphs) error {
	return d.Render(x, y, text, Options{Border: &g, NoClear: true})
}

// ShowBorderNoKeyNoClear is [Dialog.ShowNoKeyNoClear] with a frame drawn by g.
func (d *Dialog) ShowBorderNoKeyNoClear(x, y int, text string, g border.Glyphs) error {
	return d.Render(x, y, text, Options{Border: &g, NoClear: true, NoKey: true})
}
