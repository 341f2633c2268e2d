package dialog

import (
	"fmt"
	"log/slog"

	"github.com/macropower/textdlg/pkg/border"
)

// MaxChoices is the number of options addressable with a single digit.
const MaxChoices = 9

const choiceOp = "show_choice_dialog"

// ShowChoice clears the screen, renders the prompt and the numbered choices,
// and blocks until a digit between 1 and len(choices) is pressed. Any other
// key is ignored. h is then called exactly once with the picked index.
//
// A nil handler or a number of choices outside [1, MaxChoices] is a
// programming error: a diagnostic is printed and the process exits.
func (d *Dialog) ShowChoice(x, y int, text string, choices []string, h ChoiceHandler) error {
	return d.choice(x, y, text, choices, h, nil)
}

// ShowChoiceBorder is [Dialog.ShowChoice] with a frame drawn by g around the
// prompt and choices.
func (d *Dialog) ShowChoiceBorder(x, y int, text string, g border.Glyphs, choices []string, h ChoiceHandler) error {
	return d.choice(x, y, text, choices, h, &g)
}

func (d *Dialog) choice(x, y int, text string, choices []string, h ChoiceHandler, g *border.Glyphs) error {
	if isNilChoiceHandler(h) {
		return d.fatal(choiceOp, ErrNilHandler)
	}
	if n := len(choices); n < 1 || n > MaxChoices {
		return d.fatal(choiceOp, fmt.Errorf("%w (%d)", ErrChoiceCount, n))
	}

	text = d.r.Prepare(text)
	lines := border.Lines(text)

	var frame *border.Frame
	if g != nil {
		f := border.ForChoice(x, y, lines, choices, *g)
		frame = &f
	}

	err := d.begin(true, frame)
	if err != nil {
		return err
	}

	err = d.r.Draw(x, y, text)
	if err != nil {
		return err
	}

	first := lastRow(y, lines) + 2
	for i, label := range choices {
		d.scr.MoveTo(x, first+i)
		d.scr.PutString(border.ChoiceLabel(i+1, label))
	}

	err = d.scr.Flush()
	if err != nil {
		return fmt.Errorf("draw choices: %w", err)
	}

	choice, err := d.readChoice(len(choices))
	if err != nil {
		return err
	}

	slog.Debug("choice made", slog.Int("choice", choice))

	h.HandleChoice(choice)

	return d.ctrl.Discard()
}

// readChoice reads keys in raw mode until one selects a choice in [1, n].
// The original mode is restored before returning.
func (d *Dialog) readChoice(n int) (int, error) {
	g, err := d.ctrl.EnterRaw()
	if err != nil {
		return 0, fmt.Errorf("read choice: %w", err)
	}
	defer g.Release()

	for {
		key, err := g.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}

		choice, ok := choiceKey(key, n)
		if !ok {
			slog.Debug("ignore key", slog.Int("key", int(key)))
			continue
		}

		err = g.Restore()
		if err != nil {
			return 0, err
		}

		return choice, nil
	}
}

// choiceKey maps an ASCII digit key to a choice in [1, n].
func choiceKey(key byte, n int) (int, bool) {
	if key < '1' || key > '9' {
		return 0, false
	}

	choice := int(key - '0')
	if choice > n {
		return 0, false
	}

	return choice, true
}
