// Package border lays out and draws the rectangular frame around a dialog.
package border

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/macropower/textdlg/pkg/screen"
)

// Glyphs are the characters a frame is drawn with.
type Glyphs struct {
	Corner rune // Four corners.
	Side   rune // Left and right edges.
	Plane  rune // Top and bottom edges.
}

var (
	// ASCII draws +---+ frames.
	ASCII = Glyphs{Corner: '+', Side: '|', Plane: '-'}
	// Hash draws frames entirely of '#'.
	Hash = Glyphs{Corner: '#', Side: '#', Plane: '#'}
	// Star draws *===* frames.
	Star = Glyphs{Corner: '*', Side: '!', Plane: '='}

	// Presets maps preset names to glyphs.
	Presets = map[string]Glyphs{
		"ascii": ASCII,
		"hash":  Hash,
		"star":  Star,
	}
)

// Part identifies which glyph a perimeter cell uses.
type Part int

const (
	PartCorner Part = iota
	PartSide
	PartPlane
)

// Cell is one perimeter position of a [Frame].
type Cell struct {
	Col   int
	Row   int
	Part  Part
	Glyph rune
}

// Frame encloses the W x H block whose top left character is at (X, Y).
type Frame struct {
	Glyphs Glyphs
	X, Y   int
	W, H   int
}

// Cells returns every perimeter cell exactly once: the top row left to right,
// the bottom row left to right, then the left and right edge of each
// interior row.
func (f Frame) Cells() []Cell {
	w, h := max(f.W, 0), max(f.H, 0)

	left, right := f.X-1, f.X+w
	top, bottom := f.Y-1, f.Y+h

	cells := make([]Cell, 0, 2*(w+2)+2*h)

	for _, row := range []int{top, bottom} {
		for col := left; col <= right; col++ {
			part := PartPlane
			if col == left || col == right {
				part = PartCorner
			}

			cells = append(cells, f.cell(col, row, part))
		}
	}

	for row := f.Y; row < bottom; row++ {
		cells = append(cells,
			f.cell(left, row, PartSide),
			f.cell(right, row, PartSide),
		)
	}

	return cells
}

func (f Frame) cell(col, row int, part Part) Cell {
	c := Cell{Col: col, Row: row, Part: part}

	switch part {
	case PartCorner:
		c.Glyph = f.Glyphs.Corner
	case PartSide:
		c.Glyph = f.Glyphs.Side
	case PartPlane:
		c.Glyph = f.Glyphs.Plane
	}

	return c
}

// Draw writes the frame and flushes it so it is visible at once.
func Draw(scr *screen.Screen, f Frame) error {
	for _, c := range f.Cells() {
		scr.MoveTo(c.Col, c.Row)
		scr.Put(c.Glyph)
	}

	err := scr.Flush()
	if err != nil {
		return fmt.Errorf("draw border: %w", err)
	}

	return nil
}

// Measure returns the width of the widest line in terminal columns and the
// number of lines.
func Measure(lines []string) (int, int) {
	w := 0
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}

	return w, len(lines)
}

// Lines splits text at line breaks.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// ChoiceLabel formats the k-th (1-based) option of a choice dialog.
func ChoiceLabel(k int, label string) string {
	return strconv.Itoa(k) + ". " + label
}

// ForText returns the frame around a text block.
func ForText(x, y int, lines []string, g Glyphs) Frame {
	w, h := Measure(lines)

	return Frame{X: x, Y: y, W: w, H: h, Glyphs: g}
}

// ForChoice returns the frame around a prompt followed by a blank row and one
// row per option.
func ForChoice(x, y int, lines, choices []string, g Glyphs) Frame {
	w, h := Measure(lines)

	for i, label := range choices {
		w = max(w, runewidth.StringWidth(ChoiceLabel(i+1, label)))
	}

	return Frame{X: x, Y: y, W: w, H: h + 1 + len(choices), Glyphs: g}
}

// ForInput returns the frame around a prompt followed by a blank row and the
// input row. The width is the wider of the prompt and maxChars.
func ForInput(x, y int, lines []string, maxChars int, g Glyphs) Frame {
	w, h := Measure(lines)

	return Frame{X: x, Y: y, W: max(w, maxChars), H: h + 2, Glyphs: g}
}
