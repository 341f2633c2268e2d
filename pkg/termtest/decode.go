package termtest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// OpKind identifies a decoded terminal operation.
type OpKind int

const (
	// OpChar is a printed character.
	OpChar OpKind = iota
	// OpMove is a cursor position sequence (CUP).
	OpMove
	// OpClear is an erase display sequence (ED).
	OpClear
	// OpBell is the BEL control character.
	OpBell
	// OpOther is any other sequence or control.
	OpOther
)

// Op is one decoded terminal operation.
type Op struct {
	Seq  string
	Kind OpKind
	Col  int  // 1-based, for OpMove.
	Row  int  // 1-based, for OpMove.
	Mode int  // Erase mode, for OpClear.
	Rune rune // For OpChar.
}

func (o Op) String() string {
	switch o.Kind {
	case OpChar:
		return fmt.Sprintf("char(%q)", o.Rune)
	case OpMove:
		return fmt.Sprintf("move(%d,%d)", o.Col, o.Row)
	case OpClear:
		return fmt.Sprintf("clear(%d)", o.Mode)
	case OpBell:
		return "bell"
	}

	return fmt.Sprintf("other(%q)", o.Seq)
}

// Move returns the operation produced by a cursor move to (col, row).
func Move(col, row int) Op {
	return Op{Kind: OpMove, Col: col, Row: row}
}

// Char returns the operation produced by printing r.
func Char(r rune) Op {
	return Op{Kind: OpChar, Rune: r}
}

// Clear returns the operation produced by clearing the whole screen.
func Clear() Op {
	return Op{Kind: OpClear, Mode: 2}
}

// Bell returns the operation produced by the BEL control.
func Bell() Op {
	return Op{Kind: OpBell}
}

// Decode splits terminal output into operations. The Seq field is cleared so
// that results compare equal to values built with [Move], [Char], [Clear] and
// [Bell].
func Decode(out string) []Op {
	var (
		ops   []Op
		state byte
	)

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(out)
	for len(input) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(input, state, p)

		ops = append(ops, decodeOne(p, string(seq), width))

		input = input[n:]
		state = newState
	}

	return ops
}

func decodeOne(p *ansi.Parser, seq string, width int) Op {
	switch {
	case seq == string(rune(ansi.BEL)):
		return Bell()

	case ansi.HasCsiPrefix([]byte(seq)) && strings.HasSuffix(seq, "H"):
		params := p.Params()
		row, col := 1, 1
		if len(params) > 0 {
			row = params[0].Param(1)
		}
		if len(params) > 1 {
			col = params[1].Param(1)
		}

		return Move(col, row)

	case ansi.HasCsiPrefix([]byte(seq)) && strings.HasSuffix(seq, "J"):
		mode := 0
		if params := p.Params(); len(params) > 0 {
			mode = params[0].Param(0)
		}

		return Op{Kind: OpClear, Mode: mode}

	case width > 0:
		r := []rune(seq)
		if len(r) == 1 {
			return Char(r[0])
		}
	}

	return Op{Kind: OpOther, Seq: seq}
}

// Pos is a 1-based screen coordinate.
type Pos struct {
	Col int
	Row int
}

// Cells replays ops onto a blank screen and returns the final contents of
// every written cell. A clear erases everything written before it.
func Cells(ops []Op) map[Pos]rune {
	cells := map[Pos]rune{}
	cur := Pos{Col: 1, Row: 1}

	for _, op := range ops {
		switch op.Kind {
		case OpMove:
			cur = Pos{Col: op.Col, Row: op.Row}
		case OpClear:
			clear(cells)
		case OpChar:
			cells[cur] = op.Rune
			cur.Col++
		}
	}

	return cells
}

// Chars returns the printed characters of ops in order.
func Chars(ops []Op) string {
	var sb strings.Builder
	for _, op := range ops {
		if op.Kind == OpChar {
			sb.WriteRune(op.Rune)
		}
	}

	return sb.String()
}
