// Package screen writes the escape sequences that clear the terminal and
// position its cursor.
//
// Output is buffered until [Screen.Flush].
package screen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	// ClearSequence blanks the whole terminal.
	ClearSequence = "\x1b[2J"
	// Bell is the audible bell control character.
	Bell = '\a'
)

// Screen emits text and cursor control to a terminal.
type Screen struct {
	w   *bufio.Writer
	err error
}

// New returns a [Screen] writing to w.
func New(w io.Writer) *Screen {
	return &Screen{w: bufio.NewWriter(w)}
}

// MoveSequence returns the sequence placing the cursor at the 1-based
// (col, row). The row comes first on the wire.
func MoveSequence(col, row int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// Clear blanks the terminal.
func (s *Screen) Clear() {
	s.writeString(ClearSequence)
}

// MoveTo positions the cursor at the 1-based (col, row).
func (s *Screen) MoveTo(col, row int) {
	s.writeString(MoveSequence(col, row))
}

// Put writes a single character at the cursor.
func (s *Screen) Put(r rune) {
	if s.err != nil {
		return
	}

	_, s.err = s.w.WriteRune(r)
}

// PutString writes s at the cursor.
func (s *Screen) PutString(str string) {
	s.writeString(str)
}

// Ring writes the bell control character.
func (s *Screen) Ring() {
	s.Put(Bell)
}

// Flush sends buffered output to the terminal. It reports the first error
// encountered by any write since the previous Flush.
func (s *Screen) Flush() error {
	err := s.err
	s.err = nil

	if err == nil {
		err = s.w.Flush()
	}
	if err != nil {
		return fmt.Errorf("write screen: %w", err)
	}

	return nil
}

func (s *Screen) writeString(str string) {
	if s.err != nil {
		return
	}

	_, s.err = s.w.WriteString(str)
}
