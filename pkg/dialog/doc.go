// Package dialog shows RPG style textbox dialogs on a terminal.
//
// Every show variant composes the same steps: an optional screen clear, an
// optional border, the typewriter pass and an optional wait for a single
// keypress. Choice dialogs resolve with a single digit key and input dialogs
// with one line of text; both call their handler exactly once.
//
// A [Dialog] assumes exclusive control of the terminal and is not safe for
// concurrent use.
package dialog
