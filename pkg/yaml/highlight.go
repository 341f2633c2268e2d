package yaml

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// DefaultStyle is the chroma style used by [Highlight].
const DefaultStyle = "onedark"

// FormatterFor returns the chroma formatter name matching a color profile.
func FormatterFor(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal8"
	}

	return "noop"
}

// Highlight writes src to w with YAML syntax highlighting for profile.
func Highlight(w io.Writer, src []byte, p termenv.Profile) error {
	lexer := chroma.Coalesce(lexers.Get("yaml"))

	it, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return fmt.Errorf("tokenise yaml: %w", err)
	}

	err = formatters.Get(FormatterFor(p)).Format(w, styles.Get(DefaultStyle), it)
	if err != nil {
		return fmt.Errorf("format yaml: %w", err)
	}

	return nil
}
