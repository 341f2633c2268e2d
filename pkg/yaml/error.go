package yaml

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

var errNoNode = errors.New("no node at path")

// PathBuilder builds a [*yaml.Path] for [WithPath].
type PathBuilder = yaml.PathBuilder

func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// Error is a YAML error located either by a [*token.Token] or by a
// [*yaml.Path] into Source.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor highlights the annotated source with ANSI colors.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

// Annotate applies opts to err if it is an [*Error]. Other errors are
// returned unchanged.
func Annotate(err error, opts ...ErrorOpt) error {
	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range opts {
		opt(yamlErr)
	}

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Token != nil {
		var pp printer.Printer

		pos := e.Token.Position

		return fmt.Sprintf("[%d:%d] %v\n%s", pos.Line, pos.Column, e.Err, pp.PrintErrorToken(e.Token, e.Colored))
	}

	if e.Path == nil {
		return e.Err.Error()
	}

	if len(e.Source) == 0 {
		return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	}

	tk, err := tokenAt(e.Source, e.Path)
	if err != nil {
		slog.Debug("annotate yaml error",
			slog.String("path", e.Path.String()),
			slog.Any("err", err),
		)

		return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	}

	var pp printer.Printer

	return fmt.Sprintf("[%d:%d] error at %s: %v\n%s",
		tk.Position.Line, tk.Position.Column, e.Path, e.Err,
		pp.PrintErrorToken(tk, e.Colored),
	)
}

// tokenAt returns the token of the value at path in source.
func tokenAt(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", path, err)
	}
	if node == nil {
		return nil, fmt.Errorf("filter %s: %w", path, errNoNode)
	}

	return node.GetToken(), nil
}
