package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/macropower/textdlg/internal/cli"
	"github.com/macropower/textdlg/pkg/version"
)

func main() {
	// Variables from a .env file in the working directory feed the
	// TEXTDLG_* flag bindings. Existing environment variables win.
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env file", slog.Any("err", err))
	}

	err = fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithCommit(version.Revision),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
	)
	if err != nil {
		os.Exit(1)
	}
}
