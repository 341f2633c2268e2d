package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/textdlg/pkg/config"
)

// ErrUnknownKind is returned when a schema is requested for a kind that
// does not exist.
var ErrUnknownKind = errors.New("unknown kind")

var schemaKinds = map[string]string{
	"config": "configs.v1beta1.json",
	"script": "scripts.v1beta1.json",
}

type SchemaArgs struct {
	OutDir string
}

func NewSchemaCmd() *cobra.Command {
	sa := &SchemaArgs{}

	cmd := &cobra.Command{
		Use:       "schema [config|script]",
		Short:     "Print or write the JSON schemas of textdlg documents",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: slices.Sorted(maps.Keys(schemaKinds)),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := config.Schemas()
			if err != nil {
				return fmt.Errorf("generate schemas: %w", err)
			}

			if sa.OutDir != "" {
				return writeSchemas(sa.OutDir, schemas)
			}

			kind := "config"
			if len(args) > 0 {
				kind = args[0]
			}

			name, ok := schemaKinds[kind]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(schemas[name]), "\n")))

			return nil
		},
	}

	cmd.Flags().StringVarP(&sa.OutDir, "out-dir", "o", "", "Write every schema to this directory")

	err := cmd.MarkFlagDirname("out-dir")
	if err != nil {
		panic(fmt.Errorf("mark out-dir flag: %w", err))
	}

	bindEnvVars(cmd)

	return cmd
}

func writeSchemas(dir string, schemas map[string][]byte) error {
	err := os.MkdirAll(dir, 0o750)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		path := filepath.Join(dir, name)

		err := os.WriteFile(path, schemas[name], 0o600)
		if err != nil {
			return fmt.Errorf("write schema: %w", err)
		}

		slog.Info("schema written", slog.String("path", path))
	}

	return nil
}
