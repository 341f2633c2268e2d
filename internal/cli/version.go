package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/textdlg/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return version.Get().Print(cmd.OutOrStdout(), cmdName) //nolint:wrapcheck // Already annotated.
		},
	}
}
