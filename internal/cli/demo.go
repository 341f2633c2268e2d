package cli

import (
	"github.com/spf13/cobra"
)

func NewDemoCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play the built-in demo script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, ra, loadDemo)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
