package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/textdlg/pkg/log"
)

const (
	cmdName = "textdlg"
	cmdDesc = `Typewriter-style dialog boxes for the terminal.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// Option configures the root command.
type Option func(*RunArgs)

// WithTerminal replaces the terminal used to play scripts.
func WithTerminal(open TerminalFunc) Option {
	return func(ra *RunArgs) {
		ra.openTerminal = open
	}
}

func NewRootCmd(opts ...Option) *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	for _, opt := range opts {
		opt(runArgs)
	}

	runCmd := NewRunCmd(runArgs)
	cmd := &cobra.Command{
		Use:               cmdName + " [script]",
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		ValidArgsFunction: runCmd.ValidArgsFunction,
		Args:              runCmd.Args,
		RunE:              runCmd.RunE,
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)
	cmd.AddCommand(
		runCmd,
		NewDemoCmd(runArgs),
		NewSchemaCmd(),
		NewVersionCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		err := log.Setup(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}

		return nil
	}
}
