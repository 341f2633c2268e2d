package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars binds environment variables to the flags of cmd.
// Environment variable names are generated as TEXTDLG_<FLAG_NAME> where the
// flag name is converted to uppercase and dashes are replaced with
// underscores.
//
// For example:
//   - Flag "log-level" becomes environment variable "TEXTDLG_LOG_LEVEL"
//   - Flag "delay" becomes environment variable "TEXTDLG_DELAY"
//
// Arguments take precedence over environment variables, which take
// precedence over the configuration file and default values. A flag set
// from the environment counts as changed, so it overrides the configuration
// file like an argument would.
//
// Flag usage descriptions are updated to include the environment variable
// name, making it visible in help output.
func bindEnvVars(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(flag *pflag.Flag) {
			bindFlagToEnv(fs, flag)
		})
	}
}

// bindFlagToEnv binds a single flag to its corresponding environment variable.
func bindFlagToEnv(fs *pflag.FlagSet, flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	// Skip if flag was already set via command line arguments.
	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := fs.Set(flag.Name, envValue)
	if err != nil {
		// Keep the default value.
		slog.Error("failed to set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)
	}
}

// flagToEnvName converts a flag name to its corresponding environment variable name.
// Example: "log-level" -> "TEXTDLG_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	envName := strings.ReplaceAll(flagName, "-", "_")
	return strings.ToUpper(cmdName + "_" + envName)
}
