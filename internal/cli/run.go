package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/textdlg/api/v1beta1/configs"
	"github.com/macropower/textdlg/api/v1beta1/scripts"
	"github.com/macropower/textdlg/pkg/clock"
	"github.com/macropower/textdlg/pkg/config"
	"github.com/macropower/textdlg/pkg/dialog"
	"github.com/macropower/textdlg/pkg/log"
	"github.com/macropower/textdlg/pkg/screen"
	"github.com/macropower/textdlg/pkg/script"
	"github.com/macropower/textdlg/pkg/termmode"
	"github.com/macropower/textdlg/pkg/typewriter"
	"github.com/macropower/textdlg/pkg/yaml"
)

const (
	cmdExamples = `  # Play a dialog script:
  textdlg ./intro.yaml

  # Play the built-in demo without the typewriter delay:
  textdlg demo --delay 0

  # Ring the bell for every character:
  textdlg ./intro.yaml --bell

  # Print the active configuration:
  textdlg --show-config

  # Write the default configuration file:
  textdlg --write-config`
)

// exitInterrupted is the status used when a signal stops a script.
const exitInterrupted = 130

// ErrNegativeFlag is returned for numeric flags below zero.
var ErrNegativeFlag = errors.New("must not be negative")

// Terminal is the device scripts are played on.
type Terminal struct {
	// Port controls the line discipline of In.
	Port termmode.Port
	// Sleeper paces the typewriter and pause steps. Defaults to [clock.Real].
	Sleeper clock.Sleeper
	In      io.Reader
	Out     io.Writer
}

// TerminalFunc opens the [Terminal] for a command.
type TerminalFunc func(cmd *cobra.Command) (*Terminal, error)

type RunArgs struct {
	*RootArgs

	openTerminal TerminalFunc
	exit         func(code int)

	ScriptPath  string
	ConfigPath  string
	Delay       int
	Wrap        int
	Bell        bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs:     rootArgs,
		openTerminal: openTTY,
		exit:         os.Exit,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the textdlg configuration file")
	cmd.Flags().IntVar(&ra.Delay, "delay", 0, "Delay between characters in milliseconds, overrides the config")
	cmd.Flags().BoolVar(&ra.Bell, "bell", false, "Ring the terminal bell for every character")
	cmd.Flags().IntVar(&ra.Wrap, "wrap", 0, "Word-wrap text at this many columns, overrides the config")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [script]",
		Short:   "Default command, plays a dialog script (the demo when omitted)",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.ScriptPath = args[0]
			}

			return run(cmd, ra, ra.loadScript)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func (ra *RunArgs) loadScript() (*scripts.Script, error) {
	if ra.ScriptPath == "" {
		return loadDemo()
	}

	s, err := config.LoadScript(ra.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	return s, nil
}

func loadDemo() (*scripts.Script, error) {
	s, err := config.ParseScript(scripts.Demo())
	if err != nil {
		return nil, fmt.Errorf("demo script: %w", err)
	}

	return s, nil
}

// loadConfig resolves the configuration and applies flag overrides.
func (ra *RunArgs) loadConfig(cmd *cobra.Command) (*configs.Config, string, error) {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = configs.GetPath()
	}

	cfg, err := config.LoadConfig(configPath, ra.ConfigPath == "")
	if err != nil {
		return nil, configPath, err //nolint:wrapcheck // Already annotated.
	}

	flags := cmd.Flags()
	if flags.Changed("delay") {
		if ra.Delay < 0 {
			return nil, configPath, fmt.Errorf("--delay %d: %w", ra.Delay, ErrNegativeFlag)
		}

		delay := ra.Delay
		cfg.Render.Delay = &delay
	}
	if flags.Changed("wrap") {
		if ra.Wrap < 0 {
			return nil, configPath, fmt.Errorf("--wrap %d: %w", ra.Wrap, ErrNegativeFlag)
		}

		cfg.Render.Wrap = ra.Wrap
	}
	if flags.Changed("bell") {
		cfg.Render.Bell = ra.Bell
	}

	return cfg, configPath, nil
}

func run(cmd *cobra.Command, ra *RunArgs, load func() (*scripts.Script, error)) error {
	if ra.WriteConfig {
		configPath := ra.ConfigPath
		if configPath == "" {
			configPath = configs.GetPath()
		}

		err := configs.New().Write(configPath)
		if err != nil {
			return err //nolint:wrapcheck // Already annotated.
		}

		slog.Info("configuration written", slog.String("path", configPath))

		return nil
	}

	cfg, configPath, err := ra.loadConfig(cmd)
	if err != nil {
		return err
	}

	if ra.ShowConfig {
		return showConfig(cmd.OutOrStdout(), cfg, configPath)
	}

	s, err := load()
	if err != nil {
		return err
	}

	return ra.play(cmd, cfg, s)
}

func showConfig(w io.Writer, cfg *configs.Config, configPath string) error {
	slog.Info("active configuration", slog.String("path", configPath))

	b, err := cfg.MarshalYAML()
	if err != nil {
		return err //nolint:wrapcheck // Already annotated.
	}

	err = yaml.Highlight(w, b, termenv.NewOutput(w).Profile)
	if err != nil {
		mustN(w.Write(b))

		return fmt.Errorf("highlight config: %w", err)
	}

	return nil
}

func openTTY(_ *cobra.Command) (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: file descriptors fit in int.
		return nil, fmt.Errorf("stdout: %w", termmode.ErrNotTerminal)
	}

	tty, err := termmode.NewTTY(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}

	return &Terminal{
		Port: tty,
		In:   os.Stdin,
		Out:  os.Stdout,
	}, nil
}

func (ra *RunArgs) play(cmd *cobra.Command, cfg *configs.Config, s *scripts.Script) error {
	glyphs, err := cfg.Border.Glyphs()
	if err != nil {
		return fmt.Errorf("border: %w", err)
	}

	t, err := ra.openTerminal(cmd)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	sleeper := t.Sleeper
	if sleeper == nil {
		sleeper = clock.Real{}
	}

	ctrl := termmode.New(t.Port, t.In)

	snapshot, err := ctrl.Snapshot()
	if err != nil {
		return fmt.Errorf("terminal mode: %w", err)
	}

	// Dialogs own the screen until the script ends.
	logBuf := log.NewRing(log.DefaultRingSize)

	err = log.Setup(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	defer func() {
		must(log.Setup(stderr, ra.LogLevel, ra.LogFormat))
		flushLogs(stderr, logBuf)
	}()

	exit := func(code int) {
		flushLogs(stderr, logBuf)
		ra.exit(code)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	stop := watchSignals(sigs, func() error {
		return t.Port.SetMode(snapshot)
	}, exit)
	defer stop()

	r := typewriter.New(screen.New(t.Out),
		typewriter.WithConfig(cfg.TypewriterConfig()),
		typewriter.WithSleeper(sleeper),
	)
	d := dialog.New(r, ctrl,
		dialog.WithDiagnostics(t.Out),
		dialog.WithExit(exit),
	)
	p := script.NewPlayer(d,
		script.WithSleeper(sleeper),
		script.WithGlyphs(glyphs),
		script.WithMaxChars(*cfg.Input.MaxChars),
	)

	ctx := log.NewContext(cmd.Context(), slog.Default())

	res, err := p.Play(ctx, s)
	if err != nil {
		return fmt.Errorf("play %q: %w", s.Name, err)
	}

	slog.Debug("script finished",
		slog.String("script", s.Name),
		slog.Int("steps", res.Steps),
		slog.Any("choices", res.Choices),
	)

	// Leave the cursor below the last dialog.
	mustN(fmt.Fprint(t.Out, "\n\n"))

	return nil
}

func flushLogs(w io.Writer, buf *log.Ring) {
	if buf.Len() == 0 {
		return
	}

	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("dropped", buf.Dropped()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}

	buf.Reset()
}
