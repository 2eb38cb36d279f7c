package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/islandboy/idlist/internal/classreg"
	"github.com/islandboy/idlist/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// skipConfigAnnotation marks commands that must run without a resolved
// configuration, typically because they create or edit the config file.
const skipConfigAnnotation = "skipConfig"

// CLIFlags holds the global persistent flags.
type CLIFlags struct {
	ConfigPath string
	StorePath  string
	JSON       bool
	Verbose    bool
	Debug      bool
	Quiet      bool
}

// CLIContext carries everything a subcommand needs. It is attached to the
// command context by the root PersistentPreRunE.
type CLIContext struct {
	Flags    CLIFlags
	Logger   *slog.Logger
	Cfg      *config.Resolved // nil for commands annotated with skipConfigAnnotation
	Registry *classreg.Registry
}

type cliContextKey struct{}

// mustCLIContext returns the CLIContext attached by the root command. Every
// subcommand runs after PersistentPreRunE, so a missing context is a bug.
func mustCLIContext(ctx context.Context) *CLIContext {
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		panic("BUG: CLIContext missing from command context")
	}

	return cc
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	flags := &CLIFlags{}

	cmd := &cobra.Command{
		Use:     "idlist",
		Short:   "Shell item identifier list toolkit",
		Long:    "Build, inspect, compare, and remember shell item identifier lists.",
		Version: version,
		// Silence Cobra's default error/usage printing; main reports errors.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := newCLIContext(cmd, *flags)
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cc))

			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file path")
	pf.StringVar(&flags.StorePath, "store", "", "MRU store database path")
	pf.BoolVar(&flags.JSON, "json", false, "output in JSON format")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable info logging")
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress informational output")

	cmd.MarkFlagsMutuallyExclusive("verbose", "debug", "quiet")

	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newCompareCmd())
	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newMRUCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// newCLIContext resolves configuration (unless the command opts out) and
// builds the logger and class registry.
func newCLIContext(cmd *cobra.Command, flags CLIFlags) (*CLIContext, error) {
	cc := &CLIContext{Flags: flags}

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		cc.Logger = buildLogger(nil, flags, cmd.ErrOrStderr())

		return cc, nil
	}

	cli := config.CLIOverrides{ConfigPath: flags.ConfigPath}
	if cmd.Flags().Changed("store") {
		cli.StorePath = &flags.StorePath
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cc.Cfg = resolved
	cc.Logger = buildLogger(resolved, flags, cmd.ErrOrStderr())

	reg, err := classreg.New(resolved.ClassNames, resolved.FileTypes)
	if err != nil {
		return nil, fmt.Errorf("building class registry: %w", err)
	}

	cc.Registry = reg

	cc.Logger.Debug("configuration resolved",
		slog.String("config_path", resolved.Path),
		slog.String("store_path", resolved.StorePath),
	)

	return cc, nil
}

// configPathFor returns the config file a command edits when it skips
// resolution: --config, then IDLIST_CONFIG, then the platform default.
func configPathFor(flags CLIFlags) string {
	if flags.ConfigPath != "" {
		return flags.ConfigPath
	}

	if env := config.ReadEnvOverrides(); env.ConfigPath != "" {
		return env.ConfigPath
	}

	return config.DefaultConfigPath()
}

// buildLogger creates an slog.Logger configured by the resolved config and
// CLI flags. Config-file log level provides the baseline; --verbose, --debug
// and --quiet override it because CLI flags always win.
func buildLogger(cfg *config.Resolved, flags CLIFlags, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	format := "auto"

	if cfg != nil {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}

		format = cfg.LogFormat
	}

	switch {
	case flags.Debug:
		level = slog.LevelDebug
	case flags.Verbose:
		level = slog.LevelInfo
	case flags.Quiet:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	// "auto" is text for a person at a terminal and JSON for log collectors.
	if format == "json" || (format == "auto" && !isTerminal(w)) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
