package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codebundle/pkg/config"
	"codebundle/pkg/logging"
	"codebundle/pkg/rsp"
	"codebundle/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("command failed")

// app carries what the commands of one invocation share. It lives for a
// single Execute call.
type app struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

// newRootCommand is the base command when called without any subcommands.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "codebundle",
		Short: "Root command for bundle CLI",
		Long: `codebundle concatenates the source files of a directory into a single
bundle file, optionally filtered by language, sorted, annotated and stripped
of empty lines. create-rsp records a set of bundle options in a response file
that can be replayed with "codebundle @file.rsp".`,
		Version: version.Get().Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				// Configuration errors are not usage errors.
				cmd.SilenceUsage = true
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", fmt.Sprintf("config file (default %s if present)", config.DefaultFile))
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newBundleCommand(a))
	root.AddCommand(newCreateRspCommand(a))
	root.AddCommand(newVersionCommand())

	return root
}

// setup loads configuration and builds the logger once flags are parsed.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Debug:      a.debug,
		Level:      cfg.LogLevel,
		AppName:    "codebundle",
		AppVersion: version.Get().Version,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("Configuration loaded",
		zap.String("exitMode", string(cfg.ExitMode)),
		zap.String("markerMatch", string(cfg.MarkerMatch)),
		zap.Strings("markers", cfg.Markers),
		zap.Int("excludePatterns", len(cfg.Exclude)))
	return nil
}

// fail returns the error the command should report for an already printed
// failure: nil in lenient mode, errReported in strict mode.
func (a *app) fail(strict bool) error {
	if strict {
		return errReported
	}
	return nil
}

// Execute expands response files in args and runs the command tree.
func Execute(args []string) error {
	expanded, err := rsp.Expand(args)
	if err != nil {
		printError(os.Stderr, "Error: %v", err)
		return err
	}

	a := &app{logger: zap.NewNop()}
	root := newRootCommand(a)
	root.SetArgs(expanded)
	err = root.Execute()

	syncLogger(a.logger)
	return err
}

// syncLogger flushes the logger, ignoring the "invalid argument" error some
// platforms return for stderr.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			fmt.Fprintf(os.Stderr, "Logger sync failed: %v\n", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}

func printError(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(w, format+"\n", args...)
}

func printInfo(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
