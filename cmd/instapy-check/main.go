package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"instawatch/checker"
	"instawatch/collector"
	"instawatch/config"
	"instawatch/logging"

	"github.com/spf13/cobra"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errChecksFailed signals a completed run with at least one failed check.
var errChecksFailed = errors.New("compatibility checks failed")

func main() {
	logging.Init(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errChecksFailed) {
			slog.Error("command failed", slog.String("error", err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "instapy-check",
		Short: "Check whether this Linux host can run InstaPy",
		Long: `instapy-check verifies the Python interpreter, operating system,
Firefox, geckodriver, Xvfb, required Python packages, DISPLAY and the
installer scripts in the current directory.

Exit status is 0 when every check passes and 1 otherwise.`,
		Version: fmt.Sprintf("%s (%s) built on %s", version, commit, date),
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), collector.ExecRunner{})
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd
}

// runCheck runs every check through runner and returns errChecksFailed
// unless all of them pass.
func runCheck(ctx context.Context, out io.Writer, runner collector.CommandRunner) error {
	cfg := config.Load()

	opts := checker.DefaultOptions()
	opts.Python = cfg.Python

	fc, path, err := config.AutoLoadCheckerFile()
	if err != nil {
		return err
	}
	if fc != nil {
		slog.Debug("loaded checker config", slog.String("path", path))
		if err := opts.ApplyFile(fc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	summary := checker.New(opts, runner, out).Run(ctx)
	slog.Debug("checks finished", slog.Int("passed", summary.Passed), slog.Int("total", summary.Total))

	if !summary.AllPassed() {
		return errChecksFailed
	}
	return nil
}
