package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"instawatch/api"
	"instawatch/collector"
	"instawatch/config"
	"instawatch/logging"
	"instawatch/models"
	"instawatch/monitor"

	"github.com/spf13/cobra"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	verbose   bool
	workspace string
	detailed  bool
	json      bool
	output    string
	push      bool
}

func main() {
	logging.Init(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "instapy-monitor",
		Short: "Report whether InstaPy is running on this host",
		Long: `instapy-monitor inspects running InstaPy, Firefox and Xvfb processes,
the workspace log files and the InstaPy database, and prints a status report
or writes it as JSON.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Path to InstaPy workspace (default ~/InstaPy)")
	cmd.Flags().BoolVarP(&opts.detailed, "detailed", "d", false, "Show detailed information")
	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Save status to JSON file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputFile, "Output JSON file name")
	cmd.Flags().BoolVar(&opts.push, "push", false, "Post the status report to API_URL")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig resolves the workspace once: flag, then environment, then
// the default.
func loadConfig(opts *rootOptions) *config.Config {
	cfg := config.Load()
	if opts.workspace != "" {
		cfg.Workspace = opts.workspace
	}
	return cfg
}

func newMonitor(cfg *config.Config) *monitor.Monitor {
	slog.Debug("monitoring workspace", slog.String("workspace", cfg.Workspace))
	return monitor.New(monitor.Config{
		Workspace: cfg.Workspace,
		CPUSample: cfg.CPUSample,
		PingHost:  cfg.PingHost,
	}, collector.PsutilLister{})
}

func runStatus(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	cfg := loadConfig(opts)
	m := newMonitor(cfg)

	output := cfg.OutputFile
	if cmd.Flags().Changed("output") {
		output = opts.output
	}

	var report *models.StatusReport
	if opts.json {
		r, err := m.SaveJSON(ctx, output)
		if err != nil {
			return err
		}
		report = &r
		fmt.Fprintf(cmd.OutOrStdout(), "Status saved to %s\n", output)
	} else if err := m.PrintStatus(ctx, cmd.OutOrStdout(), opts.detailed); err != nil {
		return fmt.Errorf("failed to print status: %w", err)
	}

	if !opts.push {
		return nil
	}
	if report == nil {
		r := m.Collect(ctx)
		report = &r
	}
	if err := api.NewSender(cfg.APIURL, cfg.APIKey).SendStatus(ctx, *report); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Status pushed to %s\n", cfg.APIURL)
	return nil
}
