// Package main provides the entry point for sshdeck.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenholt/sshdeck/internal/app"
	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/logging"
	"github.com/wrenholt/sshdeck/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var logLevel string
	var connectTo string

	root := &cobra.Command{
		Use:           "sshdeck",
		Short:         "Terminal SSH connection manager",
		Long:          "sshdeck keeps an inventory of SSH hosts and attaches their shells\nto an in-panel terminal, without leaving the TUI.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dataDir, logLevel, connectTo)
		},
	}
	root.Flags().StringVar(&dataDir, "data-dir", "", "override the data directory (default ~/.config/sshdeck)")
	root.Flags().StringVar(&logLevel, "log-level", "", "minimum log level: trace, debug, info, warn, error")
	root.Flags().StringVar(&connectTo, "connect", "", "connect to the named host on startup")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sshdeck %s\n", version.Short())
			return err
		},
	}
}

func run(dataDir, logLevel, connectTo string) error {
	defaults := config.Default()
	if dataDir != "" {
		defaults.DataDir = dataDir
	}
	cfg, err := config.LoadFrom(defaults)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// the terminal belongs to the TUI; logs go to a file
	logger, closer, err := logging.Open(cfg.LogFile(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()
	logger.Info("starting", "version", version.Short(), "data_dir", cfg.DataDir)

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	application.ConnectOnStart(connectTo)
	return application.Run()
}
