package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/cli"
	"github.com/aretw0/absm/internal/config"
)

var (
	cfg      config.Config
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "absm",
	Short: "absm runs animation blending state machines",
	Long: `absm validates, visualizes, simulates and serves animation blending state machine
definitions written in YAML or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.LogLevel = level
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			cfg.LogFile = path
		}
		debug, _ := cmd.Flags().GetBool("debug")
		l, closeFn, err := cli.OpenLogger(cfg, debug)
		if err != nil {
			return err
		}
		logger, closeLog = l, closeFn
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnFinalize(func() {
		_ = closeLog()
		closeLog = func() error { return nil }
	})

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log state changes of every layer")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides ABSM_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file instead of stderr; overrides ABSM_LOG_FILE")
}
