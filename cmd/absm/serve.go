package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/cli"
	"github.com/aretw0/absm/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Run a machine and expose it over HTTP",
	Long: `Ticks the machine at a fixed rate and serves /machine, /definition, /graph,
/parameters, /events (SSE) and /metrics until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = cfg.HTTPAddr
		}
		rate, _ := cmd.Flags().GetInt("rate")
		if !cmd.Flags().Changed("rate") {
			rate = cfg.TickRate
		}
		clips, _ := cmd.Flags().GetString("clips")
		debug, _ := cmd.Flags().GetBool("debug")

		tui.PrintBanner(cmd.OutOrStdout())

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err := cli.Serve(sigCtx, cli.ServeOptions{
			Path:  args[0],
			Clips: clips,
			Addr:  addr,
			Rate:  rate,
			Debug: debug,
			Ready: func(bound string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", args[0], bound)
			},
		}, logger)
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nStopped by %v\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address; overrides ABSM_HTTP_ADDR")
	serveCmd.Flags().Int("rate", 60, "Frames per second; overrides ABSM_TICK_RATE")
	serveCmd.Flags().String("clips", "", "Clip library file (default: placeholder clips)")
}
