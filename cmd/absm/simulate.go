package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/cli"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <file>",
	Short: "Run a machine headless and print its state every frame",
	Long: `Evaluates the machine frame by frame with a fixed time step. Parameters are set with
--set name=value (true/false become rules, integers indices, decimals weights) or
scripted with a --scenario file of steps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, _ := cmd.Flags().GetFloat32("dt")
		frames, _ := cmd.Flags().GetInt("frames")
		every, _ := cmd.Flags().GetInt("every")
		set, _ := cmd.Flags().GetStringArray("set")
		scenario, _ := cmd.Flags().GetString("scenario")
		clips, _ := cmd.Flags().GetString("clips")
		jsonMode, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")

		return cli.Simulate(cli.SimulateOptions{
			Path:     args[0],
			Clips:    clips,
			Scenario: scenario,
			DT:       dt,
			Frames:   frames,
			Set:      set,
			Every:    every,
			JSON:     jsonMode,
			Debug:    debug,
		}, cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Float32("dt", 1.0/60, "Seconds per frame")
	simulateCmd.Flags().Int("frames", 60, "Number of frames to run (ignored with --scenario)")
	simulateCmd.Flags().Int("every", 1, "Print every Nth frame")
	simulateCmd.Flags().StringArray("set", nil, "Set a parameter before the first frame (name=value)")
	simulateCmd.Flags().String("scenario", "", "YAML file of simulation steps")
	simulateCmd.Flags().String("clips", "", "Clip library file (default: placeholder clips)")
	simulateCmd.Flags().Bool("json", false, "Print one JSON snapshot per line")
}
