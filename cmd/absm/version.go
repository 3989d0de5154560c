package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of absm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "absm version %s\n", absm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
