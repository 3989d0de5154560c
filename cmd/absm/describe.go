package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/presentation/tui"
	"github.com/aretw0/absm/pkg/definition"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Render a readable summary of a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		out, err := tui.NewRenderer(os.Stdout)(tui.Describe(title, def))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
