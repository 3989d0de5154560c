package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/presentation/graph"
	"github.com/aretw0/absm/pkg/definition"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the state graph visualization",
	Long:  `Outputs a Mermaid flowchart with one subgraph per layer, entry states and rule-labelled transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := definition.Validate(def); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
