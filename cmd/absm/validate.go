package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/pkg/definition"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a machine definition for consistency",
	Long:  `Parses the definition and reports every dangling reference, cycle, duplicate name and invalid value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := definition.Validate(def); err != nil {
			for _, e := range definition.ValidationErrors(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
			}
			return fmt.Errorf("validation failed: %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Definition is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
