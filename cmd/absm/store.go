package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/absm/internal/cli"
	"github.com/aretw0/absm/internal/config"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/ports"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage persisted machine definitions",
	Long: `Saves, loads, lists and deletes definitions in the store selected by ABSM_STORE
(memory, file, redis or sqlite) or --store.`,
}

func openStore(cmd *cobra.Command) (ports.MachineStore, func() error, error) {
	c := cfg
	if kind, _ := cmd.Flags().GetString("store"); kind != "" {
		c.Store = kind
	}
	if err := c.Validate(); err != nil {
		return nil, func() error { return nil }, err
	}
	return cli.OpenStore(c, logger)
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <file> [id]",
	Short: "Validate and store a definition",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		var id string
		if len(args) == 2 {
			id = args[1]
		}
		id, err = cli.SaveMachine(cmd.Context(), store, args[0], id)
		if err != nil {
			return err
		}
		logger.Info("machine saved", "id", id)
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var storeLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Print a stored definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		format, _ := cmd.Flags().GetString("format")
		return cli.LoadMachine(cmd.Context(), store, args[0], definition.Format(format), cmd.OutOrStdout())
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored machine ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		return cli.ListMachines(cmd.Context(), store, cmd.OutOrStdout())
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeFn()
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		logger.Info("machine deleted", "id", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.PersistentFlags().String("store", "", fmt.Sprintf("Store backend (%s, %s, %s, %s); overrides ABSM_STORE",
		config.StoreMemory, config.StoreFile, config.StoreRedis, config.StoreSQLite))
	storeLoadCmd.Flags().String("format", string(definition.FormatYAML), "Output format (yaml or json)")
	storeCmd.AddCommand(storeSaveCmd, storeLoadCmd, storeListCmd, storeDeleteCmd)
}
