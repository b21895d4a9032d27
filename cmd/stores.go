package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jwein/deals4me/internal/display"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the stores deals-4me tracks",
	Long:  "Lists tracked stores with their slugs. Use the slug with --store to filter deals.",
	Example: `  deals4me stores
  deals4me stores --json`,
	RunE: runStores,
}

func init() {
	rootCmd.AddCommand(storesCmd)
}

func runStores(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	stores, err := client.FetchStores(cmd.Context())
	if err != nil {
		return upstreamError("fetching stores", err)
	}
	if len(stores) == 0 {
		return notFoundError(
			"no stores are tracked yet",
			"Run the ingestion pipeline to register stores.",
		)
	}

	if flagJSON {
		return display.PrintStoresJSON(cmd.OutOrStdout(), stores)
	}
	display.PrintStores(cmd.OutOrStdout(), stores)
	return nil
}
