package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jwein/deals4me/internal/display"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List your saved items and how the matcher reads them",
	Long: "Shows each saved item with its parsed category and refinement so you can\n" +
		"see why a label does or does not match flyer rows.",
	Example: `  deals4me items
  deals4me items --json`,
	RunE: runItems,
}

func init() {
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	saved, err := client.FetchSavedItems(cmd.Context())
	if err != nil {
		return upstreamError("fetching saved items", err)
	}
	if len(saved) == 0 {
		return notFoundError(
			"you have no saved items yet",
			"Add items in the deals-4me app first.",
		)
	}

	if flagJSON {
		return display.PrintSavedItemsJSON(cmd.OutOrStdout(), saved)
	}
	display.PrintSavedItems(cmd.OutOrStdout(), saved)
	return nil
}
