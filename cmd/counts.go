package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/display"
	"github.com/jwein/deals4me/internal/match"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show how many saved deals each store has this week",
	Example: `  deals4me counts
  deals4me counts --week 101625 --json`,
	RunE: runCounts,
}

func init() {
	rootCmd.AddCommand(countsCmd)
}

func runCounts(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	weekCode, err := resolveWeek(cmd, client)
	if err != nil {
		return err
	}

	saved, err := client.FetchSavedItems(cmd.Context())
	if err != nil {
		return upstreamError("fetching saved items", err)
	}
	if len(saved) == 0 {
		return notFoundError(
			"you have no saved items to match against",
			"Add items in the deals-4me app first.",
		)
	}

	offers, err := client.FetchOffers(cmd.Context(), weekCode, flagStore)
	if err != nil {
		return upstreamError("fetching offers", err)
	}
	if len(offers) == 0 {
		return notFoundError(
			fmt.Sprintf("no flyer items found for week %s", weekCode),
			"Check the week code, or wait for ingestion to finish.",
		)
	}

	matcher := match.NewMatcher(api.SavedItems(saved))
	deals, err := match.FindSavedDeals(api.FlyerItems(offers), matcher)
	if err != nil {
		return err
	}
	if len(deals.Deals) == 0 {
		return notFoundError(
			fmt.Sprintf("none of your saved items are on sale in week %s", weekCode),
			"Broaden your saved items, or try another week with --week.",
		)
	}

	if flagJSON {
		return display.PrintCountsJSON(cmd.OutOrStdout(), deals.CountsByStore)
	}
	display.PrintCounts(cmd.OutOrStdout(), deals.CountsByStore, weekCode)
	return nil
}
