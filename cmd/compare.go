package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/display"
	"github.com/jwein/deals4me/internal/filter"
)

var flagCompareCount int

type compareStoreResult struct {
	Rank         int     `json:"rank"`
	Store        string  `json:"store"`
	Name         string  `json:"name"`
	MatchedDeals int     `json:"matchedDeals"`
	PricedDeals  int     `json:"pricedDeals"`
	Score        float64 `json:"score"`
	Cheapest     string  `json:"cheapest,omitempty"`
	TopDeal      string  `json:"topDeal"`
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank stores by how many of your saved items they have on sale",
	Example: `  deals4me compare
  deals4me compare --week 101625 --category produce
  deals4me compare --top 3 --json`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	registerDealFilterFlags(compareCmd.Flags())
	compareCmd.Flags().IntVar(&flagCompareCount, "top", 5, "Number of stores to rank (1-10)")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if err := validateSortMode(); err != nil {
		return err
	}
	if flagCompareCount < 1 || flagCompareCount > 10 {
		return invalidArgsError(
			"--top must be between 1 and 10",
			"deals4me compare --top 5",
		)
	}
	opts, err := currentFilterOptions()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	weekCode, err := resolveWeek(cmd, client)
	if err != nil {
		return err
	}

	deals, err := loadMatchedDeals(cmd, client, weekCode)
	if err != nil {
		return err
	}
	deals = filter.Apply(deals, opts)
	if len(deals) == 0 {
		return notFoundError(
			"no stores have saved deals matching your filters",
			"Relax filters like --store/--category/--query/--under.",
		)
	}

	results := make([]compareStoreResult, 0, len(deals))
	for slug := range filter.CountsByStore(deals) {
		storeDeals := dealsForSlug(deals, slug)

		results = append(results, compareStoreResult{
			Store:        slug,
			Name:         display.HumanizeSlug(slug),
			MatchedDeals: len(storeDeals),
			PricedDeals:  pricedCount(storeDeals),
			Score:        filter.StoreScore(storeDeals),
			Cheapest:     cheapestLabel(storeDeals),
			TopDeal:      topDealTitle(storeDeals[0]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].MatchedDeals != results[j].MatchedDeals {
			return results[i].MatchedDeals > results[j].MatchedDeals
		}
		return results[i].Store < results[j].Store
	})
	if len(results) > flagCompareCount {
		results = results[:flagCompareCount]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	if flagJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nStore comparison for week %s (%d store(s) with saved deals)\n\n", weekCode, len(results))
	for _, r := range results {
		fmt.Fprintf(
			cmd.OutOrStdout(),
			"%d. %s (%s)\n   matches: %d | priced: %d | score: %.1f | cheapest: %s\n   top: %s\n\n",
			r.Rank,
			r.Name,
			r.Store,
			r.MatchedDeals,
			r.PricedDeals,
			r.Score,
			emptyIf(r.Cheapest, "?"),
			r.TopDeal,
		)
	}
	return nil
}

func dealsForSlug(deals []filter.Deal, slug string) []filter.Deal {
	var out []filter.Deal
	for _, d := range deals {
		if d.Offer.StoreSlug == slug {
			out = append(out, d)
		}
	}
	return out
}

func pricedCount(deals []filter.Deal) int {
	n := 0
	for _, d := range deals {
		if d.Offer.PriceCents != nil {
			n++
		}
	}
	return n
}

func cheapestLabel(deals []filter.Deal) string {
	cents := filter.CheapestCents(deals)
	if cents < 0 {
		return ""
	}
	return display.FormatPrice(&cents)
}

func topDealTitle(d filter.Deal) string {
	if name := api.Deref(d.Offer.ItemName); name != "" {
		return name
	}
	return fmt.Sprintf("Offer %d", d.Offer.ID)
}

func emptyIf(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
