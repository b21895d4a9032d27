package filter

import (
	"sort"
	"strings"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/match"
)

// Deal is a flyer offer that matched at least one saved item, with the raw
// row kept alongside so price and provenance survive into rendering.
type Deal struct {
	Offer  api.OfferRow
	Labels []string
}

// Options holds all deal-list filter criteria.
type Options struct {
	Store      string
	Category   string
	Query      string
	UnderCents int
	Sort       string
	Limit      int
}

// Collect runs the matcher over an offer snapshot and keeps the rows that
// satisfied a saved item.
func Collect(rows []api.OfferRow, m *match.Matcher) []Deal {
	var deals []Deal
	for _, row := range rows {
		result := m.Match(row.FlyerItem())
		if !result.Matched {
			continue
		}
		deals = append(deals, Deal{Offer: row, Labels: result.Labels})
	}
	return deals
}

// Apply filters and orders a slice of matched deals according to the given
// options.
func Apply(deals []Deal, opts Options) []Deal {
	result := deals

	if opts.Store != "" {
		store := strings.ToLower(strings.TrimSpace(opts.Store))
		result = where(result, func(d Deal) bool {
			return strings.Contains(strings.ToLower(d.Offer.StoreSlug), store)
		})
	}

	if opts.Category != "" {
		category := match.Normalize(opts.Category)
		result = where(result, func(d Deal) bool {
			for _, label := range d.Labels {
				if strings.Contains(match.ParseSavedItem(label).Category, category) {
					return true
				}
			}
			return false
		})
	}

	if opts.Query != "" {
		q := match.Normalize(opts.Query)
		result = where(result, func(d Deal) bool {
			return strings.Contains(match.Normalize(api.Deref(d.Offer.ItemName)), q)
		})
	}

	if opts.UnderCents > 0 {
		result = where(result, func(d Deal) bool {
			return d.Offer.PriceCents != nil && *d.Offer.PriceCents <= opts.UnderCents
		})
	}

	result = sortDeals(result, opts.Sort)

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}

	return result
}

// CountsByStore tallies matched deals per store slug over an already
// filtered list. Stores with no deals are absent.
func CountsByStore(deals []Deal) map[string]int {
	counts := make(map[string]int)
	for _, d := range deals {
		counts[d.Offer.StoreSlug]++
	}
	return counts
}

func sortDeals(deals []Deal, mode string) []Deal {
	switch canonicalSortMode(mode) {
	case "price":
		sorted := append([]Deal(nil), deals...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceOrInf(sorted[i]) < priceOrInf(sorted[j])
		})
		return sorted
	case "store":
		sorted := append([]Deal(nil), deals...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Offer.StoreSlug < sorted[j].Offer.StoreSlug
		})
		return sorted
	default:
		return deals
	}
}

// priceOrInf ranks unpriced offers after every priced one.
func priceOrInf(d Deal) int {
	if d.Offer.PriceCents == nil {
		return 1 << 30
	}
	return *d.Offer.PriceCents
}

func canonicalSortMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price", "cheapest":
		return "price"
	case "store", "stores":
		return "store"
	default:
		return ""
	}
}

func where(deals []Deal, fn func(Deal) bool) []Deal {
	var result []Deal
	for _, d := range deals {
		if fn(d) {
			result = append(result, d)
		}
	}
	return result
}
