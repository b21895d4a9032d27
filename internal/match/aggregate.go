package match

import "errors"

// ErrInvalidInput is returned when a matching pass is invoked without the
// pieces it needs, so a bad call fails clearly instead of silently
// producing an empty result set.
var ErrInvalidInput = errors.New("match: invalid input")

// Deal is one flyer item that satisfied at least one saved item.
type Deal struct {
	StoreSlug string
	Item      FlyerItem
	Labels    []string
}

// DealSet is the output of a full matching pass. Stores with zero matches
// do not appear in CountsByStore: absence means zero.
type DealSet struct {
	Deals         []Deal
	CountsByStore map[string]int
}

// FindSavedDeals applies the matcher across a flyer snapshot and tallies
// matches per store. The pass never fails on item content; only a nil
// matcher is rejected, before the loop starts.
func FindSavedDeals(items []FlyerItem, m *Matcher) (DealSet, error) {
	if m == nil {
		return DealSet{}, ErrInvalidInput
	}

	set := DealSet{CountsByStore: map[string]int{}}
	for _, item := range items {
		result := m.Match(item)
		if !result.Matched {
			continue
		}
		set.CountsByStore[item.StoreSlug]++
		set.Deals = append(set.Deals, Deal{
			StoreSlug: item.StoreSlug,
			Item:      item,
			Labels:    result.Labels,
		})
	}
	return set, nil
}
