package filter

// StoreScore estimates how good a store's matched deals are for ranking in
// `compare`: matched count dominates, with a nudge for priced offers and
// for deals that satisfied several saved items at once.
func StoreScore(deals []Deal) float64 {
	score := 0.0
	for _, d := range deals {
		score += 1.0
		if d.Offer.PriceCents != nil {
			score += 0.25
		}
		if len(d.Labels) > 1 {
			score += 0.5
		}
	}
	return score
}

// CheapestCents returns the lowest known price among the deals, or -1 when
// none of them carry a price.
func CheapestCents(deals []Deal) int {
	cheapest := -1
	for _, d := range deals {
		if d.Offer.PriceCents == nil {
			continue
		}
		if cheapest < 0 || *d.Offer.PriceCents < cheapest {
			cheapest = *d.Offer.PriceCents
		}
	}
	return cheapest
}
