package match_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/jwein/deals4me/internal/match"
	"github.com/stretchr/testify/assert"
)

// referenceMatch reimplements the matching contract as the sequential if
// chain the rules were first written as, so the ordered-dispatch matcher
// can be checked against it on random workloads.
func referenceMatch(saved []match.SavedItem, item match.FlyerItem) match.Result {
	flyerText := match.Normalize(item.Name + " " + item.Size + " " + item.Unit + " " + item.Notes)

	var labels []string
	seen := map[string]struct{}{}
	for _, s := range saved {
		if s.Refinement == "" || flyerText == "" {
			continue
		}

		matched := false
		if match.IsProteinCategory(s.Category) {
			switch s.Refinement {
			case "beef", "chicken", "pork", "lamb", "veal", "goat":
				matched = referenceContainsGroup(flyerText, s.Refinement)
			case "seafood", "fish", "sea food":
				matched = false
			default:
				if synonyms, ok := referenceSeafood[s.Refinement]; ok {
					for _, syn := range synonyms {
						if strings.Contains(flyerText, syn) {
							matched = true
							break
						}
					}
				} else {
					matched = strings.Contains(flyerText, s.Refinement)
				}
			}
		} else {
			if len(s.Refinement) <= 3 {
				for _, token := range strings.Fields(flyerText) {
					if token == s.Refinement {
						matched = true
						break
					}
				}
			} else {
				matched = strings.Contains(flyerText, s.Refinement)
			}
		}

		if matched {
			if _, dup := seen[s.RawLabel]; !dup {
				seen[s.RawLabel] = struct{}{}
				labels = append(labels, s.RawLabel)
			}
		}
	}
	return match.Result{Matched: len(labels) > 0, Labels: labels}
}

var referenceBroadMeat = map[string][]string{
	"beef": {
		"beef", "ribeye", "rib eye", "sirloin", "chuck", "brisket",
		"t bone", "porterhouse", "strip steak", "flank steak",
		"skirt steak", "london broil", "filet mignon", "tenderloin",
		"short ribs", "rib roast", "top round", "bottom round",
		"eye round", "tri tip", "stew meat", "oxtail",
	},
	"chicken": {
		"chicken", "drumstick", "wings", "thighs", "leg quarters",
		"rotisserie", "cornish hen",
	},
	"pork": {
		"pork", "bacon", "ham", "sausage", "kielbasa", "bratwurst",
		"prosciutto", "spare ribs", "baby back ribs", "pulled pork",
	},
	"lamb": {
		"lamb", "lamb chops", "leg of lamb", "lamb shank", "rack of lamb",
		"ground lamb",
	},
	"veal": {"veal", "veal cutlet", "veal chops", "osso buco"},
	"goat": {"goat", "goat meat", "chevon"},
}

var referenceSeafood = map[string][]string{
	"salmon":   {"salmon", "sockeye", "coho", "lox"},
	"shrimp":   {"shrimp", "prawns"},
	"cod":      {"cod", "scrod"},
	"scallops": {"scallop", "scallops", "bay scallops", "sea scallops"},
	"lobster":  {"lobster", "lobster tails"},
}

func referenceContainsGroup(flyerText, group string) bool {
	for _, syn := range referenceBroadMeat[group] {
		if strings.Contains(flyerText, syn) {
			return true
		}
	}
	return false
}

var equivalenceLabels = []string{
	"Meat / Seafood: Beef",
	"Meat/Seafood: Chicken",
	"Meat/Seafood: Pork",
	"Meat/Seafood: Seafood",
	"Meat / Seafood: Salmon",
	"Meat/Seafood: Scallops",
	"Meat/Seafood: Lobster Rolls",
	"Pantry: Ham",
	"Dairy: Milk",
	"Avocados",
	"Seltzer",
	"   ",
}

var equivalenceNames = []string{
	"USDA Choice Ribeye Steak",
	"Boneless Skinless Chicken Thighs",
	"Applewood Smoked Bacon, 16 oz",
	"Wild Sockeye Salmon Fillet",
	"Fresh Seafood Platter",
	"Sea Scallops, Jumbo",
	"Maine Lobster Rolls",
	"Hamburger Buns 8-pack",
	"Boneless Ham, Spiral Cut",
	"Whole Milk, Gallon",
	"Hass Avocados, 4 ct",
	"Sparkling Seltzer Water 12-pack",
	"Paper Towels, 6 rolls",
	"",
}

var equivalenceStores = []string{"stop_and_shop", "market_basket", "shaws", "aldi", "hannaford"}

func randomFlyerItem(rng *rand.Rand) match.FlyerItem {
	item := match.FlyerItem{
		Name:      equivalenceNames[rng.Intn(len(equivalenceNames))],
		StoreSlug: equivalenceStores[rng.Intn(len(equivalenceStores))],
	}
	if rng.Intn(3) == 0 {
		item.Size = fmt.Sprintf("%d oz", rng.Intn(32)+1)
	}
	if rng.Intn(4) == 0 {
		item.Unit = "per lb"
	}
	if rng.Intn(5) == 0 {
		item.Notes = "store card required"
	}
	return item
}

func TestMatch_ReferenceEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for caseNum := 0; caseNum < 500; caseNum++ {
		labelCount := rng.Intn(len(equivalenceLabels)) + 1
		saved := make([]match.SavedItem, 0, labelCount)
		for range labelCount {
			saved = append(saved, match.ParseSavedItem(equivalenceLabels[rng.Intn(len(equivalenceLabels))]))
		}
		m := match.NewMatcher(saved)

		item := randomFlyerItem(rng)
		got := m.Match(item)
		want := referenceMatch(saved, item)

		assert.Equal(t, want.Matched, got.Matched, "matched mismatch case=%d item=%+v", caseNum, item)
		assert.ElementsMatch(t, want.Labels, got.Labels, "label mismatch case=%d item=%+v", caseNum, item)
	}
}

func TestMatch_AllocationBudget(t *testing.T) {
	saved := make([]match.SavedItem, 0, len(equivalenceLabels))
	for _, label := range equivalenceLabels {
		saved = append(saved, match.ParseSavedItem(label))
	}
	m := match.NewMatcher(saved)
	item := match.FlyerItem{Name: "USDA Choice Ribeye Steak", Size: "16 oz", StoreSlug: "shaws"}

	allocs := testing.AllocsPerRun(100, func() {
		_ = m.Match(item)
	})

	// Guardrail for accidental per-saved-item renormalization of flyer text.
	assert.LessOrEqual(t, allocs, 30.0)
}

func BenchmarkMatch_FullFlyer_1kItems(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	saved := make([]match.SavedItem, 0, len(equivalenceLabels))
	for _, label := range equivalenceLabels {
		saved = append(saved, match.ParseSavedItem(label))
	}
	m := match.NewMatcher(saved)

	items := make([]match.FlyerItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, randomFlyerItem(rng))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_, _ = match.FindSavedDeals(items, m)
	}
}
