package match

import "strings"

// SavedItem is one grocery need the user tracks across weekly flyers,
// produced by ParseSavedItem. RawLabel is kept verbatim for display;
// Category and Refinement are normalized.
type SavedItem struct {
	RawLabel   string
	Category   string
	Refinement string
}

// FlyerItem is a single priced entry from a store's weekly flyer. The text
// fields are free-form OCR output; StoreSlug is an opaque key used only for
// aggregation.
type FlyerItem struct {
	Name      string
	Size      string
	Unit      string
	Notes     string
	StoreSlug string
}

// Result reports which saved items a single flyer item satisfies.
// Labels holds the raw labels of every matching saved item, deduplicated.
type Result struct {
	Matched bool
	Labels  []string
}

// Matcher evaluates flyer items against a fixed saved-item snapshot. Build
// one per snapshot with NewMatcher; it holds no mutable state after that,
// so a single Matcher is safe for concurrent Match calls.
type Matcher struct {
	protein []SavedItem
	generic []SavedItem
}

// NewMatcher partitions saved items into the protein and generic rule
// families once, up front. Items whose labels normalize to nothing are kept
// (they are harmless) but can never match.
func NewMatcher(items []SavedItem) *Matcher {
	m := &Matcher{}
	for _, item := range items {
		if IsProteinCategory(item.Category) {
			m.protein = append(m.protein, item)
		} else {
			m.generic = append(m.generic, item)
		}
	}
	return m
}

// Match evaluates one flyer item against every saved item. The flyer's text
// fields are concatenated and normalized exactly once per call.
func (m *Matcher) Match(item FlyerItem) Result {
	flyerText := Normalize(item.Name + " " + item.Size + " " + item.Unit + " " + item.Notes)
	if flyerText == "" {
		return Result{}
	}

	var labels []string
	seen := map[string]struct{}{}
	record := func(rawLabel string) {
		if _, dup := seen[rawLabel]; dup {
			return
		}
		seen[rawLabel] = struct{}{}
		labels = append(labels, rawLabel)
	}

	for _, saved := range m.protein {
		if matchProtein(saved.Refinement, flyerText) {
			record(saved.RawLabel)
		}
	}
	for _, saved := range m.generic {
		if matchGeneric(saved.Refinement, flyerText) {
			record(saved.RawLabel)
		}
	}

	return Result{Matched: len(labels) > 0, Labels: labels}
}

// proteinRule is one branch of the protein dispatch. applies decides whether
// the branch owns the refinement; match runs only for the owning branch.
type proteinRule struct {
	applies func(refinement string) bool
	match   func(refinement, flyerText string) bool
}

// proteinRules is evaluated in order and the first applicable branch wins.
// The order is a contract, not an accident: broad-meat groups before the
// seafood exclusion, the exclusion before specific species, species before
// the substring fallback.
var proteinRules = []proteinRule{
	{
		// Broad group ("beef", "chicken", ...): any synonym counts.
		applies: func(refinement string) bool {
			_, ok := broadMeatSynonyms[refinement]
			return ok
		},
		match: func(refinement, flyerText string) bool {
			return containsAny(flyerText, broadMeatSynonyms[refinement])
		},
	},
	{
		// Bare "seafood"/"fish" is too broad to act on: matches nothing.
		applies: func(refinement string) bool {
			_, ok := seafoodExclusions[refinement]
			return ok
		},
		match: func(string, string) bool {
			return false
		},
	},
	{
		// Specific species ("salmon", "scallops", ...).
		applies: func(refinement string) bool {
			_, ok := seafoodSynonyms[refinement]
			return ok
		},
		match: func(refinement, flyerText string) bool {
			return containsAny(flyerText, seafoodSynonyms[refinement])
		},
	},
	{
		// Uncatalogued protein term ("lobster rolls"): plain containment.
		applies: func(string) bool { return true },
		match: func(refinement, flyerText string) bool {
			return strings.Contains(flyerText, refinement)
		},
	},
}

func matchProtein(refinement, flyerText string) bool {
	if refinement == "" {
		return false
	}
	for _, rule := range proteinRules {
		if rule.applies(refinement) {
			return rule.match(refinement, flyerText)
		}
	}
	return false
}

// matchGeneric matches non-protein refinements. Short refinements must
// appear as a whole token so "ham" does not light up "hamburger buns".
func matchGeneric(refinement, flyerText string) bool {
	if refinement == "" {
		return false
	}
	if len(refinement) <= 3 {
		for _, token := range strings.Fields(flyerText) {
			if token == refinement {
				return true
			}
		}
		return false
	}
	return strings.Contains(flyerText, refinement)
}

func containsAny(text string, synonyms []string) bool {
	for _, s := range synonyms {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
