package match_test

import (
	"testing"

	"github.com/jwein/deals4me/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherFor(labels ...string) *match.Matcher {
	items := make([]match.SavedItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, match.ParseSavedItem(label))
	}
	return match.NewMatcher(items)
}

func flyer(name string) match.FlyerItem {
	return match.FlyerItem{Name: name, StoreSlug: "stop_and_shop"}
}

func TestMatch_BroadMeatCoverage(t *testing.T) {
	m := matcherFor("Meat / Seafood: Beef")

	result := m.Match(flyer("USDA Choice Ribeye Steak"))
	assert.True(t, result.Matched)
	assert.Equal(t, []string{"Meat / Seafood: Beef"}, result.Labels)

	result = m.Match(flyer("Atlantic Salmon Fillet"))
	assert.False(t, result.Matched)
	assert.Empty(t, result.Labels)
}

func TestMatch_BroadMeatGroups(t *testing.T) {
	tests := []struct {
		label string
		name  string
		want  bool
	}{
		{"Meat/Seafood: Chicken", "Fresh Drumsticks, Family Pack", true},
		{"Meat/Seafood: Pork", "Applewood Smoked Bacon", true},
		{"Meat/Seafood: Lamb", "Rack of Lamb, Frenched", true},
		{"Meat/Seafood: Beef", "Boneless Pork Chops", false},
		{"Meat/Seafood: Goat", "Chevon Stew Cuts", true},
	}
	for _, tt := range tests {
		m := matcherFor(tt.label)
		assert.Equal(t, tt.want, m.Match(flyer(tt.name)).Matched, "%q vs %q", tt.label, tt.name)
	}
}

func TestMatch_SeafoodExclusion(t *testing.T) {
	// Generic seafood requests never match, even a literal hit.
	for _, label := range []string{
		"Meat/Seafood: Seafood",
		"Meat / Seafood: Fish",
		"Meat/Seafood: Sea Food",
	} {
		m := matcherFor(label)
		assert.False(t, m.Match(flyer("Fresh Seafood Platter")).Matched, "label %q", label)
		assert.False(t, m.Match(flyer("Fish Fillets on Sale")).Matched, "label %q", label)
	}
}

func TestMatch_SpecificSeafoodSpecies(t *testing.T) {
	m := matcherFor("Meat / Seafood: Salmon")

	assert.True(t, m.Match(flyer("Wild Sockeye Salmon Fillet, 1 lb")).Matched)
	assert.True(t, m.Match(flyer("Fresh Sockeye, Previously Frozen")).Matched)
	assert.False(t, m.Match(flyer("Fresh Cod Loin")).Matched)
}

func TestMatch_ProteinFallbackSubstring(t *testing.T) {
	// Not a group, not a species key, not excluded: plain containment.
	m := matcherFor("Meat/Seafood: Lobster Rolls")

	assert.True(t, m.Match(flyer("Maine Lobster Rolls, 2-pack")).Matched)
	assert.False(t, m.Match(flyer("Lobster Tails")).Matched)
}

func TestMatch_ExclusionBeatsFallback(t *testing.T) {
	// "fish" would substring-match "Swordfish" if it fell through to the
	// fallback branch; the exclusion branch must win first.
	m := matcherFor("Meat/Seafood: Fish")
	assert.False(t, m.Match(flyer("Swordfish Steaks")).Matched)
}

func TestMatch_ShortTokenWordBoundary(t *testing.T) {
	m := matcherFor("Pantry: Ham")

	assert.False(t, m.Match(flyer("Hamburger Buns 8-pack")).Matched)
	assert.True(t, m.Match(flyer("Boneless Ham, Spiral Cut")).Matched)
}

func TestMatch_GenericSubstring(t *testing.T) {
	m := matcherFor("Avocados")

	assert.True(t, m.Match(flyer("Hass Avocados, 4 ct")).Matched)
	assert.False(t, m.Match(flyer("Avocado Oil")).Matched)
}

func TestMatch_GenericUsesAllTextFields(t *testing.T) {
	m := matcherFor("Spiral Cut")

	item := match.FlyerItem{
		Name:      "Bone-In Half Ham",
		Notes:     "spiral-cut, honey glaze included",
		StoreSlug: "shaws",
	}
	assert.True(t, m.Match(item).Matched)
}

func TestMatch_Deduplication(t *testing.T) {
	// Two distinct saved items with textually identical refinements each
	// contribute their own raw label, exactly once.
	m := matcherFor("Pantry: Avocados", "Avocados")

	result := m.Match(flyer("Hass Avocados, Bag of 5"))
	require.True(t, result.Matched)
	assert.ElementsMatch(t, []string{"Pantry: Avocados", "Avocados"}, result.Labels)
	assert.Len(t, result.Labels, 2)
}

func TestMatch_EmptyRefinementNeverMatches(t *testing.T) {
	m := matcherFor("   ", "!!!", "Meat/Seafood:   ")

	assert.False(t, m.Match(flyer("Fresh Seafood Platter")).Matched)
	assert.False(t, m.Match(flyer("Anything At All")).Matched)
}

func TestMatch_EmptyFlyerText(t *testing.T) {
	m := matcherFor("Avocados")
	assert.False(t, m.Match(match.FlyerItem{StoreSlug: "aldi"}).Matched)
}
