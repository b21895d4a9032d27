package match

import "strings"

// Normalize produces the canonical comparable form of free text: lowercase,
// "&" spelled out as "and", punctuation stripped, whitespace collapsed.
// Saved-item labels and flyer text both pass through here, so comparisons
// do not depend on source formatting. Idempotent; never returns an error.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		// Everything else (punctuation, symbols, whitespace runs) becomes a
		// space so word boundaries survive normalization.
		b.WriteByte(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ParseSavedItem splits a raw saved-item label into an optional category and
// a refinement, both normalized. Only the first colon delimits the category;
// "Meat/Seafood: Salmon: Wild" refines to "salmon wild".
//
// A label that is only punctuation or whitespace yields an empty refinement.
// Such items are inert: they never match anything and never raise.
func ParseSavedItem(rawLabel string) SavedItem {
	item := SavedItem{RawLabel: rawLabel}

	if idx := strings.Index(rawLabel, ":"); idx >= 0 {
		item.Category = Normalize(rawLabel[:idx])
		item.Refinement = Normalize(rawLabel[idx+1:])
		return item
	}

	item.Refinement = Normalize(rawLabel)
	return item
}

// proteinCategorySpellings are the normalized forms a "Meat / Seafood"
// category tag can take after punctuation stripping and ampersand expansion.
var proteinCategorySpellings = []string{
	"meat seafood",
	"meat and seafood",
	"meat sea food",
	"meat and sea food",
}

// IsProteinCategory reports whether a normalized category string selects the
// protein rule family. Empty and unknown categories take the generic path.
func IsProteinCategory(category string) bool {
	if category == "" {
		return false
	}
	for _, spelling := range proteinCategorySpellings {
		if strings.Contains(category, spelling) {
			return true
		}
	}
	return false
}
