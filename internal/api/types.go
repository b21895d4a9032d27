package api

import "github.com/jwein/deals4me/internal/match"

// Store is one grocery chain tracked by the ingestion pipeline.
type Store struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// FlyerWeek is one ingested store/week combination. WeekCode follows the
// pipeline's MMDDYY folder naming (e.g., "101625"); Region is set only for
// chains that publish regional flyers.
type FlyerWeek struct {
	StoreSlug string  `json:"store_slug"`
	WeekCode  string  `json:"week_code"`
	Region    *string `json:"region"`
}

// OfferRow is a single parsed flyer entry as stored by the OCR pipeline.
// Text fields are free-form; PriceCents is nil when no price was recovered.
type OfferRow struct {
	ID         int64   `json:"id"`
	StoreSlug  string  `json:"store_slug"`
	WeekCode   string  `json:"week_code"`
	ItemName   *string `json:"item_name"`
	Size       *string `json:"size"`
	Unit       *string `json:"unit"`
	Notes      *string `json:"notes"`
	PriceCents *int    `json:"price_cents"`
}

// SavedItemRow is one saved grocery item belonging to the signed-in user.
type SavedItemRow struct {
	ID       int64  `json:"id"`
	ItemName string `json:"item_name"`
}

// FlyerItem adapts the loosely-shaped external row into the matcher's typed
// input. Nil text fields collapse to empty strings and simply fail to match.
func (r OfferRow) FlyerItem() match.FlyerItem {
	return match.FlyerItem{
		Name:      Deref(r.ItemName),
		Size:      Deref(r.Size),
		Unit:      Deref(r.Unit),
		Notes:     Deref(r.Notes),
		StoreSlug: r.StoreSlug,
	}
}

// FlyerItems adapts a full offer snapshot for a matching pass.
func FlyerItems(rows []OfferRow) []match.FlyerItem {
	items := make([]match.FlyerItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.FlyerItem())
	}
	return items
}

// SavedItems parses saved-item rows into matcher specs.
func SavedItems(rows []SavedItemRow) []match.SavedItem {
	items := make([]match.SavedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, match.ParseSavedItem(row.ItemName))
	}
	return items
}

// Deref safely dereferences a string pointer, returning "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
