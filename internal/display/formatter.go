package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/filter"
	"github.com/jwein/deals4me/internal/match"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelTag     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// DealJSON is the JSON output shape for a matched deal.
type DealJSON struct {
	Store         string   `json:"store"`
	Week          string   `json:"week"`
	Item          string   `json:"item"`
	Size          string   `json:"size,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Price         string   `json:"price,omitempty"`
	MatchedLabels []string `json:"matchedLabels"`
}

// SavedItemJSON is the JSON output shape for a saved item.
type SavedItemJSON struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Category   string `json:"category,omitempty"`
	Refinement string `json:"refinement"`
}

// PrintDeals renders matched deals grouped per store.
func PrintDeals(w io.Writer, deals []filter.Deal, weekCode string) {
	fmt.Fprintf(w, "\n%s — %s\n",
		headerStyle.Render("Saved deals for week "+weekCode),
		cyanStyle.Render(fmt.Sprintf("%d items", len(deals))),
	)

	for _, slug := range storeOrder(deals) {
		storeDeals := dealsForStore(deals, slug)
		fmt.Fprintf(w, "\n%s %s\n\n",
			titleStyle.Render(HumanizeSlug(slug)),
			dimStyle.Render(fmt.Sprintf("(%d deals)", len(storeDeals))),
		)
		for _, d := range storeDeals {
			printDeal(w, d)
			fmt.Fprintln(w)
		}
	}
}

// PrintDealsJSON renders matched deals as JSON.
func PrintDealsJSON(w io.Writer, deals []filter.Deal) error {
	out := make([]DealJSON, 0, len(deals))
	for _, d := range deals {
		out = append(out, toDealJSON(d))
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintCounts renders per-store matched-deal tallies, busiest store first.
func PrintCounts(w io.Writer, counts map[string]int, weekCode string) {
	type storeCount struct {
		Slug  string
		Count int
	}
	sorted := make([]storeCount, 0, len(counts))
	for slug, count := range counts {
		sorted = append(sorted, storeCount{slug, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	fmt.Fprintf(w, "\n%s\n\n",
		titleStyle.Render(fmt.Sprintf("Saved-deal counts for week %s:", weekCode)),
	)
	for _, c := range sorted {
		fmt.Fprintf(w, "  %s: %d deals\n", cyanStyle.Render(HumanizeSlug(c.Slug)), c.Count)
	}
	fmt.Fprintln(w)
}

// PrintCountsJSON renders per-store tallies as JSON.
func PrintCountsJSON(w io.Writer, counts map[string]int) error {
	return json.NewEncoder(w).Encode(counts)
}

// PrintSavedItems renders the user's saved items with their parsed parts.
func PrintSavedItems(w io.Writer, rows []api.SavedItemRow) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(fmt.Sprintf("Saved items (%d):", len(rows))))
	for _, row := range rows {
		item := match.ParseSavedItem(row.ItemName)
		fmt.Fprintf(w, "  %s\n", titleStyle.Render(row.ItemName))
		if item.Category != "" {
			fmt.Fprintf(w, "        %s\n", dimStyle.Render("category: "+item.Category))
		}
		if item.Refinement == "" {
			fmt.Fprintf(w, "        %s\n", warningStyle.Render("label normalizes to nothing and will never match"))
		}
		fmt.Fprintln(w)
	}
}

// PrintSavedItemsJSON renders saved items as JSON.
func PrintSavedItemsJSON(w io.Writer, rows []api.SavedItemRow) error {
	out := make([]SavedItemJSON, 0, len(rows))
	for _, row := range rows {
		item := match.ParseSavedItem(row.ItemName)
		out = append(out, SavedItemJSON{
			ID:         row.ID,
			Label:      row.ItemName,
			Category:   item.Category,
			Refinement: item.Refinement,
		})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintStores renders the known store list.
func PrintStores(w io.Writer, stores []api.Store) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Tracked stores:"))
	for _, s := range stores {
		name := s.Name
		if name == "" {
			name = HumanizeSlug(s.Slug)
		}
		fmt.Fprintf(w, "  %s  %s\n", cyanStyle.Render(s.Slug), titleStyle.Render(name))
		if s.City != "" || s.State != "" {
			fmt.Fprintf(w, "        %s\n", dimStyle.Render(strings.TrimSuffix(s.City+", "+s.State, ", ")))
		}
		fmt.Fprintln(w)
	}
}

// PrintStoresJSON renders stores as JSON.
func PrintStoresJSON(w io.Writer, stores []api.Store) error {
	return json.NewEncoder(w).Encode(stores)
}

// PrintWeekContext prints a dim line showing which flyer week was selected.
func PrintWeekContext(w io.Writer, weekCode string, auto bool) {
	suffix := ""
	if auto {
		suffix = " (latest ingested)"
	}
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render("Using flyer week: "+weekCode+suffix))
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// FormatPrice renders price cents as "$1.99", or "" when unknown.
func FormatPrice(cents *int) string {
	if cents == nil {
		return ""
	}
	return fmt.Sprintf("$%d.%02d", *cents/100, *cents%100)
}

// HumanizeSlug turns "stop_and_shop" into "Stop And Shop" for headings.
func HumanizeSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "_", " "))
	if len(words) == 0 {
		return "Unknown Store"
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func printDeal(w io.Writer, d filter.Deal) {
	name := strings.TrimSpace(api.Deref(d.Offer.ItemName))
	if name == "" {
		name = "Unknown item"
	}
	fmt.Fprintf(w, "  %s\n", titleStyle.Render(name))

	var parts []string
	if price := FormatPrice(d.Offer.PriceCents); price != "" {
		parts = append(parts, priceStyle.Render(price))
	}
	if size := strings.TrimSpace(api.Deref(d.Offer.Size)); size != "" {
		parts = append(parts, size)
	}
	if unit := strings.TrimSpace(api.Deref(d.Offer.Unit)); unit != "" {
		parts = append(parts, unit)
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, " | "))
	}

	if notes := strings.TrimSpace(api.Deref(d.Offer.Notes)); notes != "" {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(wordWrap(notes, 72, "    ")))
	}

	fmt.Fprintf(w, "    %s %s\n",
		labelTag.Render("matches:"),
		strings.Join(d.Labels, ", "),
	)
}

func toDealJSON(d filter.Deal) DealJSON {
	labels := d.Labels
	if labels == nil {
		labels = []string{}
	}
	return DealJSON{
		Store:         d.Offer.StoreSlug,
		Week:          d.Offer.WeekCode,
		Item:          api.Deref(d.Offer.ItemName),
		Size:          api.Deref(d.Offer.Size),
		Unit:          api.Deref(d.Offer.Unit),
		Notes:         api.Deref(d.Offer.Notes),
		Price:         FormatPrice(d.Offer.PriceCents),
		MatchedLabels: labels,
	}
}

func storeOrder(deals []filter.Deal) []string {
	counts := filter.CountsByStore(deals)
	slugs := make([]string, 0, len(counts))
	for slug := range counts {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool {
		if counts[slugs[i]] != counts[slugs[j]] {
			return counts[slugs[i]] > counts[slugs[j]]
		}
		return slugs[i] < slugs[j]
	})
	return slugs
}

func dealsForStore(deals []filter.Deal, slug string) []filter.Deal {
	var out []filter.Deal
	for _, d := range deals {
		if d.Offer.StoreSlug == slug {
			out = append(out, d)
		}
	}
	return out
}

func wordWrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n"+indent)
}
