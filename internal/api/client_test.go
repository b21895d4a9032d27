package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwein/deals4me/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func newTestRestServer(t *testing.T, tables map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both Supabase auth headers must be present on every request.
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		payload, ok := tables[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestFetchSavedItems(t *testing.T) {
	srv := newTestRestServer(t, map[string]any{
		"/saved_items": []api.SavedItemRow{
			{ID: 1, ItemName: "Meat / Seafood: Beef"},
			{ID: 2, ItemName: "Avocados"},
		},
	})
	defer srv.Close()

	client := api.NewClientWithRestURL(srv.URL, "test-key")
	rows, err := client.FetchSavedItems(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Meat / Seafood: Beef", rows[0].ItemName)
}

func TestFetchOffers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item_offers", r.URL.Path)
		assert.Equal(t, "eq.101625", r.URL.Query().Get("week_code"))
		assert.Equal(t, "eq.market_basket", r.URL.Query().Get("store_slug"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]api.OfferRow{
			{ID: 10, StoreSlug: "market_basket", WeekCode: "101625", ItemName: ptr("Ribeye Steak"), PriceCents: intPtr(799)},
		})
	}))
	defer srv.Close()

	client := api.NewClientWithRestURL(srv.URL, "test-key")
	rows, err := client.FetchOffers(context.Background(), "101625", "market_basket")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ribeye Steak", api.Deref(rows[0].ItemName))
	assert.Equal(t, 799, *rows[0].PriceCents)
}

func TestFetchOffers_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := api.NewClientWithRestURL(srv.URL, "test-key")
	_, err := client.FetchOffers(context.Background(), "101625", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchLatestWeek(t *testing.T) {
	srv := newTestRestServer(t, map[string]any{
		"/flyer_weeks": []api.FlyerWeek{
			{StoreSlug: "stop_and_shop", WeekCode: "101625"},
		},
	})
	defer srv.Close()

	client := api.NewClientWithRestURL(srv.URL, "test-key")
	week, err := client.FetchLatestWeek(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "101625", week)
}

func TestFetchLatestWeek_NoWeeks(t *testing.T) {
	srv := newTestRestServer(t, map[string]any{
		"/flyer_weeks": []api.FlyerWeek{},
	})
	defer srv.Close()

	client := api.NewClientWithRestURL(srv.URL, "test-key")
	week, err := client.FetchLatestWeek(context.Background())

	require.NoError(t, err)
	assert.Empty(t, week)
}

func TestNewClientFromEnv_Missing(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := api.NewClientFromEnv()
	assert.ErrorIs(t, err, api.ErrMissingConfig)
}

func TestOfferRowAdapter(t *testing.T) {
	row := api.OfferRow{
		StoreSlug: "shaws",
		ItemName:  ptr("Boneless Ham"),
		Size:      ptr("8 lb avg"),
		Notes:     ptr("spiral cut"),
	}

	item := row.FlyerItem()
	assert.Equal(t, "Boneless Ham", item.Name)
	assert.Equal(t, "8 lb avg", item.Size)
	assert.Equal(t, "", item.Unit)
	assert.Equal(t, "spiral cut", item.Notes)
	assert.Equal(t, "shaws", item.StoreSlug)
}

func TestSavedItemsAdapter(t *testing.T) {
	items := api.SavedItems([]api.SavedItemRow{
		{ID: 1, ItemName: "Meat / Seafood: Beef"},
		{ID: 2, ItemName: "Avocados"},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "meat seafood", items[0].Category)
	assert.Equal(t, "beef", items[0].Refinement)
	assert.Equal(t, "", items[1].Category)
	assert.Equal(t, "avocados", items[1].Refinement)
}
