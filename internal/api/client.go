package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const restPathPrefix = "/rest/v1"

// Client talks to the deals-4me Supabase project over its PostgREST
// endpoint. It only reads; all writes happen in the ingestion pipeline.
type Client struct {
	httpClient *http.Client
	restURL    string
	apiKey     string
}

// ErrMissingConfig is returned when the Supabase connection settings are
// absent from the environment.
var ErrMissingConfig = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY must be set")

// NewClient creates a read-only client for the given Supabase project URL.
func NewClient(projectURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		restURL:    projectURL + restPathPrefix,
		apiKey:     apiKey,
	}
}

// NewClientFromEnv builds a client from SUPABASE_URL and SUPABASE_ANON_KEY.
func NewClientFromEnv() (*Client, error) {
	projectURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_ANON_KEY")
	if projectURL == "" || apiKey == "" {
		return nil, ErrMissingConfig
	}
	return NewClient(projectURL, apiKey), nil
}

// NewClientWithRestURL creates a client pointed at a raw PostgREST base URL
// (for testing).
func NewClientWithRestURL(restURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		restURL:    restURL,
		apiKey:     apiKey,
	}
}

func (c *Client) getAndDecode(ctx context.Context, table string, params url.Values, out any) error {
	reqURL := c.restURL + "/" + table
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, reqURL)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: trailing JSON content")
	}
	return nil
}

// FetchSavedItems returns the user's saved grocery items, oldest first.
func (c *Client) FetchSavedItems(ctx context.Context) ([]SavedItemRow, error) {
	params := url.Values{
		"select": {"id,item_name"},
		"order":  {"id.asc"},
	}

	var rows []SavedItemRow
	if err := c.getAndDecode(ctx, "saved_items", params, &rows); err != nil {
		return nil, fmt.Errorf("fetching saved items: %w", err)
	}
	return rows, nil
}

// FetchOffers returns parsed flyer rows for a week, optionally restricted to
// one store slug.
func (c *Client) FetchOffers(ctx context.Context, weekCode, storeSlug string) ([]OfferRow, error) {
	params := url.Values{
		"select":    {"id,store_slug,week_code,item_name,size,unit,notes,price_cents"},
		"week_code": {"eq." + weekCode},
		"order":     {"store_slug.asc,id.asc"},
	}
	if storeSlug != "" {
		params.Set("store_slug", "eq."+storeSlug)
	}

	var rows []OfferRow
	if err := c.getAndDecode(ctx, "item_offers", params, &rows); err != nil {
		return nil, fmt.Errorf("fetching offers: %w", err)
	}
	return rows, nil
}

// FetchStores returns every store the pipeline knows about.
func (c *Client) FetchStores(ctx context.Context) ([]Store, error) {
	params := url.Values{
		"select": {"slug,name,city,state"},
		"order":  {"slug.asc"},
	}

	var rows []Store
	if err := c.getAndDecode(ctx, "stores", params, &rows); err != nil {
		return nil, fmt.Errorf("fetching stores: %w", err)
	}
	return rows, nil
}

// FetchLatestWeek returns the most recently ingested week code, or "" when
// no flyer weeks exist yet.
func (c *Client) FetchLatestWeek(ctx context.Context) (string, error) {
	params := url.Values{
		"select": {"store_slug,week_code,region"},
		"order":  {"week_code.desc"},
		"limit":  {"1"},
	}

	var rows []FlyerWeek
	if err := c.getAndDecode(ctx, "flyer_weeks", params, &rows); err != nil {
		return "", fmt.Errorf("fetching flyer weeks: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].WeekCode, nil
}
