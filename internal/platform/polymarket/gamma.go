package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alanyoungcy/polyterm/internal/domain"
)

// GammaClient is the REST client for the Polymarket Gamma API, which
// provides event discovery, metadata, and search.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGammaClient creates a new Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string) *GammaClient {
	return &GammaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListEventsParams are the query parameters for the events listing
// endpoint. Zero values are omitted from the request except Limit and
// Offset, which are always sent.
type ListEventsParams struct {
	Order        string
	LiquidityMin float64
	Ascending    bool
	TagSlug      string
	Featured     bool
	// ExcludeClosed adds active=true, closed=false, archived=false so the
	// listing only returns live events.
	ExcludeClosed bool
	Limit         int
	Offset        int
}

// ListEvents returns one page of raw event records from the listing
// endpoint. An empty page signals end of data.
func (g *GammaClient) ListEvents(ctx context.Context, p ListEventsParams) ([]RawRecord, error) {
	params := url.Values{}
	params.Set("order", p.Order)
	params.Set("liquidity_min", strconv.FormatFloat(p.LiquidityMin, 'f', -1, 64))
	params.Set("ascending", strconv.FormatBool(p.Ascending))
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("offset", strconv.Itoa(p.Offset))
	if p.TagSlug != "" {
		params.Set("tag_slug", strings.ToLower(p.TagSlug))
	}
	if p.Featured {
		params.Set("featured", "true")
	}
	if p.ExcludeClosed {
		params.Set("active", "true")
		params.Set("closed", "false")
		params.Set("archived", "false")
	}

	path := "/events?" + params.Encode()

	body, err := g.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: list events: %w", err)
	}

	var events []RawRecord
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode events: %w", err)
	}

	return events, nil
}

// SearchEventsParams are the query parameters for the public-search
// endpoint.
type SearchEventsParams struct {
	Query        string
	EventsStatus string
	LimitPerType int
	Sort         string
	Ascending    bool
	Optimized    bool
	EventsTag    []string
	ExcludeTagID []int
}

// SearchEvents performs a keyword search and returns the summary event
// records from the response envelope.
func (g *GammaClient) SearchEvents(ctx context.Context, p SearchEventsParams) ([]RawRecord, error) {
	params := url.Values{}
	params.Set("q", p.Query)
	params.Set("events_status", p.EventsStatus)
	params.Set("limit_per_type", strconv.Itoa(p.LimitPerType))
	params.Set("sort", p.Sort)
	params.Set("ascending", strconv.FormatBool(p.Ascending))
	params.Set("optimized", strconv.FormatBool(p.Optimized))
	for _, tag := range p.EventsTag {
		params.Add("events_tag", tag)
	}
	for _, id := range p.ExcludeTagID {
		params.Add("exclude_tag_id", strconv.Itoa(id))
	}

	path := "/public-search?" + params.Encode()

	body, err := g.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: search events: %w", err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode search response: %w", err)
	}

	return resp.Events, nil
}

// GetEventBySlug returns the full detail record for one event.
func (g *GammaClient) GetEventBySlug(ctx context.Context, slug string) (RawRecord, error) {
	path := fmt.Sprintf("/events/slug/%s", url.PathEscape(slug))

	body, err := g.doGet(ctx, path)
	if err != nil {
		return RawRecord{}, fmt.Errorf("polymarket/gamma: get event by slug %s: %w", slug, err)
	}

	var event RawRecord
	if err := json.Unmarshal(body, &event); err != nil {
		return RawRecord{}, fmt.Errorf("polymarket/gamma: decode event: %w", err)
	}

	return event, nil
}

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doGet sends an unauthenticated GET request to the Gamma API.
func (g *GammaClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkHTTPStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkHTTPStatus maps non-2xx status codes to appropriate domain errors.
func checkHTTPStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	bodyStr := string(body)
	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, bodyStr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, bodyStr)
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrBadGateway, statusCode, bodyStr)
	default:
		return fmt.Errorf("HTTP %d: %s", statusCode, bodyStr)
	}
}
