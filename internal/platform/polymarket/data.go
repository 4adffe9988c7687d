package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DataClient is the REST client for the Polymarket data API, which serves
// account-level read models: positions and leaderboard analytics.
type DataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDataClient creates a new data API client.
//
// baseURL is the data API root, e.g. "https://data-api.polymarket.com".
func NewDataClient(baseURL string) *DataClient {
	return &DataClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListPositionsParams are the query parameters for one page of the
// positions endpoint.
type ListPositionsParams struct {
	User          string
	SizeThreshold float64
	SortBy        string
	SortDirection string
	Limit         int
	Offset        int
}

// ListPositions returns one page of positions for a wallet. A page shorter
// than the requested limit signals end of data.
func (d *DataClient) ListPositions(ctx context.Context, p ListPositionsParams) ([]APIPosition, error) {
	params := url.Values{}
	params.Set("user", p.User)
	params.Set("sizeThreshold", strconv.FormatFloat(p.SizeThreshold, 'f', -1, 64))
	params.Set("sortBy", p.SortBy)
	params.Set("sortDirection", p.SortDirection)
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("offset", strconv.Itoa(p.Offset))

	path := "/positions?" + params.Encode()

	body, err := d.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/data: list positions: %w", err)
	}

	var positions []APIPosition
	if err := json.Unmarshal(body, &positions); err != nil {
		return nil, fmt.Errorf("polymarket/data: decode positions: %w", err)
	}

	return positions, nil
}

// LeaderboardParams are the query parameters for the v1 leaderboard
// endpoint.
type LeaderboardParams struct {
	Category   string
	TimePeriod string // DAY, WEEK, MONTH or ALL
	OrderBy    string
	Limit      int
	User       string
}

// Leaderboard returns leaderboard entries, optionally filtered to one
// user's wallet.
func (d *DataClient) Leaderboard(ctx context.Context, p LeaderboardParams) ([]APILeaderboardEntry, error) {
	params := url.Values{}
	params.Set("category", p.Category)
	params.Set("timePeriod", p.TimePeriod)
	params.Set("orderBy", p.OrderBy)
	params.Set("limit", strconv.Itoa(p.Limit))
	if p.User != "" {
		params.Set("user", p.User)
	}

	path := "/v1/leaderboard?" + params.Encode()

	body, err := d.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/data: leaderboard: %w", err)
	}

	var entries []APILeaderboardEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("polymarket/data: decode leaderboard: %w", err)
	}

	return entries, nil
}

// doGet sends an unauthenticated GET request to the data API.
func (d *DataClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
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
