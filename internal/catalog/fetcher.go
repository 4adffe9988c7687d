package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

// providerPageCap is the maximum page size the listing endpoint accepts.
const providerPageCap = 500

// defaultBrowseLimit caps a Browse call when the caller does not.
const defaultBrowseLimit = 500

// sortFields translates caller-facing sort names to the provider's sort
// fields. Unrecognized names fall back to "volume".
var sortFields = map[string]string{
	"volume":        "volume",
	"hot":           "volume24hr",
	"weekly":        "volume1wk",
	"liquidity":     "liquidity",
	"open_interest": "openInterest",
	"newest":        "createdAt",
	"starting":      "startDate",
	"ending":        "endDate",
	"competitive":   "competitive",
	"featured":      "featuredOrder",
}

// GammaAPI is the slice of the Gamma client the catalog consumes.
type GammaAPI interface {
	ListEvents(ctx context.Context, p polymarket.ListEventsParams) ([]polymarket.RawRecord, error)
	SearchEvents(ctx context.Context, p polymarket.SearchEventsParams) ([]polymarket.RawRecord, error)
	GetEventBySlug(ctx context.Context, slug string) (polymarket.RawRecord, error)
}

// DetailCache caches full event detail records by slug. Get returns
// domain.ErrNotFound on a miss.
type DetailCache interface {
	Get(ctx context.Context, slug string) (polymarket.RawRecord, error)
	Set(ctx context.Context, slug string, rec polymarket.RawRecord) error
}

// Browser retrieves raw catalog records from the Gamma API, either by
// paginated listing or by keyword search with detail enrichment.
type Browser struct {
	gamma  GammaAPI
	cache  DetailCache // nil disables detail caching
	logger *slog.Logger
}

// NewBrowser creates a Browser. cache may be nil.
func NewBrowser(gamma GammaAPI, cache DetailCache, logger *slog.Logger) *Browser {
	return &Browser{
		gamma:  gamma,
		cache:  cache,
		logger: logger,
	}
}

// BrowseOptions select and order the events returned by Browse.
type BrowseOptions struct {
	TagSlug      string
	SortBy       string // caller-facing sort name, see sortFields
	LiquidityMin float64
	Featured     bool
	// Limit caps the total number of records across all pages; 0 means
	// defaultBrowseLimit.
	Limit      int
	ShowClosed bool
	Ascending  bool
}

// Browse pages through the listing endpoint until the limit is reached or
// the data runs out.
//
// Partial-result policy: on a transport or HTTP failure mid-pagination,
// Browse returns every record accumulated so far together with the error.
// Callers that only care about best-effort data may ignore the error.
func (b *Browser) Browse(ctx context.Context, opts BrowseOptions) ([]polymarket.RawRecord, error) {
	order, ok := sortFields[opts.SortBy]
	if !ok {
		order = "volume"
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultBrowseLimit
	}

	fetchID := uuid.NewString()
	all := make([]polymarket.RawRecord, 0, min(limit, providerPageCap))
	offset := 0

	for len(all) < limit {
		pageLimit := min(limit-len(all), providerPageCap)

		batch, err := b.gamma.ListEvents(ctx, polymarket.ListEventsParams{
			Order:         order,
			LiquidityMin:  opts.LiquidityMin,
			Ascending:     opts.Ascending,
			TagSlug:       opts.TagSlug,
			Featured:      opts.Featured,
			ExcludeClosed: !opts.ShowClosed,
			Limit:         pageLimit,
			Offset:        offset,
		})
		if err != nil {
			b.logger.Warn("event listing aborted, returning partial results",
				slog.String("fetch_id", fetchID),
				slog.Int("offset", offset),
				slog.Int("accumulated", len(all)),
				slog.String("error", err.Error()),
			)
			return all, err
		}

		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)

		// A short page means the provider ran out of data.
		if len(batch) < pageLimit {
			break
		}

		offset += len(batch)
	}

	b.logger.Info("event listing complete",
		slog.String("fetch_id", fetchID),
		slog.String("order", order),
		slog.Int("count", len(all)),
	)

	return all, nil
}
