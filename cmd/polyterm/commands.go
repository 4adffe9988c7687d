package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alanyoungcy/polyterm/internal/cache/redis"
	"github.com/alanyoungcy/polyterm/internal/catalog"
	"github.com/alanyoungcy/polyterm/internal/config"
	"github.com/alanyoungcy/polyterm/internal/display"
	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
	"github.com/alanyoungcy/polyterm/internal/wallet"
)

// newBrowser wires the Gamma client, the optional Redis detail cache, and
// the catalog Browser. A cache connection failure downgrades to uncached
// operation rather than failing the command.
func newBrowser(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Browser, func()) {
	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaHost)

	var cache catalog.DetailCache
	cleanup := func() {}

	if cfg.Redis.Enabled {
		ec, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			logger.Warn("detail cache unavailable, continuing without it",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("error", err.Error()),
			)
		} else {
			cache = ec
			cleanup = func() { _ = ec.Close() }
		}
	}

	return catalog.NewBrowser(gamma, cache, logger), cleanup
}

// optFloat returns a pointer to the flag value, or nil when the flag kept
// its sentinel default (criterion not applied).
func optFloat(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func runBrowse(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	tag := fs.String("tag", "", "tag slug, e.g. politics")
	sortBy := fs.String("sort", cfg.Discovery.DefaultSort, "sort: volume, hot, weekly, liquidity, open_interest, newest, starting, ending, competitive, featured")
	liquidityMin := fs.Float64("min-liquidity", cfg.Discovery.LiquidityMin, "provider-side liquidity floor")
	limit := fs.Int("limit", cfg.Discovery.DefaultLimit, "maximum events to fetch")
	featured := fs.Bool("featured", false, "featured events only")
	showClosed := fs.Bool("show-closed", false, "include closed/archived events")
	ascending := fs.Bool("ascending", false, "ascending sort order")
	query := fs.String("q", "", "fuzzy title/question filter")
	minVolume := fs.Float64("min-volume", -1, "volume floor (post-fetch filter)")
	minVolume24h := fs.Float64("min-volume-24h", -1, "24h volume floor (post-fetch filter)")
	minLiquidity := fs.Float64("min-market-liquidity", -1, "max-market liquidity floor (post-fetch filter)")
	expiring := fs.Bool("expiring", false, "only events with a market ending within 48h")
	showMarkets := fs.Bool("markets", false, "print a market table per event")
	if err := fs.Parse(args); err != nil {
		return err
	}

	browser, cleanup := newBrowser(ctx, cfg, logger)
	defer cleanup()

	records, err := browser.Browse(ctx, catalog.BrowseOptions{
		TagSlug:      *tag,
		SortBy:       *sortBy,
		LiquidityMin: *liquidityMin,
		Featured:     *featured,
		Limit:        *limit,
		ShowClosed:   *showClosed,
		Ascending:    *ascending,
	})
	if err != nil {
		// Partial-result policy: keep whatever came back.
		logger.Warn("browse returned partial results", slog.String("error", err.Error()))
	}

	events := filterEvents(catalog.NormalizeAll(records), *query, *minVolume, *minVolume24h, *minLiquidity, *expiring)
	render(events, *showMarkets)
	return nil
}

func render(events []domain.Event, showMarkets bool) {
	display.Events(os.Stdout, events)
	if !showMarkets {
		return
	}
	for i := range events {
		fmt.Println()
		display.Markets(os.Stdout, &events[i])
	}
}

func runSearch(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query (required)")
	status := fs.String("status", "active", "events status filter")
	limitPerType := fs.Int("limit-per-type", 10, "results per entity type")
	sortBy := fs.String("sort", "liquidity", "provider sort field")
	ascending := fs.Bool("ascending", false, "ascending sort order")
	tags := fs.String("tags", "", "comma-separated tag slugs")
	noEnrich := fs.Bool("no-enrich", false, "skip fetching full event details")
	showMarkets := fs.Bool("markets", false, "print a market table per event")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *query == "" {
		return errors.New("search: -q is required")
	}

	browser, cleanup := newBrowser(ctx, cfg, logger)
	defer cleanup()

	var eventsTag []string
	if *tags != "" {
		eventsTag = strings.Split(*tags, ",")
	}

	records, failures, err := browser.Search(ctx, catalog.SearchOptions{
		Query:        *query,
		EventsStatus: *status,
		LimitPerType: *limitPerType,
		Sort:         *sortBy,
		Ascending:    *ascending,
		EventsTag:    eventsTag,
		Enrich:       !*noEnrich,
	})
	if err != nil {
		return err
	}
	for _, f := range failures {
		logger.Warn("result kept as summary",
			slog.Int("index", f.Index),
			slog.String("slug", f.Slug),
			slog.String("error", f.Err.Error()),
		)
	}

	render(catalog.NormalizeAll(records), *showMarkets)
	return nil
}

func filterEvents(events []domain.Event, query string, minVolume, minVolume24h, minLiquidity float64, expiring bool) []domain.Event {
	opts := catalog.FilterOptions{
		MinVolume:     optFloat(minVolume),
		MinVolume24hr: optFloat(minVolume24h),
		MinLiquidity:  optFloat(minLiquidity),
		ExpiringSoon:  expiring,
		SearchQuery:   query,
	}
	return catalog.Filter(events, opts)
}

func runHoldings(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("holdings", flag.ExitOnError)
	user := fs.String("user", cfg.Wallet.ProxyAddress, "wallet address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return errors.New("holdings: no wallet address; set wallet.proxy_address or pass -user")
	}

	svc := wallet.NewService(polymarket.NewDataClient(cfg.Polymarket.DataHost), logger)

	positions, err := svc.Holdings(ctx, *user)
	if err != nil {
		logger.Warn("holdings returned partial results", slog.String("error", err.Error()))
	}
	if len(positions) == 0 {
		fmt.Println("no open positions")
		return nil
	}

	display.Holdings(os.Stdout, positions)
	return nil
}

func runAnalytics(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	user := fs.String("user", cfg.Wallet.ProxyAddress, "wallet address")
	period := fs.String("period", "DAY", "time period: DAY, WEEK, MONTH, ALL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return errors.New("analytics: no wallet address; set wallet.proxy_address or pass -user")
	}

	svc := wallet.NewService(polymarket.NewDataClient(cfg.Polymarket.DataHost), logger)

	analytics, err := svc.Analytics(ctx, *user, strings.ToUpper(*period))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println("no analytics for this period; the wallet may not be ranked yet")
			return nil
		}
		return err
	}

	display.Analytics(os.Stdout, analytics)
	return nil
}
