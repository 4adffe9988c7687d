package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

const (
	// enrichWorkerCap bounds the detail-fetch pool; the effective pool
	// size is min(enrichWorkerCap, result count).
	enrichWorkerCap = 5

	// detailTimeout bounds each individual detail fetch.
	detailTimeout = 10 * time.Second
)

var errMissingSlug = errors.New("summary record has no slug")

// SearchOptions select the events returned by Search.
type SearchOptions struct {
	Query        string
	EventsStatus string // default "active"
	LimitPerType int    // default 10
	Sort         string // provider sort field, default "liquidity"
	Ascending    bool
	EventsTag    []string
	ExcludeTags  []int
	// Enrich replaces each summary result with its full detail record.
	Enrich bool
}

// EnrichFailure records one summary record whose detail fetch failed and
// which therefore remains a summary in the output.
type EnrichFailure struct {
	Index int
	Slug  string
	Err   error
}

// Search performs one keyword search, drops closed results, and (when
// requested) enriches each remaining summary with its full detail record.
//
// Enrichment runs on a bounded worker pool and writes results back by
// index, so output order always equals search-result order no matter
// which fetch finishes first. A failed detail fetch keeps the summary at
// its position and is reported in the returned EnrichFailure slice; it
// never affects sibling records. Only the initial search request can
// fail the call as a whole.
func (b *Browser) Search(ctx context.Context, opts SearchOptions) ([]polymarket.RawRecord, []EnrichFailure, error) {
	if opts.EventsStatus == "" {
		opts.EventsStatus = "active"
	}
	if opts.LimitPerType <= 0 {
		opts.LimitPerType = 10
	}
	if opts.Sort == "" {
		opts.Sort = "liquidity"
	}

	results, err := b.gamma.SearchEvents(ctx, polymarket.SearchEventsParams{
		Query:        opts.Query,
		EventsStatus: opts.EventsStatus,
		LimitPerType: opts.LimitPerType,
		Sort:         opts.Sort,
		Ascending:    opts.Ascending,
		Optimized:    true,
		EventsTag:    opts.EventsTag,
		ExcludeTagID: opts.ExcludeTags,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: search %q: %w", opts.Query, err)
	}

	open := make([]polymarket.RawRecord, 0, len(results))
	for i := range results {
		if bool(results[i].Closed) {
			continue
		}
		open = append(open, results[i])
	}

	if !opts.Enrich || len(open) == 0 {
		return open, nil, nil
	}

	enriched, failures := b.enrich(ctx, open)
	return enriched, failures, nil
}

// enrich fetches the full detail record for each summary concurrently.
// Each worker owns exactly one index of the output slice, so no lock is
// needed for the records themselves.
func (b *Browser) enrich(ctx context.Context, summaries []polymarket.RawRecord) ([]polymarket.RawRecord, []EnrichFailure) {
	fetchID := uuid.NewString()
	b.logger.Info("enriching search results",
		slog.String("fetch_id", fetchID),
		slog.Int("count", len(summaries)),
	)

	enriched := make([]polymarket.RawRecord, len(summaries))
	copy(enriched, summaries)

	var (
		mu       sync.Mutex
		failures []EnrichFailure
	)
	fail := func(index int, slug string, err error) {
		b.logger.Warn("enrichment failed, keeping summary",
			slog.String("fetch_id", fetchID),
			slog.Int("index", index),
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		mu.Lock()
		failures = append(failures, EnrichFailure{Index: index, Slug: slug, Err: err})
		mu.Unlock()
	}

	g := new(errgroup.Group)
	g.SetLimit(min(enrichWorkerCap, len(summaries)))

	for i := range summaries {
		i := i
		g.Go(func() error {
			slug := string(summaries[i].Slug)
			if slug == "" {
				fail(i, slug, errMissingSlug)
				return nil
			}

			full, err := b.fetchDetail(ctx, slug)
			if err != nil {
				fail(i, slug, err)
				return nil
			}

			enriched[i] = full
			return nil
		})
	}

	// Workers never return errors; failures degrade per record.
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })

	return enriched, failures
}

// fetchDetail resolves one slug to its full detail record, consulting the
// cache when configured. Cache errors are logged and otherwise ignored.
func (b *Browser) fetchDetail(ctx context.Context, slug string) (polymarket.RawRecord, error) {
	if b.cache != nil {
		rec, err := b.cache.Get(ctx, slug)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			b.logger.Warn("detail cache read failed",
				slog.String("slug", slug),
				slog.String("error", err.Error()),
			)
		}
	}

	detailCtx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	rec, err := b.gamma.GetEventBySlug(detailCtx, slug)
	if err != nil {
		return polymarket.RawRecord{}, err
	}

	if b.cache != nil {
		if err := b.cache.Set(ctx, slug, rec); err != nil {
			b.logger.Warn("detail cache write failed",
				slog.String("slug", slug),
				slog.String("error", err.Error()),
			)
		}
	}

	return rec, nil
}
