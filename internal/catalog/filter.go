package catalog

import (
	"time"

	"github.com/alanyoungcy/polyterm/internal/domain"
)

// expiringWindow is the look-ahead used by the expiring-soon criterion.
const expiringWindow = 48 * time.Hour

// FilterOptions are the filter criteria. Nil pointers and zero values
// mean "criterion not applied"; all supplied criteria must pass.
type FilterOptions struct {
	MinVolume     *float64
	MinLiquidity  *float64
	MinVolume24hr *float64
	ExpiringSoon  bool
	SearchQuery   string
}

// Filter returns the events satisfying every supplied criterion, in their
// original relative order. The input is never mutated.
func Filter(events []domain.Event, opts FilterOptions) []domain.Event {
	now := time.Now().UTC()

	filtered := make([]domain.Event, 0, len(events))
	for i := range events {
		if eventPasses(&events[i], opts, now) {
			filtered = append(filtered, events[i])
		}
	}
	return filtered
}

func eventPasses(e *domain.Event, opts FilterOptions, now time.Time) bool {
	if opts.SearchQuery != "" {
		matched := Match(opts.SearchQuery, e.Title)
		if !matched {
			for i := range e.Markets {
				if Match(opts.SearchQuery, e.Markets[i].Question) {
					matched = true
					break
				}
			}
		}
		if !matched {
			return false
		}
	}

	if opts.MinVolume != nil && e.Volume < *opts.MinVolume {
		return false
	}

	if opts.MinVolume24hr != nil && e.Volume24hr < *opts.MinVolume24hr {
		return false
	}

	// Liquidity lives on markets, not events: an event passes on its most
	// liquid market. Zero markets means zero liquidity.
	if opts.MinLiquidity != nil && e.MaxMarketLiquidity() < *opts.MinLiquidity {
		return false
	}

	if opts.ExpiringSoon && !hasExpiringMarket(e, now) {
		return false
	}

	return true
}

// hasExpiringMarket reports whether any market's end date falls strictly
// inside (now, now+48h). Missing or unparseable end dates are skipped.
func hasExpiringMarket(e *domain.Event, now time.Time) bool {
	for i := range e.Markets {
		end, err := parseEndDate(e.Markets[i].EndDate)
		if err != nil {
			continue
		}
		left := end.Sub(now)
		if left > 0 && left < expiringWindow {
			return true
		}
	}
	return false
}

// parseEndDate parses an ISO-8601 end date. A trailing "Z" is an UTC
// offset under RFC 3339; timestamps without any offset are read as UTC.
func parseEndDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
