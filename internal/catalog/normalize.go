// Package catalog implements the discovery pipeline: paginated and
// search-based retrieval of raw catalog records, normalization into the
// canonical Event/Market model, and multi-criterion filtering.
package catalog

import (
	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

// Normalize converts one raw catalog record into a canonical Event with
// its owned Markets. It is total: malformed input degrades to defensive
// defaults and never produces an error.
//
// The record is classified structurally. A list-valued "markets" field
// makes it event-rooted: the record itself is the event source and each
// list element is a market source. Otherwise the record is market-rooted:
// the whole record is a single market source, and event metadata comes
// from the first element of its "events" list, falling back to the record
// itself when that list is absent or empty.
func Normalize(rec polymarket.RawRecord) domain.Event {
	eventSource := rec
	var marketSources []polymarket.RawRecord

	if rec.HasMarketsList() {
		marketSources = rec.Markets
	} else {
		marketSources = []polymarket.RawRecord{rec}
		if parent, ok := rec.FirstEvent(); ok {
			eventSource = parent
		}
	}

	markets := make([]domain.Market, 0, len(marketSources))
	for i := range marketSources {
		markets = append(markets, normalizeMarket(&marketSources[i]))
	}

	title := string(eventSource.Title)
	if title == "" {
		title = "Unknown Event"
	}

	return domain.Event{
		ID:          string(eventSource.ID),
		Slug:        string(eventSource.Slug),
		Title:       title,
		Description: string(eventSource.Description),
		CreatedAt:   string(eventSource.CreatedAt),
		Volume:      float64(eventSource.Volume),
		Volume24hr:  float64(eventSource.Volume24hr),
		Markets:     markets,
	}
}

// NormalizeAll maps Normalize over a batch, preserving order.
func NormalizeAll(records []polymarket.RawRecord) []domain.Event {
	events := make([]domain.Event, 0, len(records))
	for i := range records {
		events = append(events, Normalize(records[i]))
	}
	return events
}

func normalizeMarket(m *polymarket.RawRecord) domain.Market {
	// question, else title, else placeholder. In the market-rooted shape
	// "question" sits at the root; in the event-rooted shape it sits on
	// the list element. Both arrive here as the market source.
	question := string(m.Question)
	if question == "" {
		question = string(m.Title)
	}
	if question == "" {
		question = "Unknown Question"
	}

	return domain.Market{
		ID:            string(m.ID),
		ConditionID:   string(m.ConditionID),
		Question:      question,
		Outcomes:      m.Outcomes,
		TokenIDs:      m.ClobTokenIDs,
		OutcomePrices: m.OutcomePrices,
		UmaBond:       string(m.UmaBond),
		Liquidity:     float64(m.Liquidity),
		Volume:        float64(m.Volume),
		Volume24hr:    float64(m.Volume24hr),
		Volume1wk:     float64(m.Volume1wk),
		PriceChange:   m.PriceChange(),
		BestBid:       float64(m.BestBid),
		BestAsk:       float64(m.BestAsk),
		EndDate:       string(m.EndDate),
	}
}
