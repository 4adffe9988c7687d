package catalog

import (
	"encoding/json"
	"testing"

	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

func mustRecord(t *testing.T, raw string) polymarket.RawRecord {
	t.Helper()
	var rec polymarket.RawRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	return rec
}

func TestNormalizeEventRooted(t *testing.T) {
	rec := mustRecord(t, `{
		"id": 123,
		"slug": "us-election",
		"title": "US Election",
		"description": "Who wins?",
		"createdAt": "2024-01-01T00:00:00Z",
		"volume": "250000.5",
		"volume24hr": 1200,
		"markets": [
			{
				"id": "m1",
				"conditionId": "0xabc",
				"question": "Will A win?",
				"outcomes": "[\"Yes\",\"No\"]",
				"outcomePrices": "[\"0.6\",\"0.4\"]",
				"clobTokenIds": "[\"111\",\"222\"]",
				"umaBond": 500,
				"liquidity": "8000",
				"volume": 100,
				"volume24hr": 10,
				"volume1wk": 70,
				"oneDayPriceChange": 0.02,
				"bestBid": 0.59,
				"bestAsk": 0.61,
				"endDate": "2024-11-05T00:00:00Z"
			},
			{"id": "m2", "title": "Fallback title only"}
		]
	}`)

	e := Normalize(rec)

	if e.ID != "123" || e.Slug != "us-election" || e.Title != "US Election" {
		t.Errorf("event metadata = %q/%q/%q", e.ID, e.Slug, e.Title)
	}
	if e.Volume != 250000.5 || e.Volume24hr != 1200 {
		t.Errorf("event volume = %v / %v", e.Volume, e.Volume24hr)
	}
	if len(e.Markets) != 2 {
		t.Fatalf("markets = %d, want 2", len(e.Markets))
	}

	m := e.Markets[0]
	if m.Question != "Will A win?" {
		t.Errorf("question = %q", m.Question)
	}
	if len(m.Outcomes) != 2 || m.Outcomes[0] != "Yes" {
		t.Errorf("outcomes = %v", m.Outcomes)
	}
	if m.Liquidity != 8000 {
		t.Errorf("liquidity = %v", m.Liquidity)
	}
	if m.UmaBond != "500" {
		t.Errorf("umaBond = %q", m.UmaBond)
	}
	if m.PriceChange != 0.02 {
		t.Errorf("priceChange = %v", m.PriceChange)
	}
	if got := m.Tokens(); got["Yes"] != "111" || got["No"] != "222" {
		t.Errorf("tokens = %v", got)
	}
	if got := m.PrimaryPrice(); got != 0.6 {
		t.Errorf("primary price = %v", got)
	}

	// question absent: fall back to title.
	if e.Markets[1].Question != "Fallback title only" {
		t.Errorf("fallback question = %q", e.Markets[1].Question)
	}
}

func TestNormalizeMarketRooted(t *testing.T) {
	rec := mustRecord(t, `{
		"id": "m9",
		"question": "Will it rain?",
		"outcomes": ["Yes", "No"],
		"events": [
			{"id": "e7", "slug": "weather", "title": "Weather Week", "volume": 42}
		]
	}`)

	e := Normalize(rec)

	if e.ID != "e7" || e.Slug != "weather" || e.Title != "Weather Week" {
		t.Errorf("event metadata from events[0] = %q/%q/%q", e.ID, e.Slug, e.Title)
	}
	if e.Volume != 42 {
		t.Errorf("event volume = %v", e.Volume)
	}
	if len(e.Markets) != 1 {
		t.Fatalf("markets = %d, want 1", len(e.Markets))
	}
	if e.Markets[0].ID != "m9" || e.Markets[0].Question != "Will it rain?" {
		t.Errorf("market = %q/%q", e.Markets[0].ID, e.Markets[0].Question)
	}
}

func TestNormalizeMarketRootedNoEvents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"events absent", `{"id": "m1", "question": "Q?"}`},
		{"events empty", `{"id": "m1", "question": "Q?", "events": []}`},
		{"events not a list", `{"id": "m1", "question": "Q?", "events": "oops"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(mustRecord(t, tt.raw))
			// Degraded fallback: the record doubles as the event source.
			if e.ID != "m1" {
				t.Errorf("event id = %q, want m1", e.ID)
			}
			if len(e.Markets) != 1 || e.Markets[0].Question != "Q?" {
				t.Errorf("markets = %+v", e.Markets)
			}
		})
	}
}

func TestNormalizeDefensiveDefaults(t *testing.T) {
	rec := mustRecord(t, `{
		"markets": [{
			"id": null,
			"liquidity": "not-a-number",
			"volume": null,
			"outcomes": "not json",
			"outcomePrices": "{\"a\":1}",
			"clobTokenIds": 7
		}]
	}`)

	e := Normalize(rec)

	if e.Title != "Unknown Event" {
		t.Errorf("title = %q", e.Title)
	}
	if len(e.Markets) != 1 {
		t.Fatalf("markets = %d", len(e.Markets))
	}

	m := e.Markets[0]
	if m.Question != "Unknown Question" {
		t.Errorf("question = %q", m.Question)
	}
	if m.Liquidity != 0 || m.Volume != 0 {
		t.Errorf("numerics = %v / %v, want 0", m.Liquidity, m.Volume)
	}
	if len(m.Outcomes) != 0 || len(m.OutcomePrices) != 0 || len(m.TokenIDs) != 0 {
		t.Errorf("lists = %v / %v / %v, want empty", m.Outcomes, m.OutcomePrices, m.TokenIDs)
	}
	if m.PrimaryPrice() != 0 {
		t.Errorf("primary price = %v, want 0", m.PrimaryPrice())
	}
}

func TestNormalizeTokenPairingMismatch(t *testing.T) {
	rec := mustRecord(t, `{
		"markets": [{
			"outcomes": ["Yes", "No", "Maybe"],
			"clobTokenIds": ["1", "2"]
		}]
	}`)

	e := Normalize(rec)
	if got := e.Markets[0].Tokens(); len(got) != 0 {
		t.Errorf("tokens = %v, want empty map on length mismatch", got)
	}
}

func TestNormalizePriceChangeFallbackKey(t *testing.T) {
	rec := mustRecord(t, `{"markets": [{"priceChange24h": -0.05}]}`)
	if got := rec.Markets[0].PriceChange(); got != -0.05 {
		t.Errorf("priceChange fallback = %v", got)
	}

	e := Normalize(rec)
	if e.Markets[0].PriceChange != -0.05 {
		t.Errorf("normalized priceChange = %v", e.Markets[0].PriceChange)
	}
}

func TestNormalizeEmptyMarketsList(t *testing.T) {
	e := Normalize(mustRecord(t, `{"id": "e1", "title": "T", "markets": []}`))
	if len(e.Markets) != 0 {
		t.Errorf("markets = %d, want 0", len(e.Markets))
	}
	if e.ID != "e1" {
		t.Errorf("id = %q", e.ID)
	}
}
