package domain

import "strconv"

// Market represents a single tradable contract inside an Event. All fields
// are populated once during normalization and never mutated afterwards.
//
// Outcomes and TokenIDs are parallel lists: outcome i trades as token i.
// When the API delivers lists of different lengths the pairing is treated
// as unavailable (see Tokens).
type Market struct {
	ID            string
	ConditionID   string
	Question      string
	Outcomes      []string
	TokenIDs      []string // ERC-1155 token IDs (76-digit strings)
	OutcomePrices []string
	UmaBond       string
	Liquidity     float64
	Volume        float64
	Volume24hr    float64
	Volume1wk     float64
	PriceChange   float64
	BestBid       float64
	BestAsk       float64
	EndDate       string // ISO-8601 as delivered; not validated here
}

// Tokens returns the outcome-label to token-ID pairing. The map is only
// meaningful when Outcomes and TokenIDs have equal length; otherwise an
// empty map is returned.
func (m *Market) Tokens() map[string]string {
	if len(m.Outcomes) != len(m.TokenIDs) {
		return map[string]string{}
	}
	tokens := make(map[string]string, len(m.Outcomes))
	for i, outcome := range m.Outcomes {
		tokens[outcome] = m.TokenIDs[i]
	}
	return tokens
}

// PrimaryPrice returns the first outcome price parsed as a float, or 0.0
// when the list is empty or the entry does not parse.
func (m *Market) PrimaryPrice() float64 {
	if len(m.OutcomePrices) == 0 {
		return 0.0
	}
	p, err := strconv.ParseFloat(m.OutcomePrices[0], 64)
	if err != nil {
		return 0.0
	}
	return p
}

// Event is a top-level topic grouping one or more Markets. Markets are
// owned exclusively by their Event; an Event with zero markets is valid
// but carries no liquidity or expiry signal.
type Event struct {
	ID          string
	Slug        string
	Title       string
	Description string
	CreatedAt   string
	Volume      float64
	Volume24hr  float64
	Markets     []Market
}

// MaxMarketLiquidity returns the highest liquidity across the event's
// markets, or 0 when the event has none.
func (e *Event) MaxMarketLiquidity() float64 {
	var maxLiq float64
	for i := range e.Markets {
		if e.Markets[i].Liquidity > maxLiq {
			maxLiq = e.Markets[i].Liquidity
		}
	}
	return maxLiq
}
