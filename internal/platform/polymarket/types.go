package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alanyoungcy/polyterm/internal/domain"
)

// The Gamma API is loose about types: identifiers arrive as strings or
// numbers, booleans as bools or "true"/"false" strings, and list fields
// either as native JSON arrays or as JSON-encoded strings. The flex*
// decoders below absorb all of that so that unmarshalling a catalog
// record never fails; bad data degrades to zero values instead.

// flexBool unmarshals from JSON bool or string ("true"/"false").
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = false
		return nil
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// flexString unmarshals from JSON string, number, or bool, coercing to
// string form. null and undecodable values become "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	*f = ""
	return nil
}

// flexFloat unmarshals from a JSON number or a numeric string. null,
// missing, and unparseable values all decode to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, perr := strconv.ParseFloat(s, 64); perr == nil {
			*f = flexFloat(v)
			return nil
		}
	}
	*f = 0
	return nil
}

// flexStringList unmarshals a list of strings that the API delivers either
// as a native JSON array or as a JSON-encoded string, e.g.
// "[\"Yes\",\"No\"]". Any decode failure yields an empty list.
type flexStringList []string

func (f *flexStringList) UnmarshalJSON(data []byte) error {
	if items, ok := decodeStringSlice(data); ok {
		*f = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if items, ok := decodeStringSlice([]byte(s)); ok {
			*f = items
			return nil
		}
	}
	*f = nil
	return nil
}

// decodeStringSlice decodes a JSON array whose elements are strings or
// numbers, coercing each to string form. Non-scalar elements keep their
// position as "".
func decodeStringSlice(data []byte) ([]string, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	items := make([]string, len(raw))
	for i, elem := range raw {
		var fs flexString
		_ = fs.UnmarshalJSON(elem)
		items[i] = string(fs)
	}
	return items, true
}

// rawRecordList unmarshals a JSON array of catalog records. A non-array
// value (including null) decodes to nil, which is how RawRecord
// distinguishes an event-rooted record from a market-rooted one.
type rawRecordList []RawRecord

func (l *rawRecordList) UnmarshalJSON(data []byte) error {
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		// Non-array, or JSON null: not a list either way.
		*l = nil
		return nil
	}
	*l = records
	return nil
}

// RawRecord is one catalog record of unknown shape. The Gamma API returns
// two structurally different shapes:
//
//   - event-rooted: the record is the event and carries a "markets" array
//   - market-rooted: the record is a single market and nests its parent
//     event metadata under an "events" array
//
// RawRecord is recursive and covers both: event-level and market-level
// fields sit side by side and shape classification happens later, in the
// normalizer.
type RawRecord struct {
	// Event-level fields (also read as fallback market metadata).
	ID          flexString `json:"id"`
	Slug        flexString `json:"slug"`
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	CreatedAt   flexString `json:"createdAt"`
	Closed      flexBool   `json:"closed"`
	Volume      flexFloat  `json:"volume"`
	Volume24hr  flexFloat  `json:"volume24hr"`

	// Market-level fields.
	Question          flexString     `json:"question"`
	ConditionID       flexString     `json:"conditionId"`
	ClobTokenIDs      flexStringList `json:"clobTokenIds"`
	Outcomes          flexStringList `json:"outcomes"`
	OutcomePrices     flexStringList `json:"outcomePrices"`
	UmaBond           flexString     `json:"umaBond"`
	Liquidity         flexFloat      `json:"liquidity"`
	Volume1wk         flexFloat      `json:"volume1wk"`
	OneDayPriceChange *flexFloat     `json:"oneDayPriceChange"`
	PriceChange24h    *flexFloat     `json:"priceChange24h"`
	BestBid           flexFloat      `json:"bestBid"`
	BestAsk           flexFloat      `json:"bestAsk"`
	EndDate           flexString     `json:"endDate"`

	// Nested records; nil when absent or not an array.
	Markets rawRecordList `json:"markets"`
	Events  rawRecordList `json:"events"`
}

// HasMarketsList reports whether the record carries a list-valued
// "markets" field, i.e. whether it is event-rooted.
func (r *RawRecord) HasMarketsList() bool {
	return r.Markets != nil
}

// FirstEvent returns the first nested event record and true when the
// record carries a non-empty "events" list (market-rooted shape).
func (r *RawRecord) FirstEvent() (RawRecord, bool) {
	if len(r.Events) == 0 {
		return RawRecord{}, false
	}
	return r.Events[0], true
}

// PriceChange returns the 24h price change, read from the
// oneDayPriceChange key with priceChange24h as the fallback.
func (r *RawRecord) PriceChange() float64 {
	if r.OneDayPriceChange != nil {
		return float64(*r.OneDayPriceChange)
	}
	if r.PriceChange24h != nil {
		return float64(*r.PriceChange24h)
	}
	return 0.0
}

// SearchResponse is the envelope returned by the public-search endpoint.
type SearchResponse struct {
	Events []RawRecord `json:"events"`
}

// --------------------------------------------------------------------------
// Data API DTOs
// --------------------------------------------------------------------------

// APIPosition is one holding as returned by the data API positions
// endpoint.
type APIPosition struct {
	Asset        flexString `json:"asset"`
	ConditionID  flexString `json:"conditionId"`
	Title        flexString `json:"title"`
	Outcome      flexString `json:"outcome"`
	Size         flexFloat  `json:"size"`
	AvgPrice     flexFloat  `json:"avgPrice"`
	CurPrice     flexFloat  `json:"curPrice"`
	InitialValue flexFloat  `json:"initialValue"`
	CurrentValue flexFloat  `json:"currentValue"`
	CashPnl      flexFloat  `json:"cashPnl"`
	PercentPnl   flexFloat  `json:"percentPnl"`
	Redeemable   flexBool   `json:"redeemable"`
}

// ToDomainPosition converts an APIPosition to a domain.Position.
func (p *APIPosition) ToDomainPosition() domain.Position {
	return domain.Position{
		Asset:        string(p.Asset),
		ConditionID:  string(p.ConditionID),
		Title:        string(p.Title),
		Outcome:      string(p.Outcome),
		Size:         float64(p.Size),
		AvgPrice:     float64(p.AvgPrice),
		CurPrice:     float64(p.CurPrice),
		InitialValue: float64(p.InitialValue),
		CurrentValue: float64(p.CurrentValue),
		CashPnl:      float64(p.CashPnl),
		PercentPnl:   float64(p.PercentPnl),
		Redeemable:   bool(p.Redeemable),
	}
}

// APILeaderboardEntry is one row of the data API leaderboard response.
type APILeaderboardEntry struct {
	User          flexString `json:"user"`
	WalletAddress flexString `json:"walletAddress"`
	UserName      flexString `json:"userName"`
	Pnl           flexFloat  `json:"pnl"`
	Vol           flexFloat  `json:"vol"`
	Rank          flexFloat  `json:"rank"`
}
