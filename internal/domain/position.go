package domain

// Position is an open holding in a market as reported by the data API.
type Position struct {
	Asset        string
	ConditionID  string
	Title        string
	Outcome      string
	Size         float64
	AvgPrice     float64
	CurPrice     float64
	InitialValue float64
	CurrentValue float64
	CashPnl      float64
	PercentPnl   float64
	Redeemable   bool
}

// WalletAnalytics summarizes leaderboard performance for one wallet over
// a time period.
type WalletAnalytics struct {
	TimePeriod string // DAY, WEEK, MONTH or ALL
	Pnl        float64
	Volume     float64
	Rank       int
	Username   string
}
