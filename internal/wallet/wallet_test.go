package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// positionPage decodes n synthetic positions starting at the given index.
func positionPage(t *testing.T, start, n int) []polymarket.APIPosition {
	t.Helper()
	raw := make([]json.RawMessage, n)
	for i := range raw {
		raw[i] = json.RawMessage(fmt.Sprintf(
			`{"asset":"token-%d","title":"position %d","size":10,"curPrice":0.5}`,
			start+i, start+i,
		))
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal page: %v", err)
	}
	var page []polymarket.APIPosition
	if err := json.Unmarshal(blob, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func leaderboardEntries(t *testing.T, blob string) []polymarket.APILeaderboardEntry {
	t.Helper()
	var entries []polymarket.APILeaderboardEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	return entries
}

type fakeDataAPI struct {
	pages     [][]polymarket.APIPosition
	pageErr   map[int]error // keyed by call number
	calls     []polymarket.ListPositionsParams
	entries   []polymarket.APILeaderboardEntry
	boardErr  error
	boardCall polymarket.LeaderboardParams
}

func (f *fakeDataAPI) ListPositions(_ context.Context, p polymarket.ListPositionsParams) ([]polymarket.APIPosition, error) {
	call := len(f.calls)
	f.calls = append(f.calls, p)
	if err := f.pageErr[call]; err != nil {
		return nil, err
	}
	if call >= len(f.pages) {
		return nil, nil
	}
	return f.pages[call], nil
}

func (f *fakeDataAPI) Leaderboard(_ context.Context, p polymarket.LeaderboardParams) ([]polymarket.APILeaderboardEntry, error) {
	f.boardCall = p
	if f.boardErr != nil {
		return nil, f.boardErr
	}
	return f.entries, nil
}

func TestHoldingsPaginates(t *testing.T) {
	fake := &fakeDataAPI{pages: [][]polymarket.APIPosition{
		positionPage(t, 0, positionsPageSize),
		positionPage(t, positionsPageSize, 40),
	}}
	svc := NewService(fake, testLogger())

	got, err := svc.Holdings(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	if len(got) != positionsPageSize+40 {
		t.Fatalf("got %d positions, want %d", len(got), positionsPageSize+40)
	}
	if got[0].Asset != "token-0" || got[len(got)-1].Asset != fmt.Sprintf("token-%d", positionsPageSize+39) {
		t.Errorf("positions out of order: first=%q last=%q", got[0].Asset, got[len(got)-1].Asset)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("made %d calls, want 2", len(fake.calls))
	}
	if fake.calls[1].Offset != positionsPageSize {
		t.Errorf("second offset = %d, want %d", fake.calls[1].Offset, positionsPageSize)
	}
	first := fake.calls[0]
	if first.User != "0xabc" || first.SortBy != "TOKENS" || first.SortDirection != "DESC" || first.Limit != positionsPageSize {
		t.Errorf("unexpected request params: %+v", first)
	}
}

func TestHoldingsStopsOnShortPage(t *testing.T) {
	fake := &fakeDataAPI{pages: [][]polymarket.APIPosition{positionPage(t, 0, 3)}}
	svc := NewService(fake, testLogger())

	got, err := svc.Holdings(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("holdings: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d positions, want 3", len(got))
	}
	if len(fake.calls) != 1 {
		t.Errorf("made %d calls, want 1", len(fake.calls))
	}
}

func TestHoldingsPartialOnFailure(t *testing.T) {
	fake := &fakeDataAPI{
		pages:   [][]polymarket.APIPosition{positionPage(t, 0, positionsPageSize)},
		pageErr: map[int]error{1: domain.ErrBadGateway},
	}
	svc := NewService(fake, testLogger())

	got, err := svc.Holdings(context.Background(), "0xabc")
	if !errors.Is(err, domain.ErrBadGateway) {
		t.Fatalf("err = %v, want ErrBadGateway", err)
	}
	if len(got) != positionsPageSize {
		t.Errorf("got %d positions alongside the error, want the first page", len(got))
	}
}

func TestAnalyticsMatchesEntry(t *testing.T) {
	entries := leaderboardEntries(t, `[
		{"user":"0xother","pnl":1,"vol":2,"rank":1,"userName":"other"},
		{"walletAddress":"0xABC","pnl":123.5,"vol":9000,"rank":"7","userName":"whale"}
	]`)
	svc := NewService(&fakeDataAPI{entries: entries}, testLogger())

	got, err := svc.Analytics(context.Background(), "0xabc", "WEEK")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	want := domain.WalletAnalytics{TimePeriod: "WEEK", Pnl: 123.5, Volume: 9000, Rank: 7, Username: "whale"}
	if got != want {
		t.Errorf("analytics = %+v, want %+v", got, want)
	}
}

func TestAnalyticsSingleEntryFallback(t *testing.T) {
	// Some leaderboard rows elide both address fields; a user-filtered
	// query returning one row is still that user.
	entries := leaderboardEntries(t, `[{"pnl":5,"vol":10,"rank":3,"userName":"solo"}]`)
	svc := NewService(&fakeDataAPI{entries: entries}, testLogger())

	got, err := svc.Analytics(context.Background(), "0xabc", "ALL")
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if got.Username != "solo" || got.Rank != 3 {
		t.Errorf("analytics = %+v", got)
	}
}

func TestAnalyticsNotFound(t *testing.T) {
	entries := leaderboardEntries(t, `[
		{"user":"0xone","userName":"one"},
		{"user":"0xtwo","userName":"two"}
	]`)
	svc := NewService(&fakeDataAPI{entries: entries}, testLogger())

	_, err := svc.Analytics(context.Background(), "0xmissing", "DAY")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAnalyticsRequestShape(t *testing.T) {
	fake := &fakeDataAPI{entries: leaderboardEntries(t, `[{"user":"0xabc"}]`)}
	svc := NewService(fake, testLogger())

	if _, err := svc.Analytics(context.Background(), "0xabc", "MONTH"); err != nil {
		t.Fatalf("analytics: %v", err)
	}
	p := fake.boardCall
	if p.Category != "OVERALL" || p.TimePeriod != "MONTH" || p.OrderBy != "PNL" || p.Limit != 25 || p.User != "0xabc" {
		t.Errorf("leaderboard params = %+v", p)
	}
}
