// Package wallet reads account-level data for a proxy wallet: open
// holdings and leaderboard analytics.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

// positionsPageSize is the page size used when walking the positions
// endpoint.
const positionsPageSize = 500

// DataAPI is the slice of the data API client the wallet consumes.
type DataAPI interface {
	ListPositions(ctx context.Context, p polymarket.ListPositionsParams) ([]polymarket.APIPosition, error)
	Leaderboard(ctx context.Context, p polymarket.LeaderboardParams) ([]polymarket.APILeaderboardEntry, error)
}

// Service exposes wallet reads over the data API.
type Service struct {
	data   DataAPI
	logger *slog.Logger
}

// NewService creates a wallet Service.
func NewService(data DataAPI, logger *slog.Logger) *Service {
	return &Service{
		data:   data,
		logger: logger,
	}
}

// Holdings pages through every open position for the wallet, largest
// token balance first. Like the catalog fetcher, a mid-pagination failure
// returns the positions accumulated so far together with the error.
func (s *Service) Holdings(ctx context.Context, user string) ([]domain.Position, error) {
	var all []domain.Position
	offset := 0

	for {
		batch, err := s.data.ListPositions(ctx, polymarket.ListPositionsParams{
			User:          user,
			SizeThreshold: 1,
			SortBy:        "TOKENS",
			SortDirection: "DESC",
			Limit:         positionsPageSize,
			Offset:        offset,
		})
		if err != nil {
			s.logger.Warn("holdings fetch aborted, returning partial results",
				slog.String("user", user),
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
			return all, fmt.Errorf("wallet: holdings at offset %d: %w", offset, err)
		}

		for i := range batch {
			all = append(all, batch[i].ToDomainPosition())
		}

		if len(batch) < positionsPageSize {
			break
		}
		offset += positionsPageSize
	}

	s.logger.Info("holdings fetched",
		slog.String("user", user),
		slog.Int("count", len(all)),
	)

	return all, nil
}

// Analytics returns leaderboard performance for the wallet over the given
// time period (DAY, WEEK, MONTH or ALL). It returns domain.ErrNotFound
// when the wallet does not appear on the leaderboard for that period.
func (s *Service) Analytics(ctx context.Context, user, period string) (domain.WalletAnalytics, error) {
	entries, err := s.data.Leaderboard(ctx, polymarket.LeaderboardParams{
		Category:   "OVERALL",
		TimePeriod: period,
		OrderBy:    "PNL",
		Limit:      25,
		User:       user,
	})
	if err != nil {
		return domain.WalletAnalytics{}, fmt.Errorf("wallet: analytics for %s: %w", user, err)
	}

	var entry *polymarket.APILeaderboardEntry
	for i := range entries {
		if strings.EqualFold(string(entries[i].User), user) ||
			strings.EqualFold(string(entries[i].WalletAddress), user) {
			entry = &entries[i]
			break
		}
	}
	// A user-filtered query that returns a single row is that user even
	// when the address fields are elided.
	if entry == nil && len(entries) == 1 {
		entry = &entries[0]
	}
	if entry == nil {
		return domain.WalletAnalytics{}, fmt.Errorf("wallet: analytics for %s: %w", user, domain.ErrNotFound)
	}

	return domain.WalletAnalytics{
		TimePeriod: period,
		Pnl:        float64(entry.Pnl),
		Volume:     float64(entry.Vol),
		Rank:       int(entry.Rank),
		Username:   string(entry.UserName),
	}, nil
}
