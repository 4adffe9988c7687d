// Package display renders domain entities as terminal tables. It is
// formatting only; nothing here transforms data.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/alanyoungcy/polyterm/internal/domain"
)

func newTable(w io.Writer, alignments []tw.Align) *tablewriter.Table {
	tableConfig := tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
		},
	})
	return tablewriter.NewTable(w, tableConfig, tablewriter.WithAlignment(alignments))
}

func formatMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// Events renders the event overview table.
func Events(w io.Writer, events []domain.Event) {
	header := []string{"#", "Title", "Volume", "Vol 24h", "Markets"}

	rows := make([][]string, 0, len(events))
	for i := range events {
		e := &events[i]
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Title,
			formatMoney(e.Volume),
			formatMoney(e.Volume24hr),
			strconv.Itoa(len(e.Markets)),
		})
	}

	alignments := []tw.Align{
		tw.AlignRight,
		tw.AlignDefault,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
	}

	table := newTable(w, alignments)
	table.Header(header)
	table.Bulk(rows)
	table.Render()
}

// Markets renders the market detail table for one event.
func Markets(w io.Writer, e *domain.Event) {
	fmt.Fprintln(w, e.Title)

	header := []string{"Question", "Price", "Liquidity", "Best Bid", "Best Ask", "Ends"}

	rows := make([][]string, 0, len(e.Markets))
	for i := range e.Markets {
		m := &e.Markets[i]
		rows = append(rows, []string{
			m.Question,
			fmt.Sprintf("%.3f", m.PrimaryPrice()),
			formatMoney(m.Liquidity),
			fmt.Sprintf("%.3f", m.BestBid),
			fmt.Sprintf("%.3f", m.BestAsk),
			m.EndDate,
		})
	}

	alignments := []tw.Align{
		tw.AlignDefault,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignDefault,
	}

	table := newTable(w, alignments)
	table.Header(header)
	table.Bulk(rows)
	table.Render()
}

// Holdings renders the open positions table, coloring PnL by sign.
func Holdings(w io.Writer, positions []domain.Position) {
	green := color.New(color.FgGreen).SprintfFunc()
	red := color.New(color.FgRed).SprintfFunc()

	header := []string{"Title", "Outcome", "Size", "Avg", "Cur", "Value", "PnL"}

	rows := make([][]string, 0, len(positions))
	for i := range positions {
		p := &positions[i]
		pnl := fmt.Sprintf("%+.2f (%+.1f%%)", p.CashPnl, p.PercentPnl)
		if p.CashPnl >= 0 {
			pnl = green("%s", pnl)
		} else {
			pnl = red("%s", pnl)
		}
		rows = append(rows, []string{
			p.Title,
			p.Outcome,
			fmt.Sprintf("%.1f", p.Size),
			fmt.Sprintf("%.3f", p.AvgPrice),
			fmt.Sprintf("%.3f", p.CurPrice),
			formatMoney(p.CurrentValue),
			pnl,
		})
	}

	alignments := []tw.Align{
		tw.AlignDefault,
		tw.AlignDefault,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
		tw.AlignRight,
	}

	table := newTable(w, alignments)
	table.Header(header)
	table.Bulk(rows)
	table.Render()
}

// Analytics renders the wallet performance summary.
func Analytics(w io.Writer, a domain.WalletAnalytics) {
	if a.Username != "" {
		fmt.Fprintf(w, "User:   %s\n", a.Username)
	}
	fmt.Fprintf(w, "Period: %s\n", a.TimePeriod)
	fmt.Fprintf(w, "Volume: %s\n", formatMoney(a.Volume))
	if a.Rank > 0 {
		fmt.Fprintf(w, "Rank:   #%d\n", a.Rank)
	}

	pnl := fmt.Sprintf("%+.2f", a.Pnl)
	if a.Pnl >= 0 {
		color.New(color.FgGreen).Fprintf(w, "PnL:    %s\n", pnl)
	} else {
		color.New(color.FgRed).Fprintf(w, "PnL:    %s\n", pnl)
	}
}
