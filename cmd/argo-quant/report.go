package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-quant/internal/screener"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		})
}

// renderReport renders the performance report of one run.
func renderReport(result types.RunResult) string {
	report := result.Report

	t := newTable("Metric", "Value")
	t.Rows(
		[]string{"Period", fmt.Sprintf("%s - %s", result.StartTime.Format("2006-01-02"), result.EndTime.Format("2006-01-02"))},
		[]string{"Bars", fmt.Sprintf("%d", report.NumberOfBars)},
		[]string{"Initial equity", fmt.Sprintf("%.2f", report.InitialEquity)},
		[]string{"Final equity", fmt.Sprintf("%.2f", report.FinalEquity)},
		[]string{"Total return", FormatPercent(report.TotalReturn)},
		[]string{"Annualized return", FormatPercent(report.AnnualizedReturn)},
		[]string{"Buy and hold return", FormatPercent(report.BuyAndHoldReturn)},
		[]string{"Max drawdown", fmt.Sprintf("%.2f%%", report.MaxDrawdown*100)},
		[]string{"Annualized volatility", fmt.Sprintf("%.2f%%", report.AnnualizedVolatility*100)},
		[]string{"Sharpe ratio", fmt.Sprintf("%.2f", report.SharpeRatio)},
		[]string{"Trades", fmt.Sprintf("%d (%d won, %d lost)", report.NumberOfTrades, report.NumberOfWinningTrades, report.NumberOfLosingTrades)},
		[]string{"Win rate", fmt.Sprintf("%.2f%%", report.WinRate*100)},
		[]string{"Profit factor", fmt.Sprintf("%.2f", report.ProfitFactor)},
		[]string{"Average win / loss", fmt.Sprintf("%.2f%% / %.2f%%", report.AverageWinPct*100, report.AverageLossPct*100)},
		[]string{"Average holding bars", fmt.Sprintf("%.1f", report.AverageHoldingBars)},
		[]string{"Realized PnL", fmt.Sprintf("%.2f", report.RealizedPnL)},
		[]string{"Total fees", fmt.Sprintf("%.2f", report.TotalFees)},
		[]string{"Exit reasons", formatExitReasons(report.ExitReasons)},
		[]string{"Latest signal", string(result.LastSignal)},
	)

	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Backtest %s", result.Symbol)))
	b.WriteString("\n")
	b.WriteString(t.String())

	if result.TradesFilePath != "" {
		fmt.Fprintf(&b, "\nTrades: %s\nEquity curve: %s\nMarks: %s", result.TradesFilePath, result.EquityFilePath, result.MarksFilePath)
	}

	return b.String()
}

// renderScreen renders one row per screened symbol. Entry signals are listed first.
func renderScreen(results []screener.Result) string {
	rows := make([]screener.Result, len(results))
	copy(rows, results)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IsEntry() && !rows[j].IsEntry()
	})

	t := newTable("Symbol", "Signal", "Return", "Win rate", "Max drawdown", "Trades")

	for _, result := range rows {
		if result.Err != nil {
			t.Row(result.Symbol, LossStyle.Render("error"), result.Err.Error(), "", "", "")

			continue
		}

		t.Row(
			result.Symbol,
			string(result.Signal),
			FormatPercent(result.Report.TotalReturn),
			fmt.Sprintf("%.0f%%", result.Report.WinRate*100),
			fmt.Sprintf("%.2f%%", result.Report.MaxDrawdown*100),
			fmt.Sprintf("%d", result.Report.NumberOfTrades),
		)
	}

	title := TitleStyle.Render(fmt.Sprintf("Screened %d symbols, %d entry signal(s)", len(results), len(screener.Entries(results))))

	return title + "\n" + t.String()
}

func formatExitReasons(reasons map[types.ExitReason]int) string {
	if len(reasons) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(reasons))

	for _, reason := range types.AllExitReasons {
		if n := reasons[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", reason, n))
		}
	}

	return strings.Join(parts, ", ")
}
