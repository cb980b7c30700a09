package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceReport is a read-only snapshot computed once from a finished
// equity curve and trade log.
type PerformanceReport struct {
	InitialEquity float64 `yaml:"initial_equity" json:"initial_equity"`
	FinalEquity   float64 `yaml:"final_equity" json:"final_equity"`
	// TotalReturn is final/initial - 1.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// AnnualizedReturn is (1+total)^(periods_per_year/bars) - 1.
	AnnualizedReturn float64 `yaml:"annualized_return" json:"annualized_return"`
	// MaxDrawdown is the largest fractional decline from a running peak.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// AnnualizedVolatility is the population stddev of per-bar returns scaled by sqrt(periods_per_year).
	AnnualizedVolatility float64 `yaml:"annualized_volatility" json:"annualized_volatility"`
	// SharpeRatio is 0 when volatility is 0.
	SharpeRatio  float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	NumberOfBars int     `yaml:"number_of_bars" json:"number_of_bars"`
	// NumberOfTrades counts completed round trips (exit trades).
	NumberOfTrades        int     `yaml:"number_of_trades" json:"number_of_trades"`
	NumberOfWinningTrades int     `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	NumberOfLosingTrades  int     `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	WinRate               float64 `yaml:"win_rate" json:"win_rate"`
	// ProfitFactor is mean winning return over |mean losing return|, 0 when nothing lost.
	ProfitFactor   float64 `yaml:"profit_factor" json:"profit_factor"`
	AverageWinPct  float64 `yaml:"average_win_pct" json:"average_win_pct"`
	AverageLossPct float64 `yaml:"average_loss_pct" json:"average_loss_pct"`
	RealizedPnL    float64 `yaml:"realized_pnl" json:"realized_pnl"`
	TotalFees      float64 `yaml:"total_fees" json:"total_fees"`
	// AverageHoldingBars is the mean bars held across exits.
	AverageHoldingBars float64            `yaml:"average_holding_bars" json:"average_holding_bars"`
	ExitReasons        map[ExitReason]int `yaml:"exit_reasons" json:"exit_reasons"`
	// BuyAndHoldReturn is the return of holding the instrument from the first to the last bar.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`
}

// RunResult describes one finished backtest run.
type RunResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time         `yaml:"timestamp" json:"timestamp"`
	Symbol    string            `yaml:"symbol" json:"symbol"`
	StartTime time.Time         `yaml:"start_time" json:"start_time"`
	EndTime   time.Time         `yaml:"end_time" json:"end_time"`
	Report    PerformanceReport `yaml:"report" json:"report"`
	// LastSignal is the signal of the final bar, used by screening.
	LastSignal SignalType `yaml:"last_signal" json:"last_signal"`
	// TradesFilePath is the path to the trades parquet file.
	TradesFilePath string `yaml:"trades_file_path,omitempty" json:"trades_file_path,omitempty"`
	// EquityFilePath is the path to the equity curve parquet file.
	EquityFilePath string `yaml:"equity_file_path,omitempty" json:"equity_file_path,omitempty"`
	// MarksFilePath is the path to the marks parquet file.
	MarksFilePath string `yaml:"marks_file_path,omitempty" json:"marks_file_path,omitempty"`

	Trades []Trade       `yaml:"-" json:"-"`
	Equity []EquityPoint `yaml:"-" json:"-"`
}

func WriteRunResults(path string, results []RunResult) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal run results to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run results to file: %w", err)
	}

	return nil
}
