package analyzer

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Config holds the annualization inputs of the report.
type Config struct {
	RiskFreeRate   float64 `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk free rate subtracted in the Sharpe ratio,default=0.03" validate:"gte=0,lt=1"`
	PeriodsPerYear int     `yaml:"periods_per_year" json:"periods_per_year" jsonschema:"title=Periods Per Year,description=Bars per year used to annualize,minimum=1,default=252" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		RiskFreeRate:   0.03,
		PeriodsPerYear: 252,
	}
}

// Analyzer computes a PerformanceReport from a finished run. It keeps no state
// between calls and never modifies its inputs.
type Analyzer struct {
	config Config
}

func NewAnalyzer(config Config) (*Analyzer, error) {
	if config.PeriodsPerYear <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "periods_per_year must be a positive integer, got %d", config.PeriodsPerYear)
	}

	return &Analyzer{config: config}, nil
}

// Analyze builds the report. The first equity point is the initial equity.
func (a *Analyzer) Analyze(equity []types.EquityPoint, trades []types.Trade) (types.PerformanceReport, error) {
	if len(equity) == 0 {
		return types.PerformanceReport{}, errors.New(errors.ErrCodeInsufficientData, "cannot analyze an empty equity curve")
	}

	initial := equity[0].Value
	final := equity[len(equity)-1].Value

	if initial <= 0 {
		return types.PerformanceReport{}, errors.Newf(errors.ErrCodeInvalidParameter, "initial equity must be positive, got %f", initial)
	}

	report := types.PerformanceReport{
		InitialEquity: initial,
		FinalEquity:   final,
		TotalReturn:   final/initial - 1,
		NumberOfBars:  len(equity),
		ExitReasons:   map[types.ExitReason]int{},
	}

	report.AnnualizedReturn = annualize(report.TotalReturn, a.config.PeriodsPerYear, len(equity))
	report.MaxDrawdown = MaxDrawdown(equity)
	report.AnnualizedVolatility = stdDev(barReturns(equity)) * math.Sqrt(float64(a.config.PeriodsPerYear))

	if report.AnnualizedVolatility > 0 {
		report.SharpeRatio = (report.AnnualizedReturn - a.config.RiskFreeRate) / report.AnnualizedVolatility
	}

	if first, last := equity[0].Price, equity[len(equity)-1].Price; first > 0 {
		report.BuyAndHoldReturn = last/first - 1
	}

	fillTradeStats(&report, trades)

	return report, nil
}

func fillTradeStats(report *types.PerformanceReport, trades []types.Trade) {
	var winSum, lossSum, holding float64

	for _, trade := range trades {
		report.TotalFees += trade.Fee

		if !trade.IsExit() {
			continue
		}

		report.NumberOfTrades++
		report.RealizedPnL += trade.PnL
		report.ExitReasons[trade.ExitReason]++
		holding += float64(trade.HoldingBars)

		r := trade.RealizedReturn()

		switch {
		case r > 0:
			report.NumberOfWinningTrades++
			winSum += r
		case r < 0:
			report.NumberOfLosingTrades++
			lossSum += r
		}
	}

	if report.NumberOfTrades == 0 {
		return
	}

	report.WinRate = float64(report.NumberOfWinningTrades) / float64(report.NumberOfTrades)
	report.AverageHoldingBars = holding / float64(report.NumberOfTrades)

	if report.NumberOfWinningTrades > 0 {
		report.AverageWinPct = winSum / float64(report.NumberOfWinningTrades)
	}

	if report.NumberOfLosingTrades > 0 {
		report.AverageLossPct = lossSum / float64(report.NumberOfLosingTrades)
		report.ProfitFactor = report.AverageWinPct / math.Abs(report.AverageLossPct)
	}
}

// annualize compounds total over periodsPerYear/bars. A total loss stays -1.
func annualize(total float64, periodsPerYear int, bars int) float64 {
	if bars == 0 || 1+total <= 0 {
		return -1
	}

	return math.Pow(1+total, float64(periodsPerYear)/float64(bars)) - 1
}

// MaxDrawdown is the largest fractional decline from a running peak.
func MaxDrawdown(equity []types.EquityPoint) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0

	for _, point := range equity {
		if point.Value > peak {
			peak = point.Value
		}

		if peak > 0 {
			if dd := (peak - point.Value) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}

func barReturns(equity []types.EquityPoint) []float64 {
	returns := make([]float64, 0, len(equity))

	for i := 1; i < len(equity); i++ {
		if prev := equity[i-1].Value; prev > 0 {
			returns = append(returns, equity[i].Value/prev-1)
		}
	}

	return returns
}

// stdDev is the population standard deviation, 0 for fewer than two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}

	return math.Sqrt(variance / float64(len(values)))
}
