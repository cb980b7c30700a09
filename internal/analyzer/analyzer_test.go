package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AnalyzerTestSuite struct {
	suite.Suite
	analyzer *Analyzer
}

func TestAnalyzerSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerTestSuite))
}

func (suite *AnalyzerTestSuite) SetupTest() {
	a, err := NewAnalyzer(DefaultConfig())
	suite.Require().NoError(err)
	suite.analyzer = a
}

func curve(values ...float64) []types.EquityPoint {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]types.EquityPoint, len(values))

	for i, v := range values {
		points[i] = types.EquityPoint{Time: start.AddDate(0, 0, i), Value: v, Cash: v, Price: v / 1000}
	}

	return points
}

func exitTrade(ret float64, pnl float64, reason types.ExitReason, holding int) types.Trade {
	return types.Trade{
		Action:      types.ActionSell,
		ReturnPct:   optional.Some(ret),
		PnL:         pnl,
		Fee:         1,
		ExitReason:  reason,
		HoldingBars: holding,
	}
}

func (suite *AnalyzerTestSuite) TestNewAnalyzer() {
	_, err := NewAnalyzer(Config{PeriodsPerYear: 0})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *AnalyzerTestSuite) TestEmptyEquity() {
	_, err := suite.analyzer.Analyze(nil, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientData))
}

func (suite *AnalyzerTestSuite) TestReturnsAndDrawdown() {
	equity := curve(100000, 110000, 99000, 121000)

	report, err := suite.analyzer.Analyze(equity, nil)
	suite.Require().NoError(err)

	suite.Equal(100000.0, report.InitialEquity)
	suite.Equal(121000.0, report.FinalEquity)
	suite.InDelta(0.21, report.TotalReturn, 1e-12)
	suite.InDelta(math.Pow(1.21, 252.0/4)-1, report.AnnualizedReturn, 1e-6)
	suite.InDelta(0.1, report.MaxDrawdown, 1e-12)
	suite.Equal(4, report.NumberOfBars)
	suite.InDelta(0.21, report.BuyAndHoldReturn, 1e-12)

	// returns are +10%, -10%, +22.2%
	returns := []float64{0.1, -0.1, 121000.0/99000 - 1}
	mean := (returns[0] + returns[1] + returns[2]) / 3
	variance := 0.0

	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}

	vol := math.Sqrt(variance/3) * math.Sqrt(252)
	suite.InDelta(vol, report.AnnualizedVolatility, 1e-9)
	suite.InDelta((report.AnnualizedReturn-0.03)/vol, report.SharpeRatio, 1e-6)
}

func (suite *AnalyzerTestSuite) TestFlatCurveHasZeroSharpe() {
	report, err := suite.analyzer.Analyze(curve(1000, 1000, 1000, 1000), nil)
	suite.Require().NoError(err)

	suite.Equal(0.0, report.TotalReturn)
	suite.Equal(0.0, report.AnnualizedVolatility)
	suite.Equal(0.0, report.SharpeRatio)
	suite.Equal(0.0, report.MaxDrawdown)
	suite.False(math.IsNaN(report.SharpeRatio))
}

func (suite *AnalyzerTestSuite) TestTotalLoss() {
	report, err := suite.analyzer.Analyze(curve(1000, 500, 0), nil)
	suite.Require().NoError(err)

	suite.Equal(-1.0, report.TotalReturn)
	suite.Equal(-1.0, report.AnnualizedReturn)
	suite.Equal(1.0, report.MaxDrawdown)
}

func (suite *AnalyzerTestSuite) TestTradeStatistics() {
	trades := []types.Trade{
		{Action: types.ActionBuy, Fee: 1},
		exitTrade(0.10, 1000, types.ExitReasonSignal, 4),
		{Action: types.ActionBuy, Fee: 1},
		exitTrade(-0.05, -500, types.ExitReasonStopLoss, 2),
		{Action: types.ActionBuy, Fee: 1},
		exitTrade(0.20, 2000, types.ExitReasonTakeProfit, 6),
		{Action: types.ActionBuy, Fee: 1},
		exitTrade(0, -2, types.ExitReasonEndOfData, 0),
	}

	report, err := suite.analyzer.Analyze(curve(1000, 1100), trades)
	suite.Require().NoError(err)

	suite.Equal(4, report.NumberOfTrades)
	suite.Equal(2, report.NumberOfWinningTrades)
	suite.Equal(1, report.NumberOfLosingTrades)
	suite.InDelta(0.5, report.WinRate, 1e-12)
	suite.InDelta(0.15, report.AverageWinPct, 1e-12)
	suite.InDelta(-0.05, report.AverageLossPct, 1e-12)
	suite.InDelta(3.0, report.ProfitFactor, 1e-9)
	suite.InDelta(2498.0, report.RealizedPnL, 1e-9)
	suite.InDelta(8.0, report.TotalFees, 1e-12)
	suite.InDelta(3.0, report.AverageHoldingBars, 1e-12)
	suite.Equal(map[types.ExitReason]int{
		types.ExitReasonSignal:     1,
		types.ExitReasonStopLoss:   1,
		types.ExitReasonTakeProfit: 1,
		types.ExitReasonEndOfData:  1,
	}, report.ExitReasons)
}

func (suite *AnalyzerTestSuite) TestProfitFactorWithoutLosers() {
	trades := []types.Trade{exitTrade(0.1, 100, types.ExitReasonSignal, 3)}

	report, err := suite.analyzer.Analyze(curve(1000, 1100), trades)
	suite.Require().NoError(err)

	suite.Equal(0.0, report.ProfitFactor)
	suite.Equal(1.0, report.WinRate)
}

func (suite *AnalyzerTestSuite) TestNoTrades() {
	report, err := suite.analyzer.Analyze(curve(1000, 1010), nil)
	suite.Require().NoError(err)

	suite.Equal(0, report.NumberOfTrades)
	suite.Equal(0.0, report.WinRate)
	suite.Empty(report.ExitReasons)
}

func (suite *AnalyzerTestSuite) TestIdempotent() {
	equity := curve(100000, 103000, 101000, 99000, 104000, 108000)
	trades := []types.Trade{exitTrade(0.08, 8000, types.ExitReasonSignal, 5)}

	equityCopy := append([]types.EquityPoint(nil), equity...)

	first, err := suite.analyzer.Analyze(equity, trades)
	suite.Require().NoError(err)
	second, err := suite.analyzer.Analyze(equity, trades)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal(math.Float64bits(first.SharpeRatio), math.Float64bits(second.SharpeRatio))
	suite.Equal(equityCopy, equity)
}

func (suite *AnalyzerTestSuite) TestMaxDrawdown() {
	suite.Equal(0.0, MaxDrawdown(curve(1, 2, 3)))
	suite.InDelta(0.5, MaxDrawdown(curve(100, 200, 100, 150, 120)), 1e-12)
	suite.Equal(0.0, MaxDrawdown(nil))
}
