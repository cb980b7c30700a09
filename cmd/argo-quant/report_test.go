package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/screener"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type ReportTestSuite struct {
	suite.Suite
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (suite *ReportTestSuite) TestRenderReport() {
	result := types.RunResult{
		Symbol:     "600000.SH",
		StartTime:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		LastSignal: types.SignalTypeHold,
		Report: types.PerformanceReport{
			InitialEquity:  100000,
			FinalEquity:    119000,
			TotalReturn:    0.19,
			NumberOfTrades: 1,
			ExitReasons:    map[types.ExitReason]int{types.ExitReasonSignal: 1},
		},
	}

	output := renderReport(result)

	suite.Contains(output, "Backtest 600000.SH")
	suite.Contains(output, "2024-01-02 - 2024-06-28")
	suite.Contains(output, "119000.00")
	suite.Contains(output, "+19.00%")
	suite.Contains(output, "signal 1")
	suite.NotContains(output, "Trades:")
}

func (suite *ReportTestSuite) TestRenderScreen() {
	results := []screener.Result{
		{Symbol: "AAA", Signal: types.SignalTypeHold},
		{Symbol: "BBB", Signal: types.SignalTypeEnter, Report: types.PerformanceReport{TotalReturn: -0.05}},
		{Symbol: "CCC", Err: errors.New("no bars")},
	}

	output := renderScreen(results)

	suite.Contains(output, "Screened 3 symbols, 1 entry signal(s)")
	suite.Contains(output, "-5.00%")
	suite.Contains(output, "no bars")
	suite.Less(strings.Index(output, "BBB"), strings.Index(output, "AAA"))
}

func (suite *ReportTestSuite) TestFormatExitReasons() {
	suite.Equal("-", formatExitReasons(nil))
	suite.Equal("stop_loss 2, signal 1", formatExitReasons(map[types.ExitReason]int{
		types.ExitReasonSignal:   1,
		types.ExitReasonStopLoss: 2,
	}))
}
