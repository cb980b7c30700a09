package types

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type TypesTestSuite struct {
	suite.Suite
}

func TestTypesSuite(t *testing.T) {
	suite.Run(t, new(TypesTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func (suite *TypesTestSuite) TestBarTurnover() {
	bar := Bar{Close: 10, Volume: 1000}
	suite.Equal(10000.0, bar.Turnover())

	bar.Amount = optional.Some(12345.0)
	suite.Equal(12345.0, bar.Turnover())
}

func (suite *TypesTestSuite) TestValidateBars() {
	tests := []struct {
		name    string
		bars    []Bar
		wantErr bool
	}{
		{
			name: "ascending",
			bars: []Bar{{Time: day(0), Close: 1, High: 1, Low: 1}, {Time: day(1), Close: 1, High: 1, Low: 1}},
		},
		{
			name:    "duplicate date",
			bars:    []Bar{{Time: day(0), Close: 1, High: 1, Low: 1}, {Time: day(0), Close: 1, High: 1, Low: 1}},
			wantErr: true,
		},
		{
			name:    "descending",
			bars:    []Bar{{Time: day(1), Close: 1, High: 1, Low: 1}, {Time: day(0), Close: 1, High: 1, Low: 1}},
			wantErr: true,
		},
		{
			name:    "zero close",
			bars:    []Bar{{Time: day(0), Close: 0}},
			wantErr: true,
		},
		{
			name:    "high below low",
			bars:    []Bar{{Time: day(0), Close: 1, High: 1, Low: 2}},
			wantErr: true,
		},
		{
			name:    "nan close",
			bars:    []Bar{{Time: day(0), Close: math.NaN(), High: 1, Low: 1}},
			wantErr: true,
		},
		{
			name:    "infinite high",
			bars:    []Bar{{Time: day(0), Close: 1, High: math.Inf(1), Low: 1}},
			wantErr: true,
		},
		{
			name:    "negative infinite low",
			bars:    []Bar{{Time: day(0), Close: 1, High: 1, Low: math.Inf(-1)}},
			wantErr: true,
		},
		{
			name:    "nan open",
			bars:    []Bar{{Time: day(0), Open: math.NaN(), Close: 1, High: 1, Low: 1}},
			wantErr: true,
		},
		{
			name:    "nan volume",
			bars:    []Bar{{Time: day(0), Close: 1, High: 1, Low: 1, Volume: math.NaN()}},
			wantErr: true,
		},
		{
			name:    "infinite amount",
			bars:    []Bar{{Time: day(0), Close: 1, High: 1, Low: 1, Amount: optional.Some(math.Inf(1))}},
			wantErr: true,
		},
		{
			name: "empty",
			bars: nil,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := ValidateBars(tc.bars)
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidBarSequence))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *TypesTestSuite) TestPositionLifecycle() {
	pos := FlatPosition()
	suite.True(pos.IsFlat())
	suite.Equal(0.0, pos.UnrealizedReturn(10))
	suite.Equal(0, pos.BarsHeld(5))

	long := pos.Open(200, 10, 1, 3, day(3))
	suite.True(long.IsLong())
	suite.True(pos.IsFlat(), "Open must not mutate the receiver")
	suite.Equal(10.0, long.PeakPrice)

	long = long.Observe(12)
	suite.Equal(12.0, long.PeakPrice)

	long = long.Observe(11)
	suite.Equal(12.0, long.PeakPrice, "peak never decreases")

	suite.InDelta(0.1, long.UnrealizedReturn(11), 1e-12)
	suite.InDelta(1-11.0/12.0, long.PullbackFromPeak(11), 1e-12)
	suite.Equal(4, long.BarsHeld(7))
	suite.Equal(2200.0, long.MarketValue(11))

	closed := long.Close()
	suite.True(closed.IsFlat())
	suite.Equal(int64(0), closed.Shares)
}

func (suite *TypesTestSuite) TestExitTrades() {
	trades := []Trade{
		{Action: ActionBuy},
		{Action: ActionSell, ReturnPct: optional.Some(0.05)},
		{Action: ActionBuy},
	}

	exits := ExitTrades(trades)
	suite.Len(exits, 1)
	suite.True(exits[0].IsExit())
	suite.Equal(0.05, exits[0].RealizedReturn())
	suite.Equal(0.0, trades[0].RealizedReturn())
}

func (suite *TypesTestSuite) TestSignalMetConditions() {
	sig := Signal{Conditions: map[string]bool{"volume_confirm": true, "golden_cross": true, "rsi_oversold": false}}
	suite.Equal([]string{"golden_cross", "volume_confirm"}, sig.MetConditions())

	undefined := UndefinedSignal(4, day(4))
	suite.False(undefined.Defined)
	suite.False(undefined.Enter)
	suite.Equal(SignalTypeUndefined, undefined.Type)
	suite.Empty(undefined.MetConditions())
}

func (suite *TypesTestSuite) TestWriteRunResults() {
	path := filepath.Join(suite.T().TempDir(), "stats.yaml")

	results := []RunResult{
		{
			ID:     "run-1",
			Symbol: "600519",
			Report: PerformanceReport{
				InitialEquity:  100000,
				FinalEquity:    110000,
				TotalReturn:    0.1,
				NumberOfTrades: 2,
				WinRate:        0.5,
				ExitReasons:    map[ExitReason]int{ExitReasonStopLoss: 1, ExitReasonSignal: 1},
			},
			Trades: []Trade{{ID: "t1"}},
		},
	}

	suite.Require().NoError(WriteRunResults(path, results))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var decoded []RunResult
	suite.Require().NoError(yaml.Unmarshal(data, &decoded))
	suite.Require().Len(decoded, 1)
	suite.Equal("600519", decoded[0].Symbol)
	suite.Equal(0.1, decoded[0].Report.TotalReturn)
	suite.Equal(1, decoded[0].Report.ExitReasons[ExitReasonStopLoss])
	suite.Empty(decoded[0].Trades, "trades are persisted to parquet, not yaml")
}

func (suite *TypesTestSuite) TestWriteRunResultsInvalidPath() {
	err := WriteRunResults(filepath.Join(suite.T().TempDir(), "missing", "stats.yaml"), nil)
	suite.Error(err)
}
