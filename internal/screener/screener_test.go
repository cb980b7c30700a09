package screener

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/mocks"
	argoerrors "github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type ScreenerTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	source *datasource.InMemoryDataSource
}

func TestScreenerSuite(t *testing.T) {
	suite.Run(t, new(ScreenerTestSuite))
}

func (suite *ScreenerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.source = datasource.NewInMemoryDataSource()

	flat := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	// golden cross of MA3 over MA5 on the last bar
	suite.Require().NoError(suite.source.Add("AAA", mocks.FromCloses("AAA", start, append(flat, 10.5), 1000)))
	suite.Require().NoError(suite.source.Add("BBB", mocks.FromCloses("BBB", start, append(flat, 9.5), 1000)))
	suite.Require().NoError(suite.source.Add("CCC", mocks.FromCloses("CCC", start, []float64{10, 10, 10}, 1000)))
}

func (suite *ScreenerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ScreenerTestSuite) factory() EngineFactory {
	return func() (engine.Engine, error) {
		backtest := engine_v1.NewBacktestEngineV1()
		backtest.SetLogger(logger.NewNopLogger())

		if err := backtest.(*engine_v1.BacktestEngineV1).InitializeWithConfig(engine_v1.TestConfig()); err != nil {
			return nil, err
		}

		if err := backtest.SetDataSource(suite.source); err != nil {
			return nil, err
		}

		return backtest, nil
	}
}

func (suite *ScreenerTestSuite) TestNewScreenerValidation() {
	_, err := NewScreener(nil, 1, nil)
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidParameter))

	_, err = NewScreener(suite.factory(), -1, nil)
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidParameter))

	screener, err := NewScreener(suite.factory(), 0, nil)
	suite.Require().NoError(err)
	suite.Equal(DefaultConcurrency, screener.concurrency)
}

func (suite *ScreenerTestSuite) TestScreen() {
	screener, err := NewScreener(suite.factory(), 2, logger.NewNopLogger())
	suite.Require().NoError(err)

	screener.now = func() time.Time { return time.Date(2024, 1, 12, 15, 0, 0, 0, time.UTC) }

	var message string

	notifier := mocks.NewMockNotifier(suite.ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg string) error {
		message = msg

		return nil
	}).Times(1)
	screener.SetNotifier(notifier)

	results, err := screener.Screen(context.Background(), []string{"CCC", "BBB", "AAA", "AAA"}, nil)
	suite.Require().NoError(err)

	suite.Require().Len(results, 3)
	suite.Equal("AAA", results[0].Symbol)
	suite.Equal("BBB", results[1].Symbol)
	suite.Equal("CCC", results[2].Symbol)

	suite.NoError(results[0].Err)
	suite.Equal(types.SignalTypeEnter, results[0].Signal)
	suite.True(results[0].IsEntry())

	suite.NoError(results[1].Err)
	suite.False(results[1].IsEntry())

	suite.Error(results[2].Err)
	suite.True(argoerrors.IsInsufficientDataError(results[2].Err))
	suite.False(results[2].IsEntry())

	suite.True(strings.HasPrefix(message, "Entry signals 2024-01-12 15:00:00"))
	suite.Contains(message, "AAA")
	suite.NotContains(message, "BBB")
	suite.NotContains(message, "CCC")
}

func (suite *ScreenerTestSuite) TestNoNotificationWithoutEntries() {
	screener, err := NewScreener(suite.factory(), 2, nil)
	suite.Require().NoError(err)

	notifier := mocks.NewMockNotifier(suite.ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
	screener.SetNotifier(notifier)

	results, err := screener.Screen(context.Background(), []string{"BBB", "MISSING"}, nil)
	suite.Require().NoError(err)

	suite.Empty(Entries(results))
	suite.True(argoerrors.HasCode(results[1].Err, argoerrors.ErrCodeFetchBarsFailed))
}

func (suite *ScreenerTestSuite) TestFactoryFailureIsRecorded() {
	boom := errors.New("boom")
	screener, err := NewScreener(func() (engine.Engine, error) { return nil, boom }, 1, nil)
	suite.Require().NoError(err)

	results, err := screener.Screen(context.Background(), []string{"AAA"}, nil)
	suite.Require().NoError(err)

	suite.Require().Len(results, 1)
	suite.ErrorIs(results[0].Err, boom)
}

func (suite *ScreenerTestSuite) TestOnResultCalledPerSymbol() {
	screener, err := NewScreener(suite.factory(), 3, nil)
	suite.Require().NoError(err)

	var seen []string
	onResult := OnResultCallback(func(result Result) {
		seen = append(seen, result.Symbol)
	})

	_, err = screener.Screen(context.Background(), []string{"AAA", "BBB", "CCC"}, &onResult)
	suite.Require().NoError(err)

	suite.ElementsMatch([]string{"AAA", "BBB", "CCC"}, seen)
}

func (suite *ScreenerTestSuite) TestConcurrencyIsBounded() {
	var running, peak atomic.Int32

	factory := func() (engine.Engine, error) {
		backtest := mocks.NewMockEngine(suite.ctrl)
		backtest.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, symbol string, _ engine.LifecycleCallbacks) (types.RunResult, error) {
				current := running.Add(1)
				defer running.Add(-1)

				for {
					old := peak.Load()
					if current <= old || peak.CompareAndSwap(old, current) {
						break
					}
				}

				time.Sleep(10 * time.Millisecond)

				return types.RunResult{Symbol: symbol, LastSignal: types.SignalTypeHold}, nil
			})

		return backtest, nil
	}

	screener, err := NewScreener(factory, 2, nil)
	suite.Require().NoError(err)

	results, err := screener.Screen(context.Background(), []string{"A", "B", "C", "D", "E", "F"}, nil)
	suite.Require().NoError(err)

	suite.Len(results, 6)
	suite.LessOrEqual(peak.Load(), int32(2))
}

func (suite *ScreenerTestSuite) TestCancelledContext() {
	screener, err := NewScreener(suite.factory(), 1, nil)
	suite.Require().NoError(err)

	notifier := mocks.NewMockNotifier(suite.ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
	screener.SetNotifier(notifier)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := screener.Screen(ctx, []string{"AAA", "BBB"}, nil)

	suite.ErrorIs(err, context.Canceled)
	suite.Len(results, 2)
}
