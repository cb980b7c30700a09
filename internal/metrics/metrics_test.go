package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	metrics  *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.registry = prometheus.NewRegistry()

	var err error

	suite.metrics, err = NewMetrics(suite.registry)
	suite.Require().NoError(err)
}

func (suite *MetricsTestSuite) TestObserveRun() {
	suite.metrics.ObserveRun(RunStatusSuccess, 2*time.Second)
	suite.metrics.ObserveRun(RunStatusSuccess, time.Second)
	suite.metrics.ObserveRun(RunStatusFailed, time.Second)

	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.RunsTotal.WithLabelValues(RunStatusSuccess)))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RunsTotal.WithLabelValues(RunStatusFailed)))
	suite.Equal(1, testutil.CollectAndCount(suite.metrics.RunDuration))
}

func (suite *MetricsTestSuite) TestAddBars() {
	suite.metrics.AddBars(30)
	suite.metrics.AddBars(0)
	suite.metrics.AddBars(-5)

	suite.Equal(30.0, testutil.ToFloat64(suite.metrics.BarsProcessed))
}

func (suite *MetricsTestSuite) TestObserveTrade() {
	suite.metrics.ObserveTrade(types.Trade{Action: types.ActionBuy})
	suite.metrics.ObserveTrade(types.Trade{Action: types.ActionSell, ExitReason: types.ExitReasonStopLoss})

	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.TradesTotal.WithLabelValues("buy", "entry")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.TradesTotal.WithLabelValues("sell", "stop_loss")))
}

func (suite *MetricsTestSuite) TestDuplicateRegistration() {
	_, err := NewMetrics(suite.registry)
	suite.Error(err)
}

func (suite *MetricsTestSuite) TestNilMetricsIsNoop() {
	var m *Metrics

	suite.NotPanics(func() {
		m.ObserveRun(RunStatusSuccess, time.Second)
		m.AddBars(10)
		m.ObserveTrade(types.Trade{Action: types.ActionBuy})
	})
}
