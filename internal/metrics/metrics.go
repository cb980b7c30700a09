package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"go.uber.org/zap"
)

const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Metrics holds the Prometheus collectors updated by backtest runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec // labels: status
	BarsProcessed prometheus.Counter
	TradesTotal   *prometheus.CounterVec // labels: action, reason
	RunDuration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_quant_runs_total",
			Help: "Total backtest runs by outcome",
		}, []string{"status"}),
		BarsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_quant_bars_processed_total",
			Help: "Total bars scanned by backtest runs",
		}),
		TradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_quant_trades_total",
			Help: "Total trades recorded by the ledger",
		}, []string{"action", "reason"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_quant_run_duration_seconds",
			Help:    "Wall clock duration of a backtest run",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.RunsTotal, m.BarsProcessed, m.TradesTotal, m.RunDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRun records the outcome and duration of a finished run.
func (m *Metrics) ObserveRun(status string, duration time.Duration) {
	if m == nil {
		return
	}

	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(duration.Seconds())
}

func (m *Metrics) AddBars(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.BarsProcessed.Add(float64(n))
}

func (m *Metrics) ObserveTrade(trade types.Trade) {
	if m == nil {
		return
	}

	reason := string(trade.ExitReason)
	if reason == "" {
		reason = "entry"
	}

	m.TradesTotal.WithLabelValues(string(trade.Action), reason).Inc()
}

// Server exposes /metrics over HTTP.
type Server struct {
	addr   string
	srv    *http.Server
	logger *logger.Logger
}

// NewServer creates a metrics server serving the collectors of gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		addr:   addr,
		logger: log,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Metrics server listening", zap.String("addr", s.addr))

		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Metrics server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
