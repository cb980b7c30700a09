package engine

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/metrics"
	"github.com/rxtech-lab/argo-quant/internal/notification"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnRunStartCallback is called once the bars of a run are loaded and validated.
// runID is a unique identifier for this run, generated before processing starts.
type OnRunStartCallback func(runID string, symbol string, totalBars int) error

// OnProcessDataCallback is called for each bar processed.
type OnProcessDataCallback func(current int, total int) error

// OnTradeCallback is called for every entry and exit the ledger records.
type OnTradeCallback func(trade types.Trade) error

// OnRunEndCallback is called when a run ends (always called via defer).
type OnRunEndCallback func(result types.RunResult, err error)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnProcessData *OnProcessDataCallback
	OnTrade       *OnTradeCallback
	OnRunEnd      *OnRunEndCallback
}

//nolint:interfacebloat // Engine is a core interface that naturally requires multiple methods
type Engine interface {
	// Initialize the engine with the given YAML configuration content.
	Initialize(config string) error
	// SetLogger replaces the engine logger.
	SetLogger(log *logger.Logger)
	// SetDataSource sets the source the engine fetches bars from in Run.
	SetDataSource(dataSource datasource.DataSource) error
	// SetNotifier sets the collaborator that receives trade messages. Delivery failures are logged, never fatal.
	SetNotifier(notifier notification.Notifier)
	// SetMetrics sets the collectors updated by every run.
	SetMetrics(m *metrics.Metrics)
	// SetResultsFolder sets the output directory for saving backtest results.
	// The results folder will be structured as: <folder>/<symbol>_<start>_<end>
	// An empty folder disables persistence.
	SetResultsFolder(folder string) error
	// Run fetches the bars of symbol from the data source and backtests them.
	// The context can be used to cancel the backtest operation.
	Run(ctx context.Context, symbol string, callbacks LifecycleCallbacks) (types.RunResult, error)
	// RunBars backtests an already materialized bar sequence.
	RunBars(ctx context.Context, symbol string, bars []types.Bar, callbacks LifecycleCallbacks) (types.RunResult, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
