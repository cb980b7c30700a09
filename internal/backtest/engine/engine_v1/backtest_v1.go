package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/metrics"
	"github.com/rxtech-lab/argo-quant/internal/notification"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	initialized   bool
	resultsFolder string
	log           *logger.Logger
	datasource    datasource.DataSource
	notifier      notification.Notifier
	metrics       *metrics.Metrics
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:        EmptyConfig(),
		initialized:   false,
		resultsFolder: "",
		log:           nil,
		datasource:    nil,
		notifier:      nil,
		metrics:       nil,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed := DefaultConfig()

	if err := yaml.Unmarshal([]byte(config), &parsed); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest configuration", err)
	}

	return b.InitializeWithConfig(parsed)
}

// InitializeWithConfig validates config and makes it the configuration of every following run.
func (b *BacktestEngineV1) InitializeWithConfig(config BacktestEngineV1Config) error {
	if b.log == nil {
		log, err := logger.NewLogger()
		if err != nil {
			return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create logger", err)
		}

		b.log = log
	}

	if err := config.Validate(); err != nil {
		b.log.Error("Invalid backtest configuration", zap.Error(err))

		return err
	}

	b.config = config
	b.initialized = true

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", config.InitialCapital),
		zap.Int("ma_fast", config.Indicators.MAFast),
		zap.Int("ma_slow", config.Indicators.MASlow),
		zap.Float64("stop_loss_pct", config.Risk.StopLossPct),
	)

	return nil
}

// SetLogger implements engine.Engine.
func (b *BacktestEngineV1) SetLogger(log *logger.Logger) {
	b.log = log
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder

	if b.log != nil {
		b.log.Debug("Results folder set", zap.String("folder", folder))
	}

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(datasource datasource.DataSource) error {
	if datasource == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "datasource is nil")
	}

	b.datasource = datasource

	return nil
}

// SetNotifier implements engine.Engine.
func (b *BacktestEngineV1) SetNotifier(notifier notification.Notifier) {
	b.notifier = notifier
}

// SetMetrics implements engine.Engine.
func (b *BacktestEngineV1) SetMetrics(m *metrics.Metrics) {
	b.metrics = m
}

// Config returns the active configuration.
func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, symbol string, callbacks engine.LifecycleCallbacks) (types.RunResult, error) {
	if err := b.preRunCheck(); err != nil {
		return types.RunResult{}, err
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return types.RunResult{}, errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	bars, err := b.datasource.FetchBars(ctx, symbol, b.config.StartTime, b.config.EndTime)
	if err != nil {
		return types.RunResult{}, errors.Wrapf(errors.ErrCodeFetchBarsFailed, err, "failed to fetch bars of %s", symbol)
	}

	return b.RunBars(ctx, symbol, bars, callbacks)
}

// RunBars implements engine.Engine.
func (b *BacktestEngineV1) RunBars(ctx context.Context, symbol string, bars []types.Bar, callbacks engine.LifecycleCallbacks) (result types.RunResult, err error) {
	if err := b.preRunCheck(); err != nil {
		return types.RunResult{}, err
	}

	started := time.Now()
	result = types.RunResult{
		ID:        uuid.New().String(),
		Timestamp: started,
		Symbol:    symbol,
	}

	defer func() {
		status := metrics.RunStatusSuccess
		if err != nil {
			status = metrics.RunStatusFailed
		}

		b.metrics.ObserveRun(status, time.Since(started))

		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(result, err)
		}
	}()

	run, err := newBacktestRun(result.ID, symbol, b.config, bars, b.log)
	if err != nil {
		b.log.Error("Failed to prepare run", zap.String("symbol", symbol), zap.Error(err))

		return result, err
	}

	run.notifier = b.notifier
	run.metrics = b.metrics
	run.callbacks = callbacks

	if b.resultsFolder != "" {
		if run.state, err = NewBacktestState(b.log); err != nil {
			return result, err
		}
		defer run.state.Close()

		if run.marker, err = NewBacktestMarker(b.log); err != nil {
			return result, err
		}
		defer run.marker.Close()
	}

	if callbacks.OnRunStart != nil {
		if err = (*callbacks.OnRunStart)(result.ID, symbol, len(bars)); err != nil {
			return result, errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback aborted the run", err)
		}
	}

	b.log.Debug("Running backtest",
		zap.String("run_id", result.ID),
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)),
		zap.Int("first_tradable_bar", run.firstTradable),
	)

	if err = run.scan(ctx); err != nil {
		return result, err
	}

	b.metrics.AddBars(len(bars))

	result.Trades = run.ledger.Trades()
	result.Equity = run.ledger.Equity()
	result.StartTime = bars[0].Time
	result.EndTime = bars[len(bars)-1].Time
	result.LastSignal = run.lastSignal.Type

	if result.Report, err = run.analyzer.Analyze(result.Equity, result.Trades); err != nil {
		return result, err
	}

	if b.resultsFolder != "" {
		if err = b.writeResults(run, &result); err != nil {
			return result, err
		}
	}

	b.log.Info("Backtest finished",
		zap.String("symbol", symbol),
		zap.Int("trades", result.Report.NumberOfTrades),
		zap.Float64("total_return", result.Report.TotalReturn),
		zap.Float64("max_drawdown", result.Report.MaxDrawdown),
	)

	return result, nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to generate schema", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) writeResults(run *backtestRun, result *types.RunResult) error {
	folder := getResultFolder(b.resultsFolder, result.Symbol, result.StartTime, result.EndTime)

	// remove results of a previous run over the same bars
	if _, err := os.Stat(folder); err == nil {
		if err := os.RemoveAll(folder); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to clean results folder", err)
		}
	}

	if err := run.state.RecordEquity(result.ID, result.Equity); err != nil {
		return err
	}

	tradesPath, equityPath, err := run.state.Write(folder)
	if err != nil {
		return err
	}

	marksPath, err := run.marker.Write(folder)
	if err != nil {
		return err
	}

	result.TradesFilePath = tradesPath
	result.EquityFilePath = equityPath
	result.MarksFilePath = marksPath

	if err := types.WriteRunResults(filepath.Join(folder, "stats.yaml"), []types.RunResult{*result}); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write stats", err)
	}

	return nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestConfigError, "engine is not initialized")
	}

	if b.log == nil {
		b.log = logger.NewNopLogger()
	}

	return nil
}
