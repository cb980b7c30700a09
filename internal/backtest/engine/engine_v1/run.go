package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/analyzer"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/internal/ledger"
	"github.com/rxtech-lab/argo-quant/internal/ledger/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/metrics"
	"github.com/rxtech-lab/argo-quant/internal/notification"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/signal"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// backtestRun owns the mutable state of one single-instrument scan. It is never
// shared between goroutines.
type backtestRun struct {
	id     string
	symbol string
	config BacktestEngineV1Config
	bars   []types.Bar

	bundle    *indicator.Bundle
	evaluator *signal.Evaluator
	risk      *risk.Manager
	ledger    *ledger.Ledger
	analyzer  *analyzer.Analyzer

	// firstTradable is the first bar whose signal may be defined.
	firstTradable int
	lastSignal    types.Signal

	log       *logger.Logger
	marker    *BacktestMarker
	state     *BacktestState
	notifier  notification.Notifier
	metrics   *metrics.Metrics
	callbacks engine.LifecycleCallbacks
}

func newBacktestRun(id string, symbol string, config BacktestEngineV1Config, bars []types.Bar, log *logger.Logger) (*backtestRun, error) {
	if err := types.ValidateBars(bars); err != nil {
		return nil, err
	}

	registry, err := indicator.NewRegistryFromConfig(config.Indicators)
	if err != nil {
		return nil, err
	}

	evaluator, err := signal.NewEvaluator(config.Signal, signal.DefaultConditionRegistry())
	if err != nil {
		return nil, err
	}

	firstTradable := max(registry.Lookback()+1, config.MinHistoryBars)
	required := firstTradable + 1

	if len(bars) < required {
		return nil, errors.NewInsufficientDataError(required, len(bars), symbol)
	}

	bundle, err := indicator.Compute(bars, registry)
	if err != nil {
		return nil, err
	}

	if err := evaluator.CheckAvailable(bundle); err != nil {
		return nil, err
	}

	fee, err := commission_fee.NewCommissionFee(config.Commission)
	if err != nil {
		return nil, err
	}

	manager, err := risk.NewManager(config.Risk, fee)
	if err != nil {
		return nil, err
	}

	book, err := ledger.NewLedger(symbol, config.InitialCapital, fee, log)
	if err != nil {
		return nil, err
	}

	performance, err := analyzer.NewAnalyzer(config.Analysis)
	if err != nil {
		return nil, err
	}

	return &backtestRun{
		id:            id,
		symbol:        symbol,
		config:        config,
		bars:          bars,
		bundle:        bundle,
		evaluator:     evaluator,
		risk:          manager,
		ledger:        book,
		analyzer:      performance,
		firstTradable: firstTradable,
		lastSignal:    types.UndefinedSignal(0, bars[0].Time),
		log:           log,
	}, nil
}

// scan processes every bar in order. Each bar is fully handled (signal, state
// transition, ledger update) before the next one is read.
func (r *backtestRun) scan(ctx context.Context) error {
	total := len(r.bars)

	for i := range r.bars {
		if err := ctx.Err(); err != nil {
			return err
		}

		sig := r.signalAt(i)
		order, reason := r.decide(i, sig)

		trade, err := r.ledger.Apply(order)
		if err != nil {
			return err
		}

		decision := types.ActionNone
		if trade.IsSome() {
			decision = trade.Unwrap().Action
		}

		if err := r.mark(i, sig, decision, reason); err != nil {
			return err
		}

		if trade.IsSome() {
			if err := r.onTrade(ctx, trade.Unwrap()); err != nil {
				return err
			}
		}

		if r.callbacks.OnProcessData != nil {
			if err := (*r.callbacks.OnProcessData)(i+1, total); err != nil {
				return errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback aborted the run", err)
			}
		}

		r.lastSignal = sig
	}

	if r.ledger.Position().IsLong() {
		return errors.New(errors.ErrCodeLedgerInvariant, "position still open after the last bar")
	}

	return nil
}

// signalAt evaluates the two-bar window ending at bar i. Bars inside the warm-up
// window are undefined.
func (r *backtestRun) signalAt(i int) types.Signal {
	if i < r.firstTradable {
		return types.UndefinedSignal(i, r.bars[i].Time)
	}

	return r.evaluator.Evaluate(r.bundle.Snapshot(i-1), r.bundle.Snapshot(i))
}

// decide maps the position state and the signal of bar i to at most one order.
// An open position is always closed on the last bar.
func (r *backtestRun) decide(i int, sig types.Signal) (ledger.Order, string) {
	bar := r.bars[i]
	last := i == len(r.bars)-1

	order := ledger.Order{
		Action:   types.ActionNone,
		Price:    bar.Close,
		Time:     bar.Time,
		BarIndex: i,
	}

	pos := r.ledger.Position()

	if pos.IsLong() {
		exit := r.risk.ExitReason(pos, bar.Close, i, sig)

		switch {
		case exit.IsSome():
			order.Action = types.ActionSell
			order.Reason = exit.Unwrap()
		case last:
			order.Action = types.ActionSell
			order.Reason = types.ExitReasonEndOfData
		}

		return order, string(order.Reason)
	}

	// no entry on the last bar, there is no later bar to exit on
	if sig.Enter && !last {
		order.Action = types.ActionBuy
		order.Shares = r.risk.EntryShares(r.ledger.Cash(), bar.Close)
		order.LotSize = r.risk.Config().LotSize

		return order, strings.Join(sig.MetConditions(), ",")
	}

	return order, ""
}

func (r *backtestRun) mark(i int, sig types.Signal, decision types.Action, reason string) error {
	if r.marker == nil || !sig.Defined {
		return nil
	}

	return r.marker.Mark(types.Mark{
		Bar:      r.bars[i],
		Signal:   sig,
		Decision: decision,
		Reason:   reason,
	})
}

func (r *backtestRun) onTrade(ctx context.Context, trade types.Trade) error {
	if trade.IsExit() {
		r.log.Info("Exit",
			zap.String("symbol", r.symbol),
			zap.Time("time", trade.Time),
			zap.Float64("price", trade.Price),
			zap.Int64("shares", trade.Shares),
			zap.String("reason", string(trade.ExitReason)),
			zap.Float64("return", trade.RealizedReturn()),
		)
	} else {
		r.log.Info("Entry",
			zap.String("symbol", r.symbol),
			zap.Time("time", trade.Time),
			zap.Float64("price", trade.Price),
			zap.Int64("shares", trade.Shares),
		)
	}

	r.metrics.ObserveTrade(trade)

	if r.state != nil {
		if err := r.state.RecordTrade(r.id, trade); err != nil {
			return err
		}
	}

	if r.config.NotifyOnTrade {
		notification.NotifyQuietly(ctx, r.notifier, r.log, formatTrade(trade))
	}

	if r.callbacks.OnTrade != nil {
		if err := (*r.callbacks.OnTrade)(trade); err != nil {
			return errors.Wrap(errors.ErrCodeCallbackFailed, "trade callback aborted the run", err)
		}
	}

	return nil
}

func formatTrade(trade types.Trade) string {
	if trade.IsExit() {
		return fmt.Sprintf("[%s] SELL %d @ %.2f on %s (%s, return %.2f%%)",
			trade.Symbol, trade.Shares, trade.Price, trade.Time.Format("2006-01-02"), trade.ExitReason, trade.RealizedReturn()*100)
	}

	return fmt.Sprintf("[%s] BUY %d @ %.2f on %s",
		trade.Symbol, trade.Shares, trade.Price, trade.Time.Format("2006-01-02"))
}
