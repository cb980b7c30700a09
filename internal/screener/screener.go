package screener

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/notification"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of symbols scanned at the same time.
const DefaultConcurrency = 4

// EngineFactory builds a fully configured engine. It is called once per symbol
// so no two scans share an engine.
type EngineFactory func() (engine.Engine, error)

// Result is the outcome of scanning one symbol.
type Result struct {
	Symbol string
	// Signal is the signal of the latest bar.
	Signal types.SignalType
	Report types.PerformanceReport
	// Err is set when the symbol could not be scanned. Other symbols are unaffected.
	Err error
}

// IsEntry reports whether the latest bar of the symbol signals an entry.
func (r Result) IsEntry() bool {
	return r.Err == nil && r.Signal == types.SignalTypeEnter
}

// OnResultCallback is called once per finished symbol. Calls are serialized.
type OnResultCallback func(result Result)

// Screener backtests many symbols in parallel and reports which of them
// signal an entry on their latest bar.
type Screener struct {
	factory     EngineFactory
	concurrency int
	notifier    notification.Notifier
	log         *logger.Logger
	now         func() time.Time
}

func NewScreener(factory EngineFactory, concurrency int, log *logger.Logger) (*Screener, error) {
	if factory == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "engine factory is required")
	}

	if concurrency < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "concurrency must not be negative, got %d", concurrency)
	}

	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Screener{
		factory:     factory,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}, nil
}

// SetNotifier sets the notifier that receives the summary of entry signals.
func (s *Screener) SetNotifier(notifier notification.Notifier) {
	s.notifier = notifier
}

// Screen scans every symbol and returns one result per symbol, sorted by symbol.
// A failing symbol is recorded in its Result. Only a cancelled context aborts
// the batch, in which case the results gathered so far are returned with the
// context error.
func (s *Screener) Screen(ctx context.Context, symbols []string, onResult *OnResultCallback) ([]Result, error) {
	symbols = dedupe(symbols)
	results := make([]Result, len(symbols))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, symbol := range symbols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Symbol: symbol, Err: err}

				return err
			}

			result := s.scan(gctx, symbol)
			results[i] = result

			if onResult != nil {
				mu.Lock()
				(*onResult)(result)
				mu.Unlock()
			}

			// a cancelled batch stops scheduling further symbols
			return gctx.Err()
		})
	}

	err := g.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Symbol < results[j].Symbol
	})

	if err != nil {
		return results, err
	}

	entries := Entries(results)

	s.log.Info("Screening finished",
		zap.Int("symbols", len(results)),
		zap.Int("entries", len(entries)),
		zap.Int("failed", countFailed(results)),
	)

	if len(entries) > 0 {
		notification.NotifyQuietly(ctx, s.notifier, s.log, s.summary(entries))
	}

	return results, nil
}

func (s *Screener) scan(ctx context.Context, symbol string) Result {
	result := Result{Symbol: symbol}

	backtest, err := s.factory()
	if err != nil {
		result.Err = err

		return result
	}

	run, err := backtest.Run(ctx, symbol, engine.LifecycleCallbacks{})
	if err != nil {
		s.log.Warn("Failed to scan symbol", zap.String("symbol", symbol), zap.Error(err))
		result.Err = err

		return result
	}

	result.Signal = run.LastSignal
	result.Report = run.Report

	return result
}

func (s *Screener) summary(entries []Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Entry signals %s\n", s.now().Format(time.DateTime))
	fmt.Fprintf(&b, "%d symbol(s) signal an entry on the latest bar:\n", len(entries))

	for _, entry := range entries {
		fmt.Fprintf(&b, "%s  backtest return %.2f%%  win rate %.0f%%  max drawdown %.2f%%\n",
			entry.Symbol,
			entry.Report.TotalReturn*100,
			entry.Report.WinRate*100,
			entry.Report.MaxDrawdown*100,
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Entries returns the results whose latest bar signals an entry.
func Entries(results []Result) []Result {
	entries := []Result{}

	for _, result := range results {
		if result.IsEntry() {
			entries = append(entries, result)
		}
	}

	return entries
}

func countFailed(results []Result) int {
	failed := 0

	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	return failed
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	unique := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		if symbol == "" || seen[symbol] {
			continue
		}

		seen[symbol] = true
		unique = append(unique, symbol)
	}

	return unique
}
