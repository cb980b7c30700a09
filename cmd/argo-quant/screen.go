package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/metrics"
	"github.com/rxtech-lab/argo-quant/internal/screener"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func screenCommand() *cli.Command {
	return &cli.Command{
		Name:  "screen",
		Usage: "Backtest many symbols in parallel and report the ones signalling an entry on the latest bar",
		Flags: []cli.Flag{
			configFlag,
			dataFlag,
			&cli.StringSliceFlag{
				Name:  "symbols",
				Usage: "Symbols to screen. Defaults to every symbol in the data",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of symbols scanned at the same time",
				Value: screener.DefaultConcurrency,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this `ADDRESS` while screening, e.g. :9090",
			},
			verboseFlag,
			webhookFlag,
			webhookSecretFlag,
		},
		Action: screenAction,
	}
}

func screenAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := readConfig(cmd)
	if err != nil {
		return err
	}

	source, err := openDataSource(cmd, log)
	if err != nil {
		return err
	}
	defer source.Close()

	notifier, err := newNotifier(cmd, log)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()

	m, err := metrics.NewMetrics(registry)
	if err != nil {
		return err
	}

	if addr := cmd.String("metrics-addr"); addr != "" {
		server := metrics.NewServer(addr, registry, log)
		server.Start()

		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Stop(stopCtx); err != nil {
				log.Warn("Failed to stop metrics server", zap.Error(err))
			}
		}()
	}

	symbols := cmd.StringSlice("symbols")
	if len(symbols) == 0 {
		if symbols, err = source.Symbols(ctx); err != nil {
			return err
		}
	}

	// each symbol gets its own engine; the data source is read-only and shared
	factory := func() (engine.Engine, error) {
		backtest := engine_v1.NewBacktestEngineV1()
		backtest.SetLogger(log)
		backtest.SetMetrics(m)

		if err := backtest.Initialize(config); err != nil {
			return nil, err
		}

		if err := backtest.SetDataSource(source); err != nil {
			return nil, err
		}

		return backtest, nil
	}

	s, err := screener.NewScreener(factory, int(cmd.Int("concurrency")), log)
	if err != nil {
		return err
	}

	s.SetNotifier(notifier)

	bar := progressbar.Default(int64(len(symbols)), "screening")
	onResult := screener.OnResultCallback(func(result screener.Result) {
		_ = bar.Add(1)
	})

	results, err := s.Screen(ctx, symbols, &onResult)
	_ = bar.Finish()

	fmt.Println()
	fmt.Println(renderScreen(results))

	return err
}
