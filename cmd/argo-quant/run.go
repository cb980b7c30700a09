package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Backtest one symbol and print its performance report",
		Flags: []cli.Flag{
			configFlag,
			dataFlag,
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Symbol to backtest",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Directory the trades, equity curve and marks are written to",
			},
			verboseFlag,
			webhookFlag,
			webhookSecretFlag,
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
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

	backtest := engine_v1.NewBacktestEngineV1()
	backtest.SetLogger(log)

	if err := backtest.Initialize(config); err != nil {
		return err
	}

	if err := backtest.SetDataSource(source); err != nil {
		return err
	}

	if err := backtest.SetResultsFolder(cmd.String("results")); err != nil {
		return err
	}

	backtest.SetNotifier(notifier)

	var bar *progressbar.ProgressBar

	onRunStart := engine.OnRunStartCallback(func(runID string, symbol string, totalBars int) error {
		bar = progressbar.Default(int64(totalBars), fmt.Sprintf("backtesting %s", symbol))

		return nil
	})
	onProcessData := engine.OnProcessDataCallback(func(current int, total int) error {
		return bar.Set(current)
	})
	onRunEnd := engine.OnRunEndCallback(func(result types.RunResult, err error) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	result, err := backtest.Run(ctx, cmd.String("symbol"), engine.LifecycleCallbacks{
		OnRunStart:    &onRunStart,
		OnProcessData: &onProcessData,
		OnRunEnd:      &onRunEnd,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(renderReport(result))

	return nil
}
