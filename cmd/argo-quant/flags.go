package main

import (
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/notification"
	"github.com/urfave/cli/v3"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the backtest configuration `FILE` (YAML). Omitted keys use the defaults",
	}
	dataFlag = &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Parquet or CSV `PATTERN` holding the daily bars, e.g. data/*.parquet",
		Required: true,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}
	webhookFlag = &cli.StringFlag{
		Name:    "webhook",
		Usage:   "Webhook `URL` that receives notifications",
		Sources: cli.EnvVars("ARGO_QUANT_WEBHOOK"),
	}
	webhookSecretFlag = &cli.StringFlag{
		Name:    "webhook-secret",
		Usage:   "Secret used to sign webhook requests",
		Sources: cli.EnvVars("ARGO_QUANT_WEBHOOK_SECRET"),
	}
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool(verboseFlag.Name) {
		return logger.NewDevelopmentLogger()
	}

	return logger.NewLogger()
}

// readConfig returns the content of the config file, or an empty document when no file is given.
func readConfig(cmd *cli.Command) (string, error) {
	path := cmd.String(configFlag.Name)
	if path == "" {
		return "", nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	return string(content), nil
}

func openDataSource(cmd *cli.Command, log *logger.Logger) (*datasource.DuckDBDataSource, error) {
	source, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return nil, err
	}

	if err := source.Initialize(cmd.String(dataFlag.Name)); err != nil {
		source.Close()

		return nil, err
	}

	return source, nil
}

// newNotifier returns a webhook notifier when a webhook is configured and a log notifier otherwise.
func newNotifier(cmd *cli.Command, log *logger.Logger) (notification.Notifier, error) {
	url := cmd.String(webhookFlag.Name)
	if url == "" {
		return notification.NewLogNotifier(log), nil
	}

	webhook, err := notification.NewWebhookNotifier(notification.WebhookConfig{
		URL:    url,
		Secret: cmd.String(webhookSecretFlag.Name),
	}, log)
	if err != nil {
		return nil, err
	}

	return webhook, nil
}
