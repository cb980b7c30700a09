package main

import (
	"context"
	"fmt"

	engine_v1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the backtest configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			schema, err := engine_v1.NewBacktestEngineV1().GetConfigSchema()
			if err != nil {
				return err
			}

			fmt.Println(schema)

			return nil
		},
	}
}
