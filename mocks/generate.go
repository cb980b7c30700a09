package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/argo-quant/internal/notification Notifier
//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-quant/internal/backtest/engine Engine
