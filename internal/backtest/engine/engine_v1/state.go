package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// insertBatchSize bounds the number of rows of one multi-row INSERT.
const insertBatchSize = 500

// BacktestState persists the trade log and equity curve of a run in DuckDB so
// they can be exported as parquet.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewBacktestState(log *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to open database", err)
	}

	state := &BacktestState{
		logger: log,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := state.Initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return state, nil
}

// Initialize creates the necessary tables for tracking trades and the equity curve
func (b *BacktestState) Initialize() error {
	if b == nil || b.db == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "backtest state is nil")
	}

	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			symbol TEXT,
			time TIMESTAMP,
			bar_index INTEGER,
			action TEXT,
			price DOUBLE,
			shares BIGINT,
			fee DOUBLE,
			cash_delta DOUBLE,
			cash_after DOUBLE,
			return_pct DOUBLE,
			pnl DOUBLE,
			exit_reason TEXT,
			holding_bars INTEGER
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create trades table", err)
	}

	_, err = b.db.Exec(`
		CREATE TABLE IF NOT EXISTS equity_curve (
			run_id TEXT,
			time TIMESTAMP,
			value DOUBLE,
			cash DOUBLE,
			shares BIGINT,
			price DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create equity_curve table", err)
	}

	return nil
}

// RecordTrade inserts one trade of runID.
func (b *BacktestState) RecordTrade(runID string, trade types.Trade) error {
	var returnPct sql.NullFloat64
	if trade.ReturnPct.IsSome() {
		returnPct = sql.NullFloat64{Float64: trade.ReturnPct.Unwrap(), Valid: true}
	}

	_, err := b.sq.
		Insert("trades").
		Columns(
			"id", "run_id", "symbol", "time", "bar_index", "action", "price", "shares", "fee",
			"cash_delta", "cash_after", "return_pct", "pnl", "exit_reason", "holding_bars",
		).
		Values(
			trade.ID, runID, trade.Symbol, trade.Time, trade.BarIndex, string(trade.Action), trade.Price, trade.Shares, trade.Fee,
			trade.CashDelta, trade.CashAfter, returnPct, trade.PnL, string(trade.ExitReason), trade.HoldingBars,
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert trade", err)
	}

	return nil
}

// RecordEquity inserts the equity curve of runID in batches.
func (b *BacktestState) RecordEquity(runID string, points []types.EquityPoint) error {
	for start := 0; start < len(points); start += insertBatchSize {
		end := min(start+insertBatchSize, len(points))

		insert := b.sq.
			Insert("equity_curve").
			Columns("run_id", "time", "value", "cash", "shares", "price")

		for _, point := range points[start:end] {
			insert = insert.Values(runID, point.Time, point.Value, point.Cash, point.Shares, point.Price)
		}

		if _, err := insert.RunWith(b.db).Exec(); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert equity curve", err)
		}
	}

	return nil
}

// GetTrades returns every recorded trade ordered by time.
func (b *BacktestState) GetTrades() ([]types.Trade, error) {
	rows, err := b.sq.
		Select(
			"id", "symbol", "time", "bar_index", "action", "price", "shares", "fee",
			"cash_delta", "cash_after", "return_pct", "pnl", "exit_reason", "holding_bars",
		).
		From("trades").
		OrderBy("time ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	trades := []types.Trade{}

	for rows.Next() {
		var (
			trade      types.Trade
			action     string
			exitReason string
			returnPct  sql.NullFloat64
		)

		err := rows.Scan(
			&trade.ID, &trade.Symbol, &trade.Time, &trade.BarIndex, &action, &trade.Price, &trade.Shares, &trade.Fee,
			&trade.CashDelta, &trade.CashAfter, &returnPct, &trade.PnL, &exitReason, &trade.HoldingBars,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.Action = types.Action(action)
		trade.ExitReason = types.ExitReason(exitReason)
		trade.ReturnPct = optional.None[float64]()

		if returnPct.Valid {
			trade.ReturnPct = optional.Some(returnPct.Float64)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// GetEquityCurve returns the recorded equity curve ordered by time.
func (b *BacktestState) GetEquityCurve() ([]types.EquityPoint, error) {
	rows, err := b.sq.
		Select("time", "value", "cash", "shares", "price").
		From("equity_curve").
		OrderBy("time ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query equity curve", err)
	}
	defer rows.Close()

	points := []types.EquityPoint{}

	for rows.Next() {
		var point types.EquityPoint
		if err := rows.Scan(&point.Time, &point.Value, &point.Cash, &point.Shares, &point.Price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan equity point", err)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating equity curve", err)
	}

	return points, nil
}

// Write exports the trades and the equity curve as parquet files into dir and
// returns their paths.
func (b *BacktestState) Write(dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create directory", err)
	}

	tradesPath := filepath.Join(dir, "trades.parquet")
	equityPath := filepath.Join(dir, "equity_curve.parquet")

	// Squirrel doesn't support COPY
	if _, err := b.db.Exec(fmt.Sprintf(`COPY trades TO '%s' (FORMAT PARQUET)`, tradesPath)); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to export trades to parquet", err)
	}

	if _, err := b.db.Exec(fmt.Sprintf(`COPY equity_curve TO '%s' (FORMAT PARQUET)`, equityPath)); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to export equity curve to parquet", err)
	}

	b.logger.Debug("Exported backtest state",
		zap.String("trades", tradesPath),
		zap.String("equity_curve", equityPath),
	)

	return tradesPath, equityPath, nil
}

// Cleanup removes all recorded rows.
func (b *BacktestState) Cleanup() error {
	if b == nil || b.db == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "backtest state is nil")
	}

	if _, err := b.db.Exec(`DELETE FROM trades; DELETE FROM equity_curve;`); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to cleanup state", err)
	}

	return nil
}

// Close closes the database connection.
func (b *BacktestState) Close() error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Close()
}
