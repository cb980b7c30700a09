package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// BacktestMarker records every evaluated bar of a run together with its signal
// and the decision taken on it, in a DuckDB database.
type BacktestMarker struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewBacktestMarker creates a new instance of BacktestMarker.
func NewBacktestMarker(log *logger.Logger) (*BacktestMarker, error) {
	// Create an in-memory DuckDB database
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to open database", err)
	}

	// Test connection to ensure database is properly initialized
	if err := db.Ping(); err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to connect to database", err)
	}

	marker := &BacktestMarker{
		logger: log,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := marker.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return marker, nil
}

// Mark records one evaluated bar.
func (m *BacktestMarker) Mark(mark types.Mark) error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "backtest marker or database is nil")
	}

	var nextID int

	err := m.db.QueryRow("SELECT nextval('mark_id_seq')").Scan(&nextID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to get next ID from sequence", err)
	}

	_, err = m.sq.
		Insert("marks").
		Columns(
			"id", "symbol", "time", "bar_index", "open", "high", "low", "close", "volume",
			"signal_type", "entry_met", "exit_met", "score", "decision", "reason",
		).
		Values(
			nextID, mark.Bar.Symbol, mark.Bar.Time, mark.Signal.BarIndex, mark.Bar.Open, mark.Bar.High, mark.Bar.Low, mark.Bar.Close, mark.Bar.Volume,
			string(mark.Signal.Type), mark.Signal.EntryMet, mark.Signal.ExitMet, mark.Signal.Score, string(mark.Decision), mark.Reason,
		).
		RunWith(m.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert mark", err)
	}

	return nil
}

// GetMarks returns all recorded marks ordered by time.
func (m *BacktestMarker) GetMarks() ([]types.Mark, error) {
	if m == nil || m.db == nil {
		return nil, errors.New(errors.ErrCodeMarkerNotAvailable, "backtest marker or database is nil")
	}

	rows, err := m.sq.
		Select(
			"symbol", "time", "bar_index", "open", "high", "low", "close", "volume",
			"signal_type", "entry_met", "exit_met", "score", "decision", "reason",
		).
		From("marks").
		OrderBy("time ASC").
		RunWith(m.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query marks", err)
	}
	defer rows.Close()

	var marks []types.Mark

	for rows.Next() {
		var (
			mark       types.Mark
			signalType string
			decision   string
		)

		err := rows.Scan(
			&mark.Bar.Symbol,
			&mark.Bar.Time,
			&mark.Signal.BarIndex,
			&mark.Bar.Open,
			&mark.Bar.High,
			&mark.Bar.Low,
			&mark.Bar.Close,
			&mark.Bar.Volume,
			&signalType,
			&mark.Signal.EntryMet,
			&mark.Signal.ExitMet,
			&mark.Signal.Score,
			&decision,
			&mark.Reason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan mark", err)
		}

		mark.Signal.Type = types.SignalType(signalType)
		mark.Signal.Time = mark.Bar.Time
		mark.Signal.Defined = mark.Signal.Type != types.SignalTypeUndefined
		mark.Signal.Enter = mark.Signal.Type == types.SignalTypeEnter
		mark.Signal.Exit = mark.Signal.Type == types.SignalTypeExit
		mark.Decision = types.Action(decision)

		marks = append(marks, mark)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating marks", err)
	}

	return marks, nil
}

// Write saves the marks to a Parquet file in the specified directory and returns its path.
func (m *BacktestMarker) Write(path string) (string, error) {
	if m == nil || m.db == nil || m.logger == nil {
		return "", errors.New(errors.ErrCodeMarkerNotAvailable, "backtest marker, database, or logger is nil")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create directory", err)
	}

	marksPath := filepath.Join(path, "marks.parquet")

	_, err := m.db.Exec(fmt.Sprintf(`COPY marks TO '%s' (FORMAT PARQUET)`, marksPath))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to export marks to parquet", err)
	}

	m.logger.Debug("Exported marks to parquet", zap.String("marks", marksPath))

	return marksPath, nil
}

// Cleanup resets the database state.
func (m *BacktestMarker) Cleanup() error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "backtest marker or database is nil")
	}

	_, err := m.db.Exec(`
		DROP TABLE IF EXISTS marks;
		DROP SEQUENCE IF EXISTS mark_id_seq;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to cleanup marks table", err)
	}

	return m.initialize()
}

// Close closes the database connection.
func (m *BacktestMarker) Close() error {
	if m == nil || m.db == nil {
		return nil
	}

	return m.db.Close()
}

func (m *BacktestMarker) initialize() error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "backtest marker or database is nil")
	}

	_, err := m.db.Exec(`CREATE SEQUENCE IF NOT EXISTS mark_id_seq`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create sequence", err)
	}

	_, err = m.db.Exec(`
		CREATE TABLE IF NOT EXISTS marks (
			id INTEGER PRIMARY KEY,
			symbol TEXT,
			time TIMESTAMP,
			bar_index INTEGER,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE,
			signal_type TEXT,
			entry_met INTEGER,
			exit_met INTEGER,
			score DOUBLE,
			decision TEXT,
			reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create marks table", err)
	}

	return nil
}
