package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource reads bars from parquet or CSV files through an in-process DuckDB view.
type DuckDBDataSource struct {
	db        *sql.DB
	logger    *logger.Logger
	sq        squirrel.StatementBuilderType
	hasAmount bool
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// Use ":memory:" for a transient database.
// This is distinct from Initialize() which loads market data into the database.
func NewDataSource(path string, log *logger.Logger) (*DuckDBDataSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to connect to duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize creates the market_data view over the files matched by pattern.
// The reader is chosen by extension: .csv files are read with read_csv_auto, everything else as parquet.
// Files must carry time, symbol, open, high, low, close and volume columns. An amount column is optional.
func (d *DuckDBDataSource) Initialize(pattern string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", pattern))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	reader := "read_parquet"
	if strings.EqualFold(filepath.Ext(pattern), ".csv") {
		reader = "read_csv_auto"
	}

	escaped := strings.ReplaceAll(pattern, "'", "''")

	// Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * REPLACE (CAST(time AS TIMESTAMP) AS time, CAST(symbol AS VARCHAR) AS symbol)
		FROM %s('%s');
	`, reader, escaped)

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load market data from %s", pattern)
	}

	hasAmount, err := d.columnExists("amount")
	if err != nil {
		return err
	}

	d.hasAmount = hasAmount

	return nil
}

func (d *DuckDBDataSource) columnExists(column string) (bool, error) {
	query, args, err := d.sq.Select("*").From("market_data").Limit(0).ToSql()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect market data columns", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect market data columns", err)
	}

	for _, name := range columns {
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}

	return false, nil
}

// FetchBars implements DataSource.
func (d *DuckDBDataSource) FetchBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	d.logger.Debug("Fetching bars",
		zap.String("symbol", symbol),
		zap.Bool("has_start", start.IsSome()),
		zap.Bool("has_end", end.IsSome()),
	)

	amount := "CAST(NULL AS DOUBLE) AS amount"
	if d.hasAmount {
		amount = "CAST(amount AS DOUBLE) AS amount"
	}

	where := squirrel.And{squirrel.Eq{"symbol": symbol}}

	if start.IsSome() {
		where = append(where, squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		where = append(where, squirrel.LtOrEq{"time": end.Unwrap()})
	}

	query, args, err := d.sq.
		Select(
			"time", "symbol",
			"CAST(open AS DOUBLE) AS open",
			"CAST(high AS DOUBLE) AS high",
			"CAST(low AS DOUBLE) AS low",
			"CAST(close AS DOUBLE) AS close",
			"CAST(volume AS DOUBLE) AS volume",
			amount,
		).
		From("market_data").
		Where(where).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars of %s", symbol)
	}
	defer rows.Close()

	// Pre-allocate slice with reasonable capacity
	bars := make([]types.Bar, 0, 256)

	for rows.Next() {
		var (
			bar    types.Bar
			amount sql.NullFloat64
		)

		err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume, &amount)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		if amount.Valid {
			bar.Amount = optional.Some(amount.Float64)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for symbol %s", symbol)
	}

	if err := types.ValidateBars(bars); err != nil {
		return nil, err
	}

	return bars, nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols(ctx context.Context) ([]string, error) {
	query, args, err := d.sq.
		Select("DISTINCT symbol").
		From("market_data").
		OrderBy("symbol").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to get symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
