package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// DataSource supplies the historical bars a run consumes.
type DataSource interface {
	// FetchBars returns the bars of symbol within the optional [start, end] range, ascending by time.
	// The returned sequence is validated: strictly increasing times and no duplicate dates.
	FetchBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error)
	// Symbols lists every symbol the source holds, sorted.
	Symbols(ctx context.Context) ([]string, error)
	// Close closes the data source and releases any resources
	Close() error
}

// inRange reports whether t falls inside the optional bounds.
func inRange(t time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && t.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && t.After(end.Unwrap()) {
		return false
	}

	return true
}
