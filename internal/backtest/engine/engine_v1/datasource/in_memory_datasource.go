package datasource

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// InMemoryDataSource serves bars held in memory, keyed by symbol.
type InMemoryDataSource struct {
	mu   sync.RWMutex
	bars map[string][]types.Bar
}

// NewInMemoryDataSource creates an empty in-memory data source.
func NewInMemoryDataSource() *InMemoryDataSource {
	return &InMemoryDataSource{
		bars: make(map[string][]types.Bar),
	}
}

// Add stores bars under symbol, replacing any previous series. The series is validated first.
func (d *InMemoryDataSource) Add(symbol string, bars []types.Bar) error {
	if err := types.ValidateBars(bars); err != nil {
		return err
	}

	stored := make([]types.Bar, len(bars))
	copy(stored, bars)

	for i := range stored {
		stored[i].Symbol = symbol
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.bars[symbol] = stored

	return nil
}

// FetchBars implements DataSource.
func (d *InMemoryDataSource) FetchBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	series, ok := d.bars[symbol]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for symbol %s", symbol)
	}

	result := make([]types.Bar, 0, len(series))

	for _, bar := range series {
		if inRange(bar.Time, start, end) {
			result = append(result, bar)
		}
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for symbol %s in range", symbol)
	}

	return result, nil
}

// Symbols implements DataSource.
func (d *InMemoryDataSource) Symbols(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	symbols := make([]string, 0, len(d.bars))
	for symbol := range d.bars {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// Close implements DataSource.
func (d *InMemoryDataSource) Close() error {
	return nil
}
