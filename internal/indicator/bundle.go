package indicator

import (
	"math"
	"sort"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Bundle holds every series computed for a bar sequence.
type Bundle struct {
	bars     []types.Bar
	series   map[string]Series
	lookback int
}

// Snapshot is the view of a bundle at one bar.
type Snapshot struct {
	Index  int
	Bar    types.Bar
	Values map[string]float64
}

// Value returns the named value or NaN when it is missing.
func (s Snapshot) Value(key string) float64 {
	v, ok := s.Values[key]
	if !ok {
		return math.NaN()
	}

	return v
}

// Defined reports whether every named value is present and defined.
func (s Snapshot) Defined(keys ...string) bool {
	for _, key := range keys {
		if math.IsNaN(s.Value(key)) {
			return false
		}
	}

	return true
}

// Compute evaluates all registered indicators over bars.
func Compute(bars []types.Bar, registry IndicatorRegistry) (*Bundle, error) {
	bundle := &Bundle{
		bars: bars,
		series: map[string]Series{
			KeyOpen:     Opens(bars),
			KeyHigh:     Highs(bars),
			KeyLow:      Lows(bars),
			KeyClose:    Closes(bars),
			KeyVolume:   Volumes(bars),
			KeyTurnover: Turnovers(bars),
		},
		lookback: registry.Lookback(),
	}

	for _, key := range registry.ListIndicators() {
		ind, err := registry.GetIndicator(key)
		if err != nil {
			return nil, err
		}

		outputs, err := ind.Compute(bars)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to compute %s", key)
		}

		for name, series := range outputs {
			if _, exists := bundle.series[name]; exists {
				return nil, errors.Newf(errors.ErrCodeDuplicateSeries, "series %s computed twice", name)
			}

			if len(series) != len(bars) {
				return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "series %s has %d values for %d bars", name, len(series), len(bars))
			}

			bundle.series[name] = series
		}
	}

	return bundle, nil
}

func (b *Bundle) Len() int {
	return len(b.bars)
}

// Lookback is the number of leading bars at which some indicator is undefined.
func (b *Bundle) Lookback() int {
	return b.lookback
}

func (b *Bundle) Bars() []types.Bar {
	return b.bars
}

func (b *Bundle) Series(key string) (Series, bool) {
	s, ok := b.series[key]

	return s, ok
}

// Has reports whether the bundle contains the named series.
func (b *Bundle) Has(key string) bool {
	_, ok := b.series[key]

	return ok
}

// Keys returns every series key in sorted order.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.series))
	for key := range b.series {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Snapshot returns the values of all series at bar i.
func (b *Bundle) Snapshot(i int) Snapshot {
	values := make(map[string]float64, len(b.series))
	for key, series := range b.series {
		values[key] = series.At(i)
	}

	var bar types.Bar
	if i >= 0 && i < len(b.bars) {
		bar = b.bars[i]
	}

	return Snapshot{Index: i, Bar: bar, Values: values}
}
