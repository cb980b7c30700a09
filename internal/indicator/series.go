package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Series is an indicator output aligned 1:1 with the bar sequence.
// NaN marks an undefined value inside the warm-up window.
type Series []float64

// NewSeries returns a series of length n with every value undefined.
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}

	return s
}

// At returns the value at i, or NaN when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}

	return s[i]
}

// Defined reports whether the value at i is a number.
func (s Series) Defined(i int) bool {
	return !math.IsNaN(s.At(i))
}

// FirstDefined returns the first defined index, or -1.
func (s Series) FirstDefined() int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}

	return -1
}

// mask clears the first n values.
func (s Series) mask(n int) Series {
	for i := 0; i < n && i < len(s); i++ {
		s[i] = math.NaN()
	}

	return s
}

func Closes(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.Close })
}

func Opens(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.Open })
}

func Highs(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.High })
}

func Lows(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.Low })
}

func Volumes(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.Volume })
}

func Turnovers(bars []types.Bar) Series {
	return extract(bars, func(b types.Bar) float64 { return b.Turnover() })
}

func extract(bars []types.Bar, field func(types.Bar) float64) Series {
	s := make(Series, len(bars))
	for i, bar := range bars {
		s[i] = field(bar)
	}

	return s
}
