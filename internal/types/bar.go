package types

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Bar is one trading period of a single instrument. Bars are immutable once ingested.
type Bar struct {
	Symbol string    `yaml:"symbol" json:"symbol"`
	Time   time.Time `yaml:"time" json:"time"`
	Open   float64   `yaml:"open" json:"open"`
	High   float64   `yaml:"high" json:"high"`
	Low    float64   `yaml:"low" json:"low"`
	Close  float64   `yaml:"close" json:"close"`
	Volume float64   `yaml:"volume" json:"volume"`
	// Amount is the traded turnover. Not every data vendor provides it.
	Amount optional.Option[float64] `yaml:"-" json:"-"`
}

// Turnover returns Amount when present, otherwise close*volume.
func (b Bar) Turnover() float64 {
	if b.Amount.IsSome() {
		return b.Amount.Unwrap()
	}

	return b.Close * b.Volume
}

// ValidateBars checks that bars are strictly ascending in time with no duplicate dates,
// hold only finite numbers and carry a positive close.
func ValidateBars(bars []Bar) error {
	for i, bar := range bars {
		if field, ok := bar.nonFinite(); ok {
			return errors.Newf(errors.ErrCodeInvalidBarSequence, "bar %d (%s) has non-finite %s", i, bar.Time.Format(time.DateOnly), field)
		}

		if bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeInvalidBarSequence, "bar %d (%s) has non-positive close %f", i, bar.Time.Format(time.DateOnly), bar.Close)
		}

		if bar.High < bar.Low {
			return errors.Newf(errors.ErrCodeInvalidBarSequence, "bar %d (%s) has high %f below low %f", i, bar.Time.Format(time.DateOnly), bar.High, bar.Low)
		}

		if i == 0 {
			continue
		}

		if !bar.Time.After(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidBarSequence,
				"bars must be strictly ascending: bar %d at %s is not after %s",
				i, bar.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// nonFinite returns the name of the first NaN or infinite field.
func (b Bar) nonFinite() (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
		{"amount", b.Amount.TakeOr(0)},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}

	return "", false
}
