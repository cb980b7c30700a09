package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// TrendStrengthIndicator measures the percentage spread between a fast and a slow MA.
type TrendStrengthIndicator struct {
	fastPeriod int
	slowPeriod int
}

// NewTrendStrength creates a trend strength indicator over MA5 and MA10.
func NewTrendStrength() Indicator {
	return &TrendStrengthIndicator{
		fastPeriod: 5,
		slowPeriod: 10,
	}
}

func (t *TrendStrengthIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeTrendStrength
}

func (t *TrendStrengthIndicator) Key() string {
	return KeyTrendStrength
}

// Config configures the indicator. Expected parameters: fastPeriod (int), slowPeriod (int).
func (t *TrendStrengthIndicator) Config(params ...any) error {
	if err := expectParams(params, 2, "2 parameters: fastPeriod (int), slowPeriod (int)"); err != nil {
		return err
	}

	fast, err := intParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slow, err := intParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	if fast >= slow {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fast, slow)
	}

	t.fastPeriod = fast
	t.slowPeriod = slow

	return nil
}

func (t *TrendStrengthIndicator) Lookback() int {
	return t.slowPeriod - 1
}

func (t *TrendStrengthIndicator) Outputs() []string {
	return []string{KeyTrendStrength}
}

func (t *TrendStrengthIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	closes := Closes(bars)

	return map[string]Series{
		KeyTrendStrength: TrendStrength(SMA(closes, t.fastPeriod), SMA(closes, t.slowPeriod)),
	}, nil
}
