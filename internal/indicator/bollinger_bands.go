package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// BollingerBandsIndicator represents the Bollinger Bands indicator.
type BollingerBandsIndicator struct {
	period int
	stdDev float64
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBandsIndicator{
		period: 20,
		stdDev: 2.0,
	}
}

func (bb *BollingerBandsIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

func (bb *BollingerBandsIndicator) Key() string {
	return KeyBBMiddle
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBandsIndicator) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	stdDev, err := floatParam(params, 1, "stdDev")
	if err != nil {
		return err
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

func (bb *BollingerBandsIndicator) Lookback() int {
	return bb.period - 1
}

func (bb *BollingerBandsIndicator) Outputs() []string {
	return []string{KeyBBUpper, KeyBBMiddle, KeyBBLower}
}

func (bb *BollingerBandsIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	upper, middle, lower := BollingerBands(Closes(bars), bb.period, bb.stdDev)

	return map[string]Series{
		KeyBBUpper:  upper,
		KeyBBMiddle: middle,
		KeyBBLower:  lower,
	}, nil
}
