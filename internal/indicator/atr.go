package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// ATRIndicator is the Average True Range, a rolling mean of the true range.
type ATRIndicator struct {
	period int
}

// NewATR creates an ATR over 14 bars.
func NewATR() Indicator {
	return &ATRIndicator{period: 14}
}

func (a *ATRIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

func (a *ATRIndicator) Key() string {
	return KeyATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATRIndicator) Config(params ...any) error {
	if err := expectParams(params, 1, "1 parameter: period (int)"); err != nil {
		return err
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	a.period = period

	return nil
}

func (a *ATRIndicator) Lookback() int {
	return a.period - 1
}

func (a *ATRIndicator) Outputs() []string {
	return []string{KeyATR}
}

func (a *ATRIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	return map[string]Series{KeyATR: ATR(bars, a.period)}, nil
}
