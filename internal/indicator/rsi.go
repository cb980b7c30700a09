package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// RSIIndicator represents the Relative Strength Index indicator.
type RSIIndicator struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSIIndicator{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

func (r *RSIIndicator) Key() string {
	return KeyRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSIIndicator) Config(params ...any) error {
	if err := expectParams(params, 1, "1 parameter: period (int)"); err != nil {
		return err
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Lookback is period: the first diff needs one prior close.
func (r *RSIIndicator) Lookback() int {
	return r.period
}

func (r *RSIIndicator) Outputs() []string {
	return []string{KeyRSI}
}

func (r *RSIIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	return map[string]Series{KeyRSI: RSI(Closes(bars), r.period)}, nil
}
