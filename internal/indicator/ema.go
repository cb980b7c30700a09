package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// EMAIndicator is an exponential moving average of closes.
type EMAIndicator struct {
	key    string
	period int
}

// NewEMA creates an EMA registered under key with a default span of 20.
func NewEMA(key string) Indicator {
	return &EMAIndicator{
		key:    key,
		period: 20,
	}
}

func (e *EMAIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

func (e *EMAIndicator) Key() string {
	return e.key
}

// Config configures the EMA. Expected parameters: span (int).
func (e *EMAIndicator) Config(params ...any) error {
	if err := expectParams(params, 1, "1 parameter: span (int)"); err != nil {
		return err
	}

	period, err := intParam(params, 0, "span")
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

func (e *EMAIndicator) Lookback() int {
	return e.period - 1
}

func (e *EMAIndicator) Outputs() []string {
	return []string{e.key}
}

func (e *EMAIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	return map[string]Series{e.key: EMA(Closes(bars), e.period)}, nil
}
