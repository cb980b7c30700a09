package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// MACDIndicator represents the Moving Average Convergence Divergence indicator.
type MACDIndicator struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the conventional 12/26/9 periods.
func NewMACD() Indicator {
	return &MACDIndicator{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

func (m *MACDIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

func (m *MACDIndicator) Key() string {
	return KeyMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACDIndicator) Config(params ...any) error {
	if err := expectParams(params, 3, "3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)"); err != nil {
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

	signal, err := intParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	if fast >= slow {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fast, slow)
	}

	m.fastPeriod = fast
	m.slowPeriod = slow
	m.signalPeriod = signal

	return nil
}

func (m *MACDIndicator) Lookback() int {
	return m.slowPeriod + m.signalPeriod - 2
}

func (m *MACDIndicator) Outputs() []string {
	return []string{KeyMACD, KeyMACDSignal, KeyMACDHist}
}

func (m *MACDIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	macd, signal, hist := MACD(Closes(bars), m.fastPeriod, m.slowPeriod, m.signalPeriod)

	return map[string]Series{
		KeyMACD:       macd,
		KeyMACDSignal: signal,
		KeyMACDHist:   hist,
	}, nil
}
