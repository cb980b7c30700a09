package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// KDJIndicator is the stochastic oscillator variant popular on A-share charts.
type KDJIndicator struct {
	period int
}

// NewKDJ creates a KDJ indicator over 9 bars.
func NewKDJ() Indicator {
	return &KDJIndicator{period: 9}
}

func (k *KDJIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeKDJ
}

func (k *KDJIndicator) Key() string {
	return KeyKDJK
}

// Config configures the KDJ indicator. Expected parameters: period (int).
func (k *KDJIndicator) Config(params ...any) error {
	if err := expectParams(params, 1, "1 parameter: period (int)"); err != nil {
		return err
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	k.period = period

	return nil
}

func (k *KDJIndicator) Lookback() int {
	return k.period - 1
}

func (k *KDJIndicator) Outputs() []string {
	return []string{KeyKDJK, KeyKDJD, KeyKDJJ}
}

func (k *KDJIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	kLine, dLine, jLine := KDJ(bars, k.period)

	return map[string]Series{
		KeyKDJK: kLine,
		KeyKDJD: dLine,
		KeyKDJJ: jLine,
	}, nil
}
