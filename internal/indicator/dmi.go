package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// DMIIndicator is the Directional Movement Index with its ADX line.
type DMIIndicator struct {
	period int
}

// NewDMI creates a DMI over 14 bars.
func NewDMI() Indicator {
	return &DMIIndicator{period: 14}
}

func (d *DMIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeDMI
}

func (d *DMIIndicator) Key() string {
	return KeyADX
}

// Config configures the DMI indicator. Expected parameters: period (int).
func (d *DMIIndicator) Config(params ...any) error {
	if err := expectParams(params, 1, "1 parameter: period (int)"); err != nil {
		return err
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	d.period = period

	return nil
}

func (d *DMIIndicator) Lookback() int {
	return 2*d.period - 1
}

func (d *DMIIndicator) Outputs() []string {
	return []string{KeyPDI, KeyMDI, KeyADX}
}

func (d *DMIIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	pdi, mdi, adx := DMI(bars, d.period)

	return map[string]Series{
		KeyPDI: pdi,
		KeyMDI: mdi,
		KeyADX: adx,
	}, nil
}
