package indicator

import (
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Config selects the indicators computed for a run. A zero period disables the
// indicator, except for the fast and slow moving averages which are always present.
type Config struct {
	MAFast   int `yaml:"ma_fast" json:"ma_fast" jsonschema:"title=Fast MA,description=Window of the fast moving average,minimum=1,default=5" validate:"gt=0"`
	MASlow   int `yaml:"ma_slow" json:"ma_slow" jsonschema:"title=Slow MA,description=Window of the slow moving average,minimum=1,default=10" validate:"gt=0,gtfield=MAFast"`
	MALong   int `yaml:"ma_long" json:"ma_long" jsonschema:"title=Long MA,description=Window of the long moving average (0 disables),minimum=0,default=20" validate:"omitempty,gtfield=MASlow"`
	VolumeMA int `yaml:"volume_ma" json:"volume_ma" jsonschema:"title=Volume MA,description=Window of the volume moving average (0 disables),minimum=0,default=5" validate:"gte=0"`

	RSIPeriod int `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,minimum=0,default=14" validate:"gte=0"`

	MACDFast   int `yaml:"macd_fast" json:"macd_fast" jsonschema:"title=MACD Fast,minimum=0,default=12" validate:"gte=0"`
	MACDSlow   int `yaml:"macd_slow" json:"macd_slow" jsonschema:"title=MACD Slow,minimum=0,default=26" validate:"gte=0"`
	MACDSignal int `yaml:"macd_signal" json:"macd_signal" jsonschema:"title=MACD Signal,minimum=0,default=9" validate:"gte=0"`

	KDJPeriod int `yaml:"kdj_period" json:"kdj_period" jsonschema:"title=KDJ Period,minimum=0,default=9" validate:"gte=0"`

	BollingerPeriod int     `yaml:"bollinger_period" json:"bollinger_period" jsonschema:"title=Bollinger Period,minimum=0,default=20" validate:"gte=0"`
	BollingerK      float64 `yaml:"bollinger_k" json:"bollinger_k" jsonschema:"title=Bollinger Width,description=Number of standard deviations,minimum=0,default=2" validate:"gte=0"`

	ATRPeriod int `yaml:"atr_period" json:"atr_period" jsonschema:"title=ATR Period,minimum=0,default=14" validate:"gte=0"`
	DMIPeriod int `yaml:"dmi_period" json:"dmi_period" jsonschema:"title=DMI Period,minimum=0,default=14" validate:"gte=0"`

	TrendStrength bool `yaml:"trend_strength" json:"trend_strength" jsonschema:"title=Trend Strength,description=Compute the fast/slow MA spread,default=true"`
}

// DefaultConfig returns the MA 5/10/20 setup used by most strategy variants.
func DefaultConfig() Config {
	return Config{
		MAFast:          5,
		MASlow:          10,
		MALong:          20,
		VolumeMA:        5,
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		KDJPeriod:       9,
		BollingerPeriod: 20,
		BollingerK:      2,
		ATRPeriod:       14,
		DMIPeriod:       14,
		TrendStrength:   true,
	}
}

// Validate checks the rules struct tags cannot express.
func (c Config) Validate() error {
	macdSet := 0

	for _, p := range []int{c.MACDFast, c.MACDSlow, c.MACDSignal} {
		if p > 0 {
			macdSet++
		}
	}

	if macdSet != 0 && macdSet != 3 {
		return errors.New(errors.ErrCodeInvalidPeriod, "macd_fast, macd_slow and macd_signal must be set together")
	}

	if macdSet == 3 && c.MACDFast >= c.MACDSlow {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "macd_fast (%d) must be less than macd_slow (%d)", c.MACDFast, c.MACDSlow)
	}

	if c.BollingerPeriod > 0 && c.BollingerK <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "bollinger_k must be positive when bollinger_period is set, got %f", c.BollingerK)
	}

	return nil
}

// NewRegistryFromConfig registers every enabled indicator of the config.
func NewRegistryFromConfig(c Config) (IndicatorRegistry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	type entry struct {
		indicator Indicator
		params    []any
	}

	entries := []entry{
		{NewMA(KeyMAFast), []any{c.MAFast}},
		{NewMA(KeyMASlow), []any{c.MASlow}},
	}

	if c.MALong > 0 {
		entries = append(entries, entry{NewMA(KeyMALong), []any{c.MALong}})
	}

	if c.VolumeMA > 0 {
		entries = append(entries, entry{NewMA(KeyVolumeMA), []any{c.VolumeMA, MASourceVolume}})
	}

	if c.RSIPeriod > 0 {
		entries = append(entries, entry{NewRSI(), []any{c.RSIPeriod}})
	}

	if c.MACDFast > 0 {
		entries = append(entries, entry{NewMACD(), []any{c.MACDFast, c.MACDSlow, c.MACDSignal}})
	}

	if c.KDJPeriod > 0 {
		entries = append(entries, entry{NewKDJ(), []any{c.KDJPeriod}})
	}

	if c.BollingerPeriod > 0 {
		entries = append(entries, entry{NewBollingerBands(), []any{c.BollingerPeriod, c.BollingerK}})
	}

	if c.ATRPeriod > 0 {
		entries = append(entries, entry{NewATR(), []any{c.ATRPeriod}})
	}

	if c.DMIPeriod > 0 {
		entries = append(entries, entry{NewDMI(), []any{c.DMIPeriod}})
	}

	if c.TrendStrength {
		entries = append(entries, entry{NewTrendStrength(), []any{c.MAFast, c.MASlow}})
	}

	registry := NewIndicatorRegistry()

	for _, e := range entries {
		if err := e.indicator.Config(e.params...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s configuration", e.indicator.Key())
		}

		if err := registry.RegisterIndicator(e.indicator); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
