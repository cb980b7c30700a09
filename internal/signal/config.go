package signal

import (
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// RuleSet derives one composite decision from named conditions. The decision is
// true when every Required condition holds, every AnyOf group has at least one
// condition holding, and at least MinMet of Conditions hold. A rule set that names
// no condition at all never fires.
type RuleSet struct {
	Conditions []string   `yaml:"conditions" json:"conditions" jsonschema:"title=Conditions,description=Conditions counted against min_met"`
	MinMet     int        `yaml:"min_met" json:"min_met" jsonschema:"title=Minimum Met,description=How many of conditions must hold,minimum=0" validate:"gte=0"`
	Required   []string   `yaml:"required" json:"required" jsonschema:"title=Required,description=Conditions that must all hold"`
	AnyOf      [][]string `yaml:"any_of" json:"any_of" jsonschema:"title=Any Of,description=Groups in which at least one condition must hold"`
}

// Names returns every condition referenced by the rule set, without duplicates.
func (r RuleSet) Names() []string {
	seen := map[string]bool{}
	names := []string{}

	add := func(list []string) {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	add(r.Conditions)
	add(r.Required)

	for _, group := range r.AnyOf {
		add(group)
	}

	return names
}

// Empty reports whether the rule set references no condition.
func (r RuleSet) Empty() bool {
	return len(r.Names()) == 0
}

func (r RuleSet) validate(name string, registry ConditionRegistry) error {
	if r.MinMet > len(r.Conditions) {
		return errors.Newf(errors.ErrCodeInvalidRuleSet, "%s: min_met (%d) exceeds the number of conditions (%d)", name, r.MinMet, len(r.Conditions))
	}

	for i, group := range r.AnyOf {
		if len(group) == 0 {
			return errors.Newf(errors.ErrCodeInvalidRuleSet, "%s: any_of group %d is empty", name, i)
		}
	}

	for _, condition := range r.Names() {
		if _, err := registry.GetCondition(condition); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidRuleSet, err, "%s references an unknown condition", name)
		}
	}

	return nil
}

// Params holds the thresholds conditions compare against.
type Params struct {
	VolumeRatio            float64 `yaml:"volume_ratio" json:"volume_ratio" jsonschema:"title=Volume Ratio,description=volume_confirm requires volume above volume_ma times this ratio,default=1.2" validate:"gte=0"`
	VolumeDropRatio        float64 `yaml:"volume_drop_ratio" json:"volume_drop_ratio" jsonschema:"title=Volume Drop Ratio,default=0.8" validate:"gte=0"`
	StrongCandlePct        float64 `yaml:"strong_candle_pct" json:"strong_candle_pct" jsonschema:"title=Strong Candle,description=Minimum body as a fraction of the open,default=0.02" validate:"gte=0"`
	TrendStrengthThreshold float64 `yaml:"trend_strength_threshold" json:"trend_strength_threshold" jsonschema:"title=Trend Strength Threshold,description=Minimum MA spread in percent,default=1" validate:"gte=0"`
	RSIOversold            float64 `yaml:"rsi_oversold" json:"rsi_oversold" jsonschema:"title=RSI Oversold,default=30" validate:"gte=0,lte=100"`
	RSIOverbought          float64 `yaml:"rsi_overbought" json:"rsi_overbought" jsonschema:"title=RSI Overbought,default=70" validate:"gte=0,lte=100,gtefield=RSIOversold"`
	KDJLow                 float64 `yaml:"kdj_low" json:"kdj_low" jsonschema:"title=KDJ Low,default=40"`
	KDJHigh                float64 `yaml:"kdj_high" json:"kdj_high" jsonschema:"title=KDJ High,default=80" validate:"gtefield=KDJLow"`
	ADXThreshold           float64 `yaml:"adx_threshold" json:"adx_threshold" jsonschema:"title=ADX Threshold,default=20" validate:"gte=0"`
	PriceMin               float64 `yaml:"price_min" json:"price_min" jsonschema:"title=Minimum Price,default=0" validate:"gte=0"`
	// PriceMax of 0 leaves the range open.
	PriceMax float64 `yaml:"price_max" json:"price_max" jsonschema:"title=Maximum Price,description=0 means unbounded,default=0" validate:"gte=0"`
	// MaxVolatility bounds ATR/close for the volatility part of the score.
	MaxVolatility float64 `yaml:"max_volatility" json:"max_volatility" jsonschema:"title=Max Volatility,default=0.05" validate:"gte=0"`
}

// Config is the data-driven rule set of a strategy variant.
type Config struct {
	Entry  RuleSet `yaml:"entry" json:"entry" jsonschema:"title=Entry Rules"`
	Exit   RuleSet `yaml:"exit" json:"exit" jsonschema:"title=Exit Rules"`
	Params Params  `yaml:"params" json:"params" jsonschema:"title=Condition Parameters"`
}

// Validate checks the rule sets against the registry.
func (c Config) Validate(registry ConditionRegistry) error {
	if c.Entry.Empty() {
		return errors.New(errors.ErrCodeInvalidRuleSet, "entry rule set needs at least one condition")
	}

	if err := c.Entry.validate("entry", registry); err != nil {
		return err
	}

	if err := c.Exit.validate("exit", registry); err != nil {
		return err
	}

	if c.Params.PriceMax > 0 && c.Params.PriceMax < c.Params.PriceMin {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "price_max (%f) is below price_min (%f)", c.Params.PriceMax, c.Params.PriceMin)
	}

	return nil
}

// DefaultParams returns the thresholds shared by most strategy variants.
func DefaultParams() Params {
	return Params{
		VolumeRatio:            1.2,
		VolumeDropRatio:        0.8,
		StrongCandlePct:        0.02,
		TrendStrengthThreshold: 1,
		RSIOversold:            30,
		RSIOverbought:          70,
		KDJLow:                 40,
		KDJHigh:                80,
		ADXThreshold:           20,
		MaxVolatility:          0.05,
	}
}

// DefaultConfig enters on a bullish, volume-confirmed bar meeting six of the
// technical conditions, and exits when a trend reversal is confirmed by momentum
// and a KDJ death cross from the high zone.
func DefaultConfig() Config {
	return Config{
		Entry: RuleSet{
			Conditions: []string{
				ConditionBullishCandle,
				ConditionStrongBullishCandle,
				ConditionVolumeConfirm,
				ConditionGoldenCross,
				ConditionGoldenCrossLong,
				ConditionUptrend,
				ConditionTrendStrength,
				ConditionRSIOversoldRebound,
				ConditionMACDBullishTurn,
				ConditionMACDRising,
				ConditionBollingerBounce,
				ConditionKDJGoldenCross,
				ConditionKDJLow,
			},
			Required: []string{ConditionBullishCandle, ConditionVolumeConfirm},
			MinMet:   6,
		},
		Exit: RuleSet{
			Required: []string{ConditionKDJDeathCross, ConditionKDJHigh},
			AnyOf: [][]string{
				{ConditionDeathCross, ConditionRSIOverbought},
				{ConditionMACDDeathCross, ConditionBollingerUpperTouch},
			},
		},
		Params: DefaultParams(),
	}
}

// CrossoverConfig is the plain fast/slow moving average crossover.
func CrossoverConfig() Config {
	return Config{
		Entry:  RuleSet{Conditions: []string{ConditionGoldenCross}, MinMet: 1},
		Exit:   RuleSet{Conditions: []string{ConditionDeathCross}, MinMet: 1},
		Params: DefaultParams(),
	}
}
