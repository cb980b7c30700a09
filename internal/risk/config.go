package risk

import (
	"sort"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Tier is one step of the tiered take-profit table. Once the unrealized gain
// reaches Gain, the position exits when price has pulled back from its peak by
// more than Giveback. A zero Giveback exits as soon as Gain is reached.
type Tier struct {
	Gain     float64 `yaml:"gain" json:"gain" jsonschema:"title=Gain Threshold,description=Unrealized gain that arms the tier,exclusiveMinimum=0" validate:"gt=0"`
	Giveback float64 `yaml:"giveback" json:"giveback" jsonschema:"title=Giveback,description=Allowed pullback from the peak once armed,minimum=0" validate:"gte=0,lt=1"`
}

// Config holds the position sizing and exit rules of a run.
type Config struct {
	StopLossPct float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" jsonschema:"title=Stop Loss,description=Exit when price falls this fraction below entry,exclusiveMinimum=0,exclusiveMaximum=1,default=0.05" validate:"gt=0,lt=1"`
	// TrailingStopPct of 0 disables the trailing stop.
	TrailingStopPct       float64 `yaml:"trailing_stop_pct" json:"trailing_stop_pct" jsonschema:"title=Trailing Stop,description=Exit when price falls this fraction below the peak since entry (0 disables),minimum=0,default=0.06" validate:"gte=0,lt=1"`
	TrailingActivationPct float64 `yaml:"trailing_activation_pct" json:"trailing_activation_pct" jsonschema:"title=Trailing Activation,description=Unrealized gain that must be exceeded before the trailing stop is active,minimum=0,default=0" validate:"gte=0"`
	TakeProfitTiers       []Tier  `yaml:"take_profit_tiers" json:"take_profit_tiers" jsonschema:"title=Take Profit Tiers" validate:"dive"`
	// MaxHoldingBars of 0 disables the timeout exit.
	MaxHoldingBars int `yaml:"max_holding_bars" json:"max_holding_bars" jsonschema:"title=Max Holding Bars,description=Force an exit after this many bars (0 disables),minimum=0,default=0" validate:"gte=0"`
	// MinHoldingBars only delays the signal-driven exit; protective exits are never delayed.
	MinHoldingBars           int     `yaml:"min_holding_bars" json:"min_holding_bars" jsonschema:"title=Min Holding Bars,description=Bars to hold before a signal exit is honoured,minimum=0,default=0" validate:"gte=0"`
	SignalExitRequiresProfit bool    `yaml:"signal_exit_requires_profit" json:"signal_exit_requires_profit" jsonschema:"title=Signal Exit Requires Profit,description=Ignore signal exits while the position is under water,default=false"`
	PositionFraction         float64 `yaml:"position_fraction" json:"position_fraction" jsonschema:"title=Position Fraction,description=Fraction of cash committed on entry,exclusiveMinimum=0,maximum=1,default=1" validate:"gt=0,lte=1"`
	LotSize                  int64   `yaml:"lot_size" json:"lot_size" jsonschema:"title=Lot Size,description=Minimum tradable share increment,minimum=1,default=100" validate:"gte=1"`
}

// DefaultConfig returns a 5% stop, a 6% trailing stop and two take-profit tiers.
func DefaultConfig() Config {
	return Config{
		StopLossPct:     0.05,
		TrailingStopPct: 0.06,
		TakeProfitTiers: []Tier{
			{Gain: 0.15, Giveback: 0},
			{Gain: 0.08, Giveback: 0.03},
		},
		PositionFraction: 1,
		LotSize:          100,
	}
}

// Validate rejects configurations the state machine cannot honour.
func (c Config) Validate() error {
	if c.StopLossPct <= 0 || c.StopLossPct >= 1 {
		return errors.Newf(errors.ErrCodeInvalidStopLoss, "stop_loss_pct must be in (0, 1), got %f", c.StopLossPct)
	}

	if c.TrailingStopPct < 0 || c.TrailingStopPct >= 1 {
		return errors.Newf(errors.ErrCodeInvalidStopLoss, "trailing_stop_pct must be in [0, 1), got %f", c.TrailingStopPct)
	}

	if c.TrailingActivationPct < 0 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "trailing_activation_pct must not be negative, got %f", c.TrailingActivationPct)
	}

	seen := map[float64]bool{}

	for _, tier := range c.TakeProfitTiers {
		if tier.Gain <= 0 {
			return errors.Newf(errors.ErrCodeInvalidTakeProfit, "take-profit gain must be positive, got %f", tier.Gain)
		}

		if tier.Giveback < 0 || tier.Giveback >= 1 {
			return errors.Newf(errors.ErrCodeInvalidTakeProfit, "take-profit giveback must be in [0, 1), got %f", tier.Giveback)
		}

		if seen[tier.Gain] {
			return errors.Newf(errors.ErrCodeInvalidTakeProfit, "duplicate take-profit gain %f", tier.Gain)
		}

		seen[tier.Gain] = true
	}

	if c.MaxHoldingBars < 0 || c.MinHoldingBars < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "holding periods must not be negative")
	}

	if c.MaxHoldingBars > 0 && c.MinHoldingBars > c.MaxHoldingBars {
		return errors.Newf(errors.ErrCodeInvalidParameter, "min_holding_bars (%d) exceeds max_holding_bars (%d)", c.MinHoldingBars, c.MaxHoldingBars)
	}

	if c.PositionFraction <= 0 || c.PositionFraction > 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "position_fraction must be in (0, 1], got %f", c.PositionFraction)
	}

	if c.LotSize < 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "lot_size must be a positive integer, got %d", c.LotSize)
	}

	return nil
}

// sortedTiers returns the tiers ordered from the highest gain down.
func (c Config) sortedTiers() []Tier {
	tiers := make([]Tier, len(c.TakeProfitTiers))
	copy(tiers, c.TakeProfitTiers)

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Gain > tiers[j].Gain
	})

	return tiers
}
