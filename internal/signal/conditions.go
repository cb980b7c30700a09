package signal

import (
	"github.com/rxtech-lab/argo-quant/internal/indicator"
)

// Condition names understood by the default registry.
const (
	ConditionGoldenCross          = "golden_cross"
	ConditionGoldenCrossLong      = "golden_cross_long"
	ConditionDeathCross           = "death_cross"
	ConditionPriceAboveLongMA     = "price_above_long_ma"
	ConditionPriceBelowFastMA     = "price_below_fast_ma"
	ConditionUptrend              = "uptrend"
	ConditionMAAlignment          = "ma_alignment"
	ConditionTrendStrength        = "trend_strength"
	ConditionBullishCandle        = "bullish_candle"
	ConditionStrongBullishCandle  = "strong_bullish_candle"
	ConditionVolumeConfirm        = "volume_confirm"
	ConditionVolumeDrop           = "volume_drop"
	ConditionRSIOversold          = "rsi_oversold"
	ConditionRSIOversoldRebound   = "rsi_oversold_rebound"
	ConditionRSIOverbought        = "rsi_overbought"
	ConditionRSIOverboughtFall    = "rsi_overbought_fall"
	ConditionMACDGoldenCross      = "macd_golden_cross"
	ConditionMACDDeathCross       = "macd_death_cross"
	ConditionMACDHistTurnPositive = "macd_hist_turn_positive"
	ConditionMACDHistTurnNegative = "macd_hist_turn_negative"
	ConditionMACDBullishTurn      = "macd_bullish_turn"
	ConditionMACDRising           = "macd_rising"
	ConditionBollingerBounce      = "bollinger_bounce"
	ConditionBollingerUpperTouch  = "bollinger_upper_touch"
	ConditionKDJGoldenCross       = "kdj_golden_cross"
	ConditionKDJDeathCross        = "kdj_death_cross"
	ConditionKDJLow               = "kdj_low"
	ConditionKDJHigh              = "kdj_high"
	ConditionDMIBullish           = "dmi_bullish"
	ConditionDMIBearish           = "dmi_bearish"
	ConditionPriceInRange         = "price_in_range"
)

// crossAbove is true when a moves from at-or-below b to strictly above it.
func crossAbove(prev, cur indicator.Snapshot, a, b string) bool {
	return prev.Value(a) <= prev.Value(b) && cur.Value(a) > cur.Value(b)
}

// crossBelow is true when a moves from at-or-above b to strictly below it.
func crossBelow(prev, cur indicator.Snapshot, a, b string) bool {
	return prev.Value(a) >= prev.Value(b) && cur.Value(a) < cur.Value(b)
}

//nolint:funlen // one entry per condition
func builtinConditions() []Condition {
	const (
		open     = indicator.KeyOpen
		closeKey = indicator.KeyClose
		volume   = indicator.KeyVolume
		fast     = indicator.KeyMAFast
		slow     = indicator.KeyMASlow
		long     = indicator.KeyMALong
		volumeMA = indicator.KeyVolumeMA
		rsi      = indicator.KeyRSI
		macd     = indicator.KeyMACD
		macdSig  = indicator.KeyMACDSignal
		macdHist = indicator.KeyMACDHist
		bbUpper  = indicator.KeyBBUpper
		bbMiddle = indicator.KeyBBMiddle
		bbLower  = indicator.KeyBBLower
		kdjK     = indicator.KeyKDJK
		kdjD     = indicator.KeyKDJD
		pdi      = indicator.KeyPDI
		mdi      = indicator.KeyMDI
		adx      = indicator.KeyADX
		trendKey = indicator.KeyTrendStrength
	)

	return []Condition{
		{
			Name:     ConditionGoldenCross,
			Requires: []string{fast, slow},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossAbove(prev, cur, fast, slow)
			},
		},
		{
			Name:     ConditionGoldenCrossLong,
			Requires: []string{slow, long},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossAbove(prev, cur, slow, long)
			},
		},
		{
			Name:     ConditionDeathCross,
			Requires: []string{fast, slow},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossBelow(prev, cur, fast, slow)
			},
		},
		{
			Name:     ConditionPriceAboveLongMA,
			Requires: []string{closeKey, long},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(closeKey) > cur.Value(long)
			},
		},
		{
			Name:     ConditionPriceBelowFastMA,
			Requires: []string{closeKey, fast},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(closeKey) < cur.Value(fast)
			},
		},
		{
			Name:     ConditionUptrend,
			Requires: []string{closeKey, fast, slow, long},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				l := cur.Value(long)

				return cur.Value(closeKey) > l && cur.Value(fast) > l && cur.Value(slow) > l
			},
		},
		{
			Name:     ConditionMAAlignment,
			Requires: []string{fast, slow, long},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(fast) > cur.Value(slow) && cur.Value(slow) > cur.Value(long)
			},
		},
		{
			Name:     ConditionTrendStrength,
			Requires: []string{trendKey},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(trendKey) > p.TrendStrengthThreshold
			},
		},
		{
			Name:     ConditionBullishCandle,
			Requires: []string{open, closeKey},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(closeKey) > cur.Value(open)
			},
		},
		{
			Name:     ConditionStrongBullishCandle,
			Requires: []string{open, closeKey},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				o := cur.Value(open)

				return o > 0 && (cur.Value(closeKey)-o)/o > p.StrongCandlePct
			},
		},
		{
			Name:     ConditionVolumeConfirm,
			Requires: []string{volume, volumeMA},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(volume) > cur.Value(volumeMA)*p.VolumeRatio
			},
		},
		{
			Name:     ConditionVolumeDrop,
			Requires: []string{volume, volumeMA},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(volume) < cur.Value(volumeMA)*p.VolumeDropRatio
			},
		},
		{
			Name:     ConditionRSIOversold,
			Requires: []string{rsi},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(rsi) < p.RSIOversold
			},
		},
		{
			Name:     ConditionRSIOversoldRebound,
			Requires: []string{rsi},
			Eval: func(prev, cur indicator.Snapshot, p Params) bool {
				return prev.Value(rsi) < p.RSIOversold && cur.Value(rsi) >= p.RSIOversold && cur.Value(rsi) < 50
			},
		},
		{
			Name:     ConditionRSIOverbought,
			Requires: []string{rsi},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(rsi) > p.RSIOverbought
			},
		},
		{
			Name:     ConditionRSIOverboughtFall,
			Requires: []string{rsi},
			Eval: func(prev, cur indicator.Snapshot, p Params) bool {
				return prev.Value(rsi) > p.RSIOverbought && cur.Value(rsi) <= p.RSIOverbought
			},
		},
		{
			Name:     ConditionMACDGoldenCross,
			Requires: []string{macd, macdSig},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossAbove(prev, cur, macd, macdSig)
			},
		},
		{
			Name:     ConditionMACDDeathCross,
			Requires: []string{macd, macdSig},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossBelow(prev, cur, macd, macdSig)
			},
		},
		{
			Name:     ConditionMACDHistTurnPositive,
			Requires: []string{macdHist},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return prev.Value(macdHist) <= 0 && cur.Value(macdHist) > 0
			},
		},
		{
			Name:     ConditionMACDHistTurnNegative,
			Requires: []string{macdHist},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return prev.Value(macdHist) >= 0 && cur.Value(macdHist) < 0
			},
		},
		{
			Name:     ConditionMACDBullishTurn,
			Requires: []string{macd, macdSig, macdHist},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossAbove(prev, cur, macd, macdSig) || (prev.Value(macdHist) <= 0 && cur.Value(macdHist) > 0)
			},
		},
		{
			Name:     ConditionMACDRising,
			Requires: []string{macd},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(macd) > prev.Value(macd)
			},
		},
		{
			Name:     ConditionBollingerBounce,
			Requires: []string{closeKey, bbLower, bbMiddle},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return prev.Value(closeKey) <= prev.Value(bbLower) &&
					cur.Value(closeKey) > cur.Value(bbLower) &&
					cur.Value(closeKey) < cur.Value(bbMiddle)
			},
		},
		{
			Name:     ConditionBollingerUpperTouch,
			Requires: []string{closeKey, bbUpper},
			Eval: func(_, cur indicator.Snapshot, _ Params) bool {
				return cur.Value(closeKey) >= cur.Value(bbUpper)
			},
		},
		{
			Name:     ConditionKDJGoldenCross,
			Requires: []string{kdjK, kdjD},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossAbove(prev, cur, kdjK, kdjD)
			},
		},
		{
			Name:     ConditionKDJDeathCross,
			Requires: []string{kdjK, kdjD},
			Eval: func(prev, cur indicator.Snapshot, _ Params) bool {
				return crossBelow(prev, cur, kdjK, kdjD)
			},
		},
		{
			Name:     ConditionKDJLow,
			Requires: []string{kdjK, kdjD},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(kdjK) < p.KDJLow && cur.Value(kdjD) < p.KDJLow
			},
		},
		{
			Name:     ConditionKDJHigh,
			Requires: []string{kdjK, kdjD},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(kdjK) > p.KDJHigh && cur.Value(kdjD) > p.KDJHigh
			},
		},
		{
			Name:     ConditionDMIBullish,
			Requires: []string{pdi, mdi, adx},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(pdi) > cur.Value(mdi) && cur.Value(adx) > p.ADXThreshold
			},
		},
		{
			Name:     ConditionDMIBearish,
			Requires: []string{pdi, mdi, adx},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				return cur.Value(pdi) < cur.Value(mdi) && cur.Value(adx) > p.ADXThreshold
			},
		},
		{
			Name:     ConditionPriceInRange,
			Requires: []string{closeKey},
			Eval: func(_, cur indicator.Snapshot, p Params) bool {
				c := cur.Value(closeKey)
				if c < p.PriceMin {
					return false
				}

				return p.PriceMax <= 0 || c <= p.PriceMax
			},
		},
	}
}
