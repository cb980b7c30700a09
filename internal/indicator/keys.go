package indicator

// Series keys available in a Bundle. The raw bar fields are always present; the
// rest exist only when the corresponding indicator is registered.
const (
	KeyOpen     = "open"
	KeyHigh     = "high"
	KeyLow      = "low"
	KeyClose    = "close"
	KeyVolume   = "volume"
	KeyTurnover = "turnover"

	KeyMAFast        = "ma_fast"
	KeyMASlow        = "ma_slow"
	KeyMALong        = "ma_long"
	KeyVolumeMA      = "volume_ma"
	KeyRSI           = "rsi"
	KeyMACD          = "macd"
	KeyMACDSignal    = "macd_signal"
	KeyMACDHist      = "macd_hist"
	KeyKDJK          = "kdj_k"
	KeyKDJD          = "kdj_d"
	KeyKDJJ          = "kdj_j"
	KeyBBUpper       = "bb_upper"
	KeyBBMiddle      = "bb_middle"
	KeyBBLower       = "bb_lower"
	KeyATR           = "atr"
	KeyPDI           = "pdi"
	KeyMDI           = "mdi"
	KeyADX           = "adx"
	KeyTrendStrength = "trend_strength"
)
