package signal

import (
	"github.com/rxtech-lab/argo-quant/internal/indicator"
)

// Score rates a bar from 0 to 100: trend 30, RSI 20, MACD 20, volume 20 and
// volatility 10. A component whose series is missing or undefined scores 0.
func Score(cur indicator.Snapshot, p Params) float64 {
	score := 0.0

	if cur.Defined(indicator.KeyClose, indicator.KeyMALong) && cur.Value(indicator.KeyClose) > cur.Value(indicator.KeyMALong) {
		score += 15
	}

	if cur.Defined(indicator.KeyMAFast, indicator.KeyMASlow) && cur.Value(indicator.KeyMAFast) > cur.Value(indicator.KeyMASlow) {
		score += 15
	}

	if cur.Defined(indicator.KeyRSI) {
		rsi := cur.Value(indicator.KeyRSI)

		switch {
		case rsi >= 40 && rsi <= 60:
			score += 20
		case rsi >= 30 && rsi <= 70:
			score += 10
		}
	}

	if cur.Defined(indicator.KeyMACD, indicator.KeyMACDSignal) && cur.Value(indicator.KeyMACD) > cur.Value(indicator.KeyMACDSignal) {
		score += 10
	}

	if cur.Defined(indicator.KeyMACDHist) && cur.Value(indicator.KeyMACDHist) > 0 {
		score += 10
	}

	if cur.Defined(indicator.KeyVolume, indicator.KeyVolumeMA) && cur.Value(indicator.KeyVolume) > cur.Value(indicator.KeyVolumeMA) {
		score += 20
	}

	if cur.Defined(indicator.KeyATR, indicator.KeyClose) && cur.Value(indicator.KeyClose) > 0 &&
		cur.Value(indicator.KeyATR)/cur.Value(indicator.KeyClose) <= p.MaxVolatility {
		score += 10
	}

	return score
}
