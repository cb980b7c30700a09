package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-quant/internal/types"
)

// All functions in this file are pure: they never modify their inputs and
// return a new Series of the same length.

// SMA is the arithmetic mean of the trailing window values.
// The first window-1 values are undefined, as is any window containing an undefined input.
func SMA(values Series, window int) Series {
	return rolling(values, window, func(w Series) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}

		return sum / float64(len(w))
	})
}

// StdDev is the sample standard deviation (n-1 divisor) of the trailing window
// values. A single-value window has no dispersion and yields 0.
func StdDev(values Series, window int) Series {
	return rolling(values, window, sampleStdDev)
}

// Highest is the maximum of the trailing window values.
func Highest(values Series, window int) Series {
	return rolling(values, window, func(w Series) float64 {
		highest := w[0]
		for _, v := range w[1:] {
			highest = math.Max(highest, v)
		}

		return highest
	})
}

// Lowest is the minimum of the trailing window values.
func Lowest(values Series, window int) Series {
	return rolling(values, window, func(w Series) float64 {
		lowest := w[0]
		for _, v := range w[1:] {
			lowest = math.Min(lowest, v)
		}

		return lowest
	})
}

// Sum is the sum of the trailing window values.
func Sum(values Series, window int) Series {
	return rolling(values, window, func(w Series) float64 {
		sum := 0.0
		for _, v := range w {
			sum += v
		}

		return sum
	})
}

// EMA is the exponential moving average with smoothing factor 2/(span+1).
// The recursion is seeded with the first defined value and the first span-1
// outputs after it are undefined.
func EMA(values Series, span int) Series {
	if span <= 0 {
		return NewSeries(len(values))
	}

	out := ewm(values, 2.0/float64(span+1))

	first := values.FirstDefined()
	if first < 0 {
		return out
	}

	return out.mask(first + span - 1)
}

// RSI uses the rolling mean of the last period gains and losses.
// The first period values are undefined. A zero average loss yields 100.
func RSI(closes Series, period int) Series {
	n := len(closes)
	gains := NewSeries(n)
	losses := NewSeries(n)

	for i := 1; i < n; i++ {
		diff := closes[i] - closes[i-1]
		gains[i] = math.Max(diff, 0)
		losses[i] = math.Max(-diff, 0)
	}

	avgGain := SMA(gains, period)
	avgLoss := SMA(losses, period)

	out := NewSeries(n)

	for i := range out {
		if !avgGain.Defined(i) || !avgLoss.Defined(i) {
			continue
		}

		if avgLoss[i] == 0 {
			out[i] = 100

			continue
		}

		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}

	return out
}

// MACD returns EMA(fast)-EMA(slow), its EMA(signal) and the histogram.
// The lines are computed from the first bar and masked afterwards: the MACD line is
// undefined before slow-1, the signal line and histogram before slow+signal-2.
func MACD(closes Series, fast, slow, signal int) (macd, signalLine, histogram Series) {
	n := len(closes)
	fastEMA := ewm(closes, 2.0/float64(fast+1))
	slowEMA := ewm(closes, 2.0/float64(slow+1))

	macd = NewSeries(n)
	for i := range macd {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine = ewm(macd, 2.0/float64(signal+1))

	histogram = NewSeries(n)
	for i := range histogram {
		histogram[i] = macd[i] - signalLine[i]
	}

	macd.mask(slow - 1)
	signalLine.mask(slow + signal - 2)
	histogram.mask(slow + signal - 2)

	return macd, signalLine, histogram
}

// kdjDecay is the weight kept by older values when smoothing KDJ, 1-1/3.
const kdjDecay = 2.0 / 3

// KDJ computes the stochastic K, D and J lines over period bars.
// RSV = 100*(close-lowestLow)/(highestHigh-lowestLow). K is the exponentially
// weighted mean of every RSV so far with weights (2/3)^age, normalised by the sum
// of the weights, so the first K equals the first RSV. D smooths K the same way
// and J = 3K-2D. A flat window repeats the previous RSV, or 50.
func KDJ(bars []types.Bar, period int) (k, d, j Series) {
	n := len(bars)
	highest := Highest(Highs(bars), period)
	lowest := Lowest(Lows(bars), period)

	k, d, j = NewSeries(n), NewSeries(n), NewSeries(n)
	prevRSV := 50.0

	var kSum, kWeight, dSum, dWeight float64

	for i := range bars {
		if !highest.Defined(i) || !lowest.Defined(i) {
			continue
		}

		rsv := prevRSV
		if spread := highest[i] - lowest[i]; spread != 0 {
			rsv = 100 * (bars[i].Close - lowest[i]) / spread
		}

		kSum = rsv + kdjDecay*kSum
		kWeight = 1 + kdjDecay*kWeight
		k[i] = kSum / kWeight

		dSum = k[i] + kdjDecay*dSum
		dWeight = 1 + kdjDecay*dWeight
		d[i] = dSum / dWeight

		j[i] = 3*k[i] - 2*d[i]

		prevRSV = rsv
	}

	return k, d, j
}

// BollingerBands returns middle = SMA(window) and middle ± k sample stddevs.
func BollingerBands(closes Series, window int, k float64) (upper, middle, lower Series) {
	middle = SMA(closes, window)
	std := StdDev(closes, window)

	upper, lower = NewSeries(len(closes)), NewSeries(len(closes))
	for i := range closes {
		if !middle.Defined(i) {
			continue
		}

		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]
	}

	return upper, middle, lower
}

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|). The first bar has
// no previous close and uses high-low.
func TrueRange(bars []types.Bar) Series {
	out := make(Series, len(bars))

	for i, bar := range bars {
		tr := bar.High - bar.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
		}

		out[i] = tr
	}

	return out
}

// ATR is the rolling mean of the true range.
func ATR(bars []types.Bar, period int) Series {
	return SMA(TrueRange(bars), period)
}

// DMI returns the +DI, -DI and ADX lines. Directional movement and true range are summed
// over period bars, so the DI lines start at index period; ADX is the period mean of DX
// and starts at 2*period-1. A zero denominator yields 0.
func DMI(bars []types.Bar, period int) (plusDI, minusDI, adx Series) {
	n := len(bars)
	plusDM, minusDM, tr := NewSeries(n), NewSeries(n), NewSeries(n)
	trueRange := TrueRange(bars)

	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low

		plusDM[i], minusDM[i] = 0, 0
		if up > down && up > 0 {
			plusDM[i] = up
		}

		if down > up && down > 0 {
			minusDM[i] = down
		}

		tr[i] = trueRange[i]
	}

	sumPlus := Sum(plusDM, period)
	sumMinus := Sum(minusDM, period)
	sumTR := Sum(tr, period)

	plusDI, minusDI = NewSeries(n), NewSeries(n)
	dx := NewSeries(n)

	for i := range bars {
		if !sumTR.Defined(i) {
			continue
		}

		plusDI[i], minusDI[i] = 0, 0
		if sumTR[i] != 0 {
			plusDI[i] = 100 * sumPlus[i] / sumTR[i]
			minusDI[i] = 100 * sumMinus[i] / sumTR[i]
		}

		dx[i] = 0
		if total := plusDI[i] + minusDI[i]; total != 0 {
			dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / total
		}
	}

	return plusDI, minusDI, SMA(dx, period)
}

// TrendStrength is |fast-slow|/slow*100, the spread between two moving averages.
func TrendStrength(fast, slow Series) Series {
	out := NewSeries(len(fast))

	for i := range out {
		if !fast.Defined(i) || !slow.Defined(i) || slow[i] == 0 {
			continue
		}

		out[i] = math.Abs(fast[i]-slow[i]) / slow[i] * 100
	}

	return out
}

func rolling(values Series, window int, fn func(Series) float64) Series {
	out := NewSeries(len(values))
	if window <= 0 {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		w := values[i-window+1 : i+1]
		if hasUndefined(w) {
			continue
		}

		out[i] = fn(w)
	}

	return out
}

// ewm runs the recursion out = alpha*x + (1-alpha)*prev seeded with the first defined value.
func ewm(values Series, alpha float64) Series {
	out := NewSeries(len(values))
	started := false
	prev := 0.0

	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}

		if !started {
			prev = v
			started = true
		} else {
			prev = alpha*v + (1-alpha)*prev
		}

		out[i] = prev
	}

	return out
}

func sampleStdDev(w Series) float64 {
	if len(w) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range w {
		mean += v
	}

	mean /= float64(len(w))

	variance := 0.0
	for _, v := range w {
		variance += (v - mean) * (v - mean)
	}

	return math.Sqrt(variance / float64(len(w)-1))
}

func hasUndefined(w Series) bool {
	for _, v := range w {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
