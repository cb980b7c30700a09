package indicator

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/suite"
)

// TalibTestSuite cross-checks the indicators against TA-Lib.
type TalibTestSuite struct {
	suite.Suite
	closes []float64
}

func TestTalibSuite(t *testing.T) {
	suite.Run(t, new(TalibTestSuite))
}

func (suite *TalibTestSuite) SetupTest() {
	suite.closes = wave(120)
}

func (suite *TalibTestSuite) TestSMA() {
	for _, period := range []int{5, 10, 20, 60} {
		expected := talib.Sma(suite.closes, period)
		actual := SMA(suite.closes, period)

		for i := period - 1; i < len(suite.closes); i++ {
			suite.InDelta(expected[i], actual[i], 1e-9, "period %d index %d", period, i)
		}
	}
}

func (suite *TalibTestSuite) TestBollingerBands() {
	expUpper, expMiddle, expLower := talib.BBands(suite.closes, 20, 2, 2, talib.SMA)
	upper, middle, lower := BollingerBands(suite.closes, 20, 2)

	// TA-Lib uses the population stddev, the bands here use the sample stddev
	scale := math.Sqrt(20.0 / 19.0)

	for i := 19; i < len(suite.closes); i++ {
		suite.InDelta(expMiddle[i], middle[i], 1e-6)
		suite.InDelta(expMiddle[i]+(expUpper[i]-expMiddle[i])*scale, upper[i], 1e-6)
		suite.InDelta(expMiddle[i]-(expMiddle[i]-expLower[i])*scale, lower[i], 1e-6)
	}
}

func (suite *TalibTestSuite) TestTrueRange() {
	bars := barsFromCloses(suite.closes...)
	for i := range bars {
		bars[i].High = bars[i].Close + float64(i%3)
		bars[i].Low = bars[i].Close - float64(i%4)
	}

	expected := talib.TRange(Highs(bars), Lows(bars), Closes(bars))
	actual := TrueRange(bars)

	// TA-Lib leaves the first bar empty since it has no previous close.
	for i := 1; i < len(bars); i++ {
		suite.InDelta(expected[i], actual[i], 1e-9)
	}
}
