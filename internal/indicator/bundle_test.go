package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BundleTestSuite struct {
	suite.Suite
}

func TestBundleSuite(t *testing.T) {
	suite.Run(t, new(BundleTestSuite))
}

type failingIndicator struct {
	MAIndicator
}

func (f *failingIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	return nil, errors.New(errors.ErrCodeUnknown, "boom")
}

func (suite *BundleTestSuite) TestComputeDefaultConfig() {
	registry, err := NewRegistryFromConfig(DefaultConfig())
	suite.Require().NoError(err)

	bars := barsFromCloses(wave(60)...)
	bundle, err := Compute(bars, registry)
	suite.Require().NoError(err)

	suite.Equal(60, bundle.Len())
	suite.Equal(33, bundle.Lookback())

	for _, key := range []string{
		KeyClose, KeyVolume, KeyTurnover, KeyMAFast, KeyMASlow, KeyMALong, KeyVolumeMA, KeyRSI,
		KeyMACD, KeyMACDSignal, KeyMACDHist, KeyKDJK, KeyKDJD, KeyKDJJ,
		KeyBBUpper, KeyBBMiddle, KeyBBLower, KeyATR, KeyPDI, KeyMDI, KeyADX, KeyTrendStrength,
	} {
		suite.True(bundle.Has(key), "missing %s", key)
	}

	closes, ok := bundle.Series(KeyClose)
	suite.True(ok)
	suite.Equal(bars[10].Close, closes[10])
}

func (suite *BundleTestSuite) TestSnapshot() {
	registry := NewIndicatorRegistry()
	ma := NewMA(KeyMAFast)
	suite.Require().NoError(ma.Config(3))
	suite.Require().NoError(registry.RegisterIndicator(ma))

	bundle, err := Compute(barsFromCloses(1, 2, 3, 4), registry)
	suite.Require().NoError(err)

	early := bundle.Snapshot(1)
	suite.False(early.Defined(KeyMAFast))
	suite.True(early.Defined(KeyClose))

	snap := bundle.Snapshot(3)
	suite.Equal(3, snap.Index)
	suite.Equal(4.0, snap.Bar.Close)
	suite.Equal(3.0, snap.Value(KeyMAFast))
	suite.True(snap.Defined(KeyMAFast, KeyClose))
	suite.True(math.IsNaN(snap.Value("unknown")))
	suite.False(snap.Defined("unknown"))

	outOfRange := bundle.Snapshot(10)
	suite.False(outOfRange.Defined(KeyClose))
}

func (suite *BundleTestSuite) TestComputeWrapsIndicatorFailure() {
	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(&failingIndicator{MAIndicator{key: "broken", period: 2}}))

	_, err := Compute(barsFromCloses(1, 2, 3), registry)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
}

func (suite *BundleTestSuite) TestComputeRejectsRawKeyCollision() {
	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(NewMA(KeyClose)))

	_, err := Compute(barsFromCloses(1, 2, 3), registry)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateSeries))
}
