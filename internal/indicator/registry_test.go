package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	registry := NewIndicatorRegistry()

	suite.NoError(registry.RegisterIndicator(NewRSI()))
	suite.NoError(registry.RegisterIndicator(NewMA(KeyMAFast)))

	ind, err := registry.GetIndicator(KeyRSI)
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeRSI, ind.Name())

	suite.Equal([]string{KeyMAFast, KeyRSI}, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestRegisterDuplicateKey() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(NewMA(KeyMAFast)))

	err := registry.RegisterIndicator(NewMA(KeyMAFast))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestRegisterOverlappingOutputs() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(NewMACD()))

	err := registry.RegisterIndicator(NewEMA(KeyMACDSignal))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateSeries))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator("missing")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestRemove() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(NewATR()))

	suite.NoError(registry.RemoveIndicator(KeyATR))
	suite.Empty(registry.ListIndicators())
	suite.Error(registry.RemoveIndicator(KeyATR))
}

func (suite *RegistryTestSuite) TestLookback() {
	registry := NewIndicatorRegistry()
	suite.Equal(0, registry.Lookback())

	suite.NoError(registry.RegisterIndicator(NewMA(KeyMAFast)))
	suite.Equal(19, registry.Lookback())

	suite.NoError(registry.RegisterIndicator(NewMACD()))
	suite.Equal(33, registry.Lookback())

	suite.NoError(registry.RegisterIndicator(NewDMI()))
	suite.Equal(33, registry.Lookback())
}
