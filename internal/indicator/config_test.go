package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfigRegistersEverything() {
	registry, err := NewRegistryFromConfig(DefaultConfig())
	suite.Require().NoError(err)

	suite.Equal([]string{
		KeyADX, KeyATR, KeyBBMiddle, KeyKDJK, KeyMAFast, KeyMALong, KeyMASlow, KeyMACD, KeyRSI, KeyTrendStrength, KeyVolumeMA,
	}, registry.ListIndicators())
}

func (suite *ConfigTestSuite) TestMinimalConfig() {
	registry, err := NewRegistryFromConfig(Config{MAFast: 3, MASlow: 5})
	suite.Require().NoError(err)
	suite.Equal([]string{KeyMAFast, KeyMASlow}, registry.ListIndicators())
	suite.Equal(4, registry.Lookback())
}

func (suite *ConfigTestSuite) TestInvalidConfigs() {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.ErrorCode
	}{
		{"partial macd", func(c *Config) { c.MACDSignal = 0 }, errors.ErrCodeInvalidPeriod},
		{"inverted macd", func(c *Config) { c.MACDFast, c.MACDSlow = 26, 12 }, errors.ErrCodeInvalidPeriod},
		{"bollinger without width", func(c *Config) { c.BollingerK = 0 }, errors.ErrCodeInvalidMultiplier},
		{"inverted trend strength", func(c *Config) { c.MAFast, c.MASlow = 10, 5 }, errors.ErrCodeInvalidConfiguration},
		{"zero fast ma", func(c *Config) { c.MAFast = 0 }, errors.ErrCodeInvalidConfiguration},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			_, err := NewRegistryFromConfig(cfg)
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, tc.code), "unexpected error %v", err)
		})
	}
}
