package mocks

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type DataGeneratorTestSuite struct {
	suite.Suite
}

func TestDataGeneratorSuite(t *testing.T) {
	suite.Run(t, new(DataGeneratorTestSuite))
}

func (suite *DataGeneratorTestSuite) TestGenerate() {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 100

	bars := gen.Generate(config)

	suite.Len(bars, 100)
	suite.NoError(types.ValidateBars(bars))

	for i, bar := range bars {
		suite.Equal(config.Symbol, bar.Symbol)
		suite.Positive(bar.Open, "bar %d", i)
		suite.Positive(bar.Low, "bar %d", i)
		suite.GreaterOrEqual(bar.High, bar.Low, "bar %d", i)
		suite.True(bar.Amount.IsNone())

		if i > 0 {
			suite.Equal(config.Interval, bar.Time.Sub(bars[i-1].Time))
		}
	}
}

func (suite *DataGeneratorTestSuite) TestGenerateWithAmount() {
	config := DefaultConfig()
	config.Count = 10
	config.WithAmount = true

	for _, bar := range NewDataGenerator(7).Generate(config) {
		suite.True(bar.Amount.IsSome())
		suite.InDelta(bar.Close*bar.Volume, bar.Amount.Unwrap(), 0.01)
	}
}

func (suite *DataGeneratorTestSuite) TestReproducibility() {
	config := DefaultConfig()
	config.Count = 10

	suite.Equal(NewDataGenerator(42).Generate(config), NewDataGenerator(42).Generate(config))
	suite.NotEqual(NewDataGenerator(42).Generate(config), NewDataGenerator(123).Generate(config))
}

func (suite *DataGeneratorTestSuite) TestGenerateMultiSymbol() {
	symbols := []string{"600000.SH", "000001.SZ", "300750.SZ"}
	config := DefaultConfig()
	config.Count = 50

	data := NewDataGenerator(42).GenerateMultiSymbol(symbols, config)

	suite.Len(data, len(symbols))

	for _, symbol := range symbols {
		suite.Len(data[symbol], config.Count)
		suite.Equal(symbol, data[symbol][0].Symbol)
	}
}

func (suite *DataGeneratorTestSuite) TestFromCloses() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	bars := FromCloses("TEST", start, []float64{10, 10.5, 11}, 1000)

	suite.Len(bars, 3)
	suite.NoError(types.ValidateBars(bars))
	suite.Equal(start.AddDate(0, 0, 2), bars[2].Time)
	suite.Equal(10.5, bars[1].High)
	suite.Equal(1000.0, bars[2].Volume)
}

func (suite *DataGeneratorTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Equal("TEST", config.Symbol)
	suite.Equal(250, config.Count)
	suite.Equal(24*time.Hour, config.Interval)
	suite.Equal(10.0, config.InitialPrice)
}
