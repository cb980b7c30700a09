package datasource

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const sampleCSV = `time,symbol,open,high,low,close,volume,amount
2024-01-02,AAA,10,10.5,9.8,10.2,1000,10200
2024-01-03,AAA,10.2,10.8,10.1,10.6,1200,12720
2024-01-04,AAA,10.6,10.9,10.3,10.4,900,9360
2024-01-02,BBB,20,20.5,19.5,20.1,500,10050
2024-01-03,BBB,20.1,20.3,19.9,20.0,700,14000
`

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	ds *DuckDBDataSource
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	log, err := logger.NewLogger()
	suite.Require().NoError(err)

	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(sampleCSV), 0644))

	suite.ds, err = NewDataSource(":memory:", log)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ds.Initialize(path))
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.ds.Close())
}

func (suite *DuckDBDataSourceTestSuite) TestSymbols() {
	symbols, err := suite.ds.Symbols(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"AAA", "BBB"}, symbols)
}

func (suite *DuckDBDataSourceTestSuite) TestFetchBars() {
	bars, err := suite.ds.FetchBars(context.Background(), "AAA", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.Equal("AAA", bars[0].Symbol)
	suite.Equal(2024, bars[0].Time.Year())
	suite.Equal(time.January, bars[0].Time.Month())
	suite.Equal(2, bars[0].Time.Day())
	suite.InDelta(10.2, bars[0].Close, 1e-9)
	suite.InDelta(1000, bars[0].Volume, 1e-9)
	suite.True(bars[0].Amount.IsSome())
	suite.InDelta(10200, bars[0].Amount.Unwrap(), 1e-9)

	suite.True(bars[1].Time.After(bars[0].Time))
	suite.True(bars[2].Time.After(bars[1].Time))
}

func (suite *DuckDBDataSourceTestSuite) TestFetchBarsInRange() {
	start := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 23, 0, 0, 0, time.UTC)

	bars, err := suite.ds.FetchBars(context.Background(), "AAA", optional.Some(start), optional.Some(end))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.InDelta(10.6, bars[0].Close, 1e-9)
}

func (suite *DuckDBDataSourceTestSuite) TestFetchBarsUnknownSymbol() {
	_, err := suite.ds.FetchBars(context.Background(), "ZZZ", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *DuckDBDataSourceTestSuite) TestFetchBarsWithoutAmountColumn() {
	path := filepath.Join(suite.T().TempDir(), "plain.csv")
	content := "time,symbol,open,high,low,close,volume\n2024-01-02,CCC,5,5.2,4.9,5.1,300\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	suite.Require().NoError(suite.ds.Initialize(path))

	bars, err := suite.ds.FetchBars(context.Background(), "CCC", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.True(bars[0].Amount.IsNone())
	suite.InDelta(5.1*300, bars[0].Turnover(), 1e-9)
}

func (suite *DuckDBDataSourceTestSuite) TestFetchBarsRejectsDuplicateDates() {
	path := filepath.Join(suite.T().TempDir(), "dup.csv")
	content := "time,symbol,open,high,low,close,volume\n2024-01-02,DUP,5,5.2,4.9,5.1,300\n2024-01-02,DUP,5,5.2,4.9,5.1,300\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	suite.Require().NoError(suite.ds.Initialize(path))

	_, err := suite.ds.FetchBars(context.Background(), "DUP", optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBarSequence))
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	err := suite.ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.parquet"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

type InMemoryDataSourceTestSuite struct {
	suite.Suite
}

func TestInMemoryDataSourceSuite(t *testing.T) {
	suite.Run(t, new(InMemoryDataSourceTestSuite))
}

func dailyBars(closes ...float64) []types.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}

	return bars
}

func (suite *InMemoryDataSourceTestSuite) TestAddAndFetch() {
	ds := NewInMemoryDataSource()
	suite.Require().NoError(ds.Add("AAA", dailyBars(1, 2, 3, 4)))
	suite.Require().NoError(ds.Add("BBB", dailyBars(5, 6)))

	symbols, err := ds.Symbols(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"AAA", "BBB"}, symbols)

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	bars, err := ds.FetchBars(context.Background(), "AAA", optional.Some(start), optional.Some(end))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)
	suite.Equal(2.0, bars[0].Close)
	suite.Equal(3.0, bars[1].Close)
	suite.Equal("AAA", bars[0].Symbol)
	suite.NoError(ds.Close())
}

func (suite *InMemoryDataSourceTestSuite) TestAddRejectsUnorderedBars() {
	bars := dailyBars(1, 2, 3)
	bars[1], bars[2] = bars[2], bars[1]

	err := NewInMemoryDataSource().Add("AAA", bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBarSequence))
}

func (suite *InMemoryDataSourceTestSuite) TestAddRejectsNonFiniteBars() {
	bars := dailyBars(1, 2, 3)
	bars[2].Close = math.NaN()

	err := NewInMemoryDataSource().Add("AAA", bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBarSequence))
	suite.Contains(err.Error(), "non-finite close")
}

func (suite *InMemoryDataSourceTestSuite) TestFetchUnknownSymbol() {
	_, err := NewInMemoryDataSource().FetchBars(context.Background(), "ZZZ", optional.None[time.Time](), optional.None[time.Time]())
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *InMemoryDataSourceTestSuite) TestFetchHonorsCancelledContext() {
	ds := NewInMemoryDataSource()
	suite.Require().NoError(ds.Add("AAA", dailyBars(1, 2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ds.FetchBars(ctx, "AAA", optional.None[time.Time](), optional.None[time.Time]())
	suite.ErrorIs(err, context.Canceled)
}
