package engine

import (
	"errors"
	"testing"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackWithProgress() {
	var progress []int
	callback := OnProcessDataCallback(func(current int, total int) error {
		progress = append(progress, current)
		return nil
	})

	for i := 1; i <= 5; i++ {
		err := callback(i, 5)
		suite.NoError(err)
	}

	suite.Equal([]int{1, 2, 3, 4, 5}, progress)
}

func (suite *EngineTestSuite) TestOnTradeCallbackCanAbort() {
	abort := errors.New("stop")
	callback := OnTradeCallback(func(trade types.Trade) error {
		if trade.Action == types.ActionSell {
			return abort
		}

		return nil
	})

	suite.NoError(callback(types.Trade{Action: types.ActionBuy}))
	suite.ErrorIs(callback(types.Trade{Action: types.ActionSell}), abort)
}

func (suite *EngineTestSuite) TestLifecycleCallbacksZeroValue() {
	var callbacks LifecycleCallbacks

	suite.Nil(callbacks.OnRunStart)
	suite.Nil(callbacks.OnProcessData)
	suite.Nil(callbacks.OnTrade)
	suite.Nil(callbacks.OnRunEnd)
}
