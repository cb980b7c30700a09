package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestConstructors() {
	cause := errors.New("disk full")

	tests := []struct {
		name    string
		err     *Error
		code    ErrorCode
		message string
		cause   error
	}{
		{"new", New(ErrCodeInvalidConfiguration, "initial_capital must be positive"), ErrCodeInvalidConfiguration, "initial_capital must be positive", nil},
		{"newf", Newf(ErrCodeUnknownCondition, "unknown condition %s", "moon_phase"), ErrCodeUnknownCondition, "unknown condition moon_phase", nil},
		{"wrap", Wrap(ErrCodeBacktestWriteFailed, "failed to write stats", cause), ErrCodeBacktestWriteFailed, "failed to write stats", cause},
		{"wrapf", Wrapf(ErrCodeFetchBarsFailed, cause, "failed to fetch bars of %s", "600000.SH"), ErrCodeFetchBarsFailed, "failed to fetch bars of 600000.SH", cause},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.code, tc.err.Code)
			suite.Equal(tc.message, tc.err.Message)
			suite.Equal(tc.cause, tc.err.Cause)
		})
	}
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[101 validation] stop_loss_pct must be below 1", New(ErrCodeInvalidConfiguration, "stop_loss_pct must be below 1").Error())
	suite.Equal("[501 ledger] cash went negative", New(ErrCodeLedgerInvariant, "cash went negative").Error())

	err := Wrap(ErrCodeQueryFailed, "failed to read bars", errors.New("no such table"))
	suite.Equal("[202 data] failed to read bars: no such table", err.Error())
}

func (suite *ErrorTestSuite) TestCauseIsReachable() {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNotificationFailed, "webhook failed", cause)

	suite.ErrorIs(err, cause)
	suite.Nil(New(ErrCodeInvalidOrder, "bad order").Unwrap())

	var coded *Error
	suite.Require().ErrorAs(fmt.Errorf("screen: %w", err), &coded)
	suite.Equal(ErrCodeNotificationFailed, coded.Code)
}

func (suite *ErrorTestSuite) TestGetCodeUsesOutermostCode() {
	inner := New(ErrCodeInvalidBarSequence, "bars out of order")
	outer := Wrap(ErrCodeFetchBarsFailed, "failed to fetch bars", inner)

	suite.Equal(ErrCodeFetchBarsFailed, GetCode(outer))
	suite.Equal(ErrCodeFetchBarsFailed, GetCode(fmt.Errorf("run: %w", outer)))
	suite.True(HasCode(outer, ErrCodeFetchBarsFailed))
	suite.False(HasCode(outer, ErrCodeInvalidBarSequence))
}

func (suite *ErrorTestSuite) TestGetCodeOfForeignErrors() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestCategory() {
	tests := map[ErrorCode]string{
		ErrCodeUnknown:              "general",
		ErrCodeInvalidParameter:     "validation",
		ErrCodeInvalidBarSequence:   "data",
		ErrCodeIndicatorCalculation: "indicator",
		ErrCodeUnknownCondition:     "signal",
		ErrCodeLedgerInvariant:      "ledger",
		ErrCodeBacktestConfigError:  "backtest",
		ErrCodeFetchBarsFailed:      "collaborator",
		ErrCodeCallbackFailed:       "callback",
		ErrorCode(950):              "unknown",
	}

	for code, category := range tests {
		suite.Equal(category, code.Category(), "code %d", code)
	}
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(27, 20, "600519.SH")

	suite.Equal("insufficient bars for 600519.SH: need at least 27 to cover the indicator warm-up, got 20", err.Error())
	suite.Equal(7, err.Missing())
	suite.True(IsInsufficientDataError(err))
	suite.Equal(ErrCodeInsufficientData, GetCode(err))

	suite.Equal("insufficient bars: need at least 6 to cover the indicator warm-up, got 8",
		NewInsufficientDataError(6, 8, "").Error())
	suite.Equal(0, NewInsufficientDataError(6, 8, "").Missing())
}

func (suite *ErrorTestSuite) TestInsufficientDataErrorWrapped() {
	err := Wrap(ErrCodeBacktestInitFailed, "run aborted", NewInsufficientDataError(22, 10, "000001.SZ"))

	suite.True(IsInsufficientDataError(err))
	suite.Equal(ErrCodeBacktestInitFailed, GetCode(err))

	suite.False(IsInsufficientDataError(errors.New("plain")))
	suite.False(IsInsufficientDataError(New(ErrCodeInvalidParameter, "bad")))
	suite.False(IsInsufficientDataError(nil))
}
