package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidStopLoss      ErrorCode = 102
	ErrCodeInvalidTakeProfit    ErrorCode = 103
	ErrCodeInvalidRuleSet       ErrorCode = 104
	ErrCodeInvalidOrder         ErrorCode = 105
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidMultiplier    ErrorCode = 111
	ErrCodeInvalidThreshold     ErrorCode = 112

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeInvalidBarSequence    ErrorCode = 203
	ErrCodeNoDataFound           ErrorCode = 204
	ErrCodeMarkerNotAvailable    ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeDuplicateSeries        ErrorCode = 303

	// Signal errors (400-499)
	ErrCodeUnknownCondition     ErrorCode = 400
	ErrCodeConditionUnavailable ErrorCode = 401
	ErrCodeVersionMismatch      ErrorCode = 404

	// Ledger errors (500-599)
	ErrCodeOrderFailed     ErrorCode = 500
	ErrCodeLedgerInvariant ErrorCode = 501

	// Backtest errors (600-699)
	ErrCodeBacktestStateNil     ErrorCode = 600
	ErrCodeBacktestInitFailed   ErrorCode = 601
	ErrCodeBacktestConfigError  ErrorCode = 602
	ErrCodeBacktestNoResultsDir ErrorCode = 607
	ErrCodeBacktestNoDatasource ErrorCode = 608
	ErrCodeBacktestWriteFailed  ErrorCode = 609

	// Collaborator errors (700-799)
	ErrCodeFetchBarsFailed    ErrorCode = 700
	ErrCodeNotificationFailed ErrorCode = 701

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)

// Category names the group a code belongs to, from its hundreds digit.
func (c ErrorCode) Category() string {
	switch c / 100 {
	case 0:
		return "general"
	case 1:
		return "validation"
	case 2:
		return "data"
	case 3:
		return "indicator"
	case 4:
		return "signal"
	case 5:
		return "ledger"
	case 6:
		return "backtest"
	case 7:
		return "collaborator"
	case 8:
		return "callback"
	default:
		return "unknown"
	}
}
