// Package errors carries the coded errors returned across the backtest engine.
//
// Every failure that callers may branch on is an *Error with an ErrorCode. The
// hundreds digit of a code names its category (see ErrorCode.Category). Bar
// series that are too short for the configured indicators fail with an
// *InsufficientDataError instead, so screeners can tell "not enough history"
// apart from broken input.
//
//	err := errors.Newf(errors.ErrCodeUnknownCondition, "unknown condition %s", name)
//	if errors.HasCode(err, errors.ErrCodeInvalidRuleSet) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a failure tagged with an ErrorCode and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags cause with code. The cause stays reachable through errors.Is/As.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error formats as "[code category] message: cause".
func (e *Error) Error() string {
	prefix := fmt.Sprintf("[%d %s] %s", e.Code, e.Code.Category(), e.Message)
	if e.Cause == nil {
		return prefix
	}

	return prefix + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the outermost *Error in err's chain. An
// *InsufficientDataError without a coded wrapper reports ErrCodeInsufficientData,
// and anything else reports ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	if IsInsufficientDataError(err) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

// HasCode reports whether GetCode(err) is code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError reports a bar series shorter than the indicator
// warm-up window plus the two-bar signal window.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
}

func NewInsufficientDataError(required, actual int, symbol string) *InsufficientDataError {
	return &InsufficientDataError{Required: required, Actual: actual, Symbol: symbol}
}

func (e *InsufficientDataError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("insufficient bars: need at least %d to cover the indicator warm-up, got %d", e.Required, e.Actual)
	}

	return fmt.Sprintf("insufficient bars for %s: need at least %d to cover the indicator warm-up, got %d", e.Symbol, e.Required, e.Actual)
}

// Missing is the number of additional bars needed before the series can be scanned.
func (e *InsufficientDataError) Missing() int {
	return max(e.Required-e.Actual, 0)
}

func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
