package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the type of the indicator
	Name() types.IndicatorType
	// Key is the registry key of this instance, e.g. "ma_fast"
	Key() string
	// Config configures the indicator with positional parameters
	Config(params ...any) error
	// Lookback is the number of leading bars for which the widest output is undefined
	Lookback() int
	// Outputs lists the series keys returned by Compute
	Outputs() []string
	// Compute derives the output series from the bars without modifying them
	Compute(bars []types.Bar) (map[string]Series, error)
}

// intParam reads a positive integer parameter. float64 values are truncated since
// YAML and JSON decoders produce them for plain numbers.
func intParam(params []any, index int, name string) (int, error) {
	var value int

	switch v := params[index].(type) {
	case int:
		value = v
	case float64:
		value = int(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if value <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, value)
	}

	return value, nil
}

func floatParam(params []any, index int, name string) (float64, error) {
	var value float64

	switch v := params[index].(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected float64", name)
	}

	if value <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidMultiplier, "%s must be a positive number, got %f", name, value)
	}

	return value, nil
}

func expectParams(params []any, want int, usage string) error {
	if len(params) != want {
		return errors.Newf(errors.ErrCodeMissingParameter, "Config expects %s", usage)
	}

	return nil
}
