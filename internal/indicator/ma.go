package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// MASource selects the bar field a moving average is taken over.
type MASource string

const (
	MASourceClose  MASource = "close"
	MASourceVolume MASource = "volume"
)

// MAIndicator is a simple moving average of closes or volumes.
type MAIndicator struct {
	key    string
	period int
	source MASource
}

// NewMA creates a moving average registered under key with a default period of 20 over closes.
func NewMA(key string) Indicator {
	return &MAIndicator{
		key:    key,
		period: 20,
		source: MASourceClose,
	}
}

func (m *MAIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

func (m *MAIndicator) Key() string {
	return m.key
}

// Config configures the MA. Expected parameters: period (int), optional source (MASource).
func (m *MAIndicator) Config(params ...any) error {
	if len(params) < 1 || len(params) > 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int), and an optional source")
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	source := m.source

	if len(params) == 2 {
		s, ok := params[1].(MASource)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for source parameter, expected MASource")
		}

		if s != MASourceClose && s != MASourceVolume {
			return errors.Newf(errors.ErrCodeInvalidParameter, "unknown MA source %q", s)
		}

		source = s
	}

	m.period = period
	m.source = source

	return nil
}

func (m *MAIndicator) Lookback() int {
	return m.period - 1
}

func (m *MAIndicator) Outputs() []string {
	return []string{m.key}
}

func (m *MAIndicator) Compute(bars []types.Bar) (map[string]Series, error) {
	input := Closes(bars)
	if m.source == MASourceVolume {
		input = Volumes(bars)
	}

	return map[string]Series{m.key: SMA(input, m.period)}, nil
}
