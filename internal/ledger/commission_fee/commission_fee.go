package commission_fee

import (
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

type CommissionFee interface {
	// Calculate the commission fee for one leg of a trade, in the account currency
	Calculate(shares int64, price float64) float64
}

type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerZero              Broker = "zero_commission"
	BrokerProportional      Broker = "proportional"
	BrokerFlat              Broker = "flat"
)

var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerZero,
	BrokerProportional,
	BrokerFlat,
}

// Config selects the broker fee model. Rate and Minimum apply to the proportional
// broker, Flat to the flat broker.
type Config struct {
	Broker  Broker  `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=Commission model applied to both legs,enum=interactive_broker,enum=zero_commission,enum=proportional,enum=flat,default=zero_commission"`
	Rate    float64 `yaml:"rate" json:"rate" jsonschema:"title=Rate,description=Fraction of the traded value charged per leg,minimum=0" validate:"gte=0,lt=1"`
	Minimum float64 `yaml:"minimum" json:"minimum" jsonschema:"title=Minimum,description=Minimum fee per leg for the proportional broker,minimum=0" validate:"gte=0"`
	Flat    float64 `yaml:"flat" json:"flat" jsonschema:"title=Flat Fee,description=Fee per leg for the flat broker,minimum=0" validate:"gte=0"`
}

// DefaultConfig charges nothing.
func DefaultConfig() Config {
	return Config{Broker: BrokerZero}
}

func GetCommissionFeeHandler(broker Broker) CommissionFee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}

// NewCommissionFee builds the fee model described by config.
func NewCommissionFee(config Config) (CommissionFee, error) {
	switch config.Broker {
	case BrokerInteractiveBroker, BrokerZero, "":
		return GetCommissionFeeHandler(config.Broker), nil
	case BrokerProportional:
		return NewProportionalCommissionFee(config.Rate, config.Minimum), nil
	case BrokerFlat:
		return NewFlatCommissionFee(config.Flat), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown broker %q", config.Broker)
	}
}
