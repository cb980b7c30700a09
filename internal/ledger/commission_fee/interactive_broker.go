package commission_fee

type InteractiveBrokerCommissionFee struct {
}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{}
}

// Calculate charges 0.005 per share with a minimum of 1.
func (c *InteractiveBrokerCommissionFee) Calculate(shares int64, _ float64) float64 {
	if shares <= 0 {
		return 0
	}

	fee := 0.005 * float64(shares)
	if fee < 1.0 {
		return 1.0
	}

	return fee
}
