package commission_fee

// ProportionalCommissionFee charges a fraction of the traded value with a
// per-leg minimum, the usual model for exchange-listed equities.
type ProportionalCommissionFee struct {
	rate    float64
	minimum float64
}

func NewProportionalCommissionFee(rate float64, minimum float64) CommissionFee {
	return &ProportionalCommissionFee{rate: rate, minimum: minimum}
}

func (c *ProportionalCommissionFee) Calculate(shares int64, price float64) float64 {
	if shares <= 0 || price <= 0 {
		return 0
	}

	fee := float64(shares) * price * c.rate
	if fee < c.minimum {
		return c.minimum
	}

	return fee
}

// FlatCommissionFee charges the same amount on every leg.
type FlatCommissionFee struct {
	fee float64
}

func NewFlatCommissionFee(fee float64) CommissionFee {
	return &FlatCommissionFee{fee: fee}
}

func (c *FlatCommissionFee) Calculate(shares int64, _ float64) float64 {
	if shares <= 0 {
		return 0
	}

	return c.fee
}
