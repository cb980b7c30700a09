package utils

import (
	"github.com/rxtech-lab/argo-quant/internal/ledger/commission_fee"
	"github.com/shopspring/decimal"
)

// LotCost returns the cash a buy of shares at price consumes, commission
// included, together with the commission alone.
func LotCost(shares int64, price float64, commissionFee commission_fee.CommissionFee) (cost decimal.Decimal, fee decimal.Decimal) {
	fee = decimal.NewFromFloat(commissionFee.Calculate(shares, price))
	cost = decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(price)).Add(fee)

	return cost, fee
}

// CalculateLotShares returns the largest multiple of lotSize whose LotCost fits
// in balance. It returns 0 when not even one lot is affordable.
func CalculateLotShares(balance float64, price float64, lotSize int64, commissionFee commission_fee.CommissionFee) int64 {
	if price <= 0 || balance <= 0 || lotSize <= 0 {
		return 0
	}

	available := decimal.NewFromFloat(balance)
	lots := available.Div(decimal.NewFromFloat(price)).Div(decimal.NewFromInt(lotSize)).Floor().IntPart()

	// fees only ever push the affordable size down, one lot at a time
	for ; lots > 0; lots-- {
		shares := lots * lotSize
		if cost, _ := LotCost(shares, price, commissionFee); cost.LessThanOrEqual(available) {
			return shares
		}
	}

	return 0
}

// CalculateLotSharesByPercentage sizes an order using the given fraction of the balance.
func CalculateLotSharesByPercentage(balance float64, price float64, lotSize int64, commissionFee commission_fee.CommissionFee, percentage float64) int64 {
	return CalculateLotShares(balance*percentage, price, lotSize, commissionFee)
}
