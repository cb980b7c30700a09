package types

import "time"

// EquityPoint is the total account value at the close of one bar.
type EquityPoint struct {
	Time  time.Time `yaml:"time" json:"time"`
	Value float64   `yaml:"value" json:"value"`
	Cash  float64   `yaml:"cash" json:"cash"`
	// Shares held after the bar's action.
	Shares int64   `yaml:"shares" json:"shares"`
	Price  float64 `yaml:"price" json:"price"`
}
