package types

import "time"

type PositionState string

const (
	PositionStateFlat PositionState = "flat"
	PositionStateLong PositionState = "long"
)

// Position is the current holding of a long-only run. It is a value: every
// transition returns a new Position and never mutates the receiver.
type Position struct {
	State  PositionState `yaml:"state" json:"state"`
	Shares int64         `yaml:"shares" json:"shares"`
	// EntryPrice, EntryBarIndex, EntryTime and PeakPrice are only meaningful while Long.
	EntryPrice    float64   `yaml:"entry_price" json:"entry_price"`
	EntryBarIndex int       `yaml:"entry_bar_index" json:"entry_bar_index"`
	EntryTime     time.Time `yaml:"entry_time" json:"entry_time"`
	// PeakPrice never decreases while Long.
	PeakPrice float64 `yaml:"peak_price" json:"peak_price"`
	// EntryFee is the commission paid on the buy leg.
	EntryFee float64 `yaml:"entry_fee" json:"entry_fee"`
}

// FlatPosition returns an empty position.
func FlatPosition() Position {
	return Position{State: PositionStateFlat}
}

func (p Position) IsLong() bool {
	return p.State == PositionStateLong
}

func (p Position) IsFlat() bool {
	return !p.IsLong()
}

// Open returns a Long position entered at price.
func (p Position) Open(shares int64, price float64, fee float64, barIndex int, at time.Time) Position {
	return Position{
		State:         PositionStateLong,
		Shares:        shares,
		EntryPrice:    price,
		EntryBarIndex: barIndex,
		EntryTime:     at,
		PeakPrice:     price,
		EntryFee:      fee,
	}
}

// Observe records the latest price, raising the peak when it is exceeded.
func (p Position) Observe(price float64) Position {
	if p.IsLong() && price > p.PeakPrice {
		p.PeakPrice = price
	}

	return p
}

// Close liquidates the position.
func (p Position) Close() Position {
	return FlatPosition()
}

// UnrealizedReturn is the gain of price relative to the entry price, 0 when Flat.
func (p Position) UnrealizedReturn(price float64) float64 {
	if !p.IsLong() || p.EntryPrice == 0 {
		return 0
	}

	return price/p.EntryPrice - 1
}

// PullbackFromPeak is the fractional decline of price from the peak, 0 when Flat.
func (p Position) PullbackFromPeak(price float64) float64 {
	if !p.IsLong() || p.PeakPrice == 0 {
		return 0
	}

	return 1 - price/p.PeakPrice
}

// BarsHeld returns the number of bars elapsed since entry.
func (p Position) BarsHeld(barIndex int) int {
	if !p.IsLong() {
		return 0
	}

	return barIndex - p.EntryBarIndex
}

// MarketValue is shares valued at price.
func (p Position) MarketValue(price float64) float64 {
	return float64(p.Shares) * price
}
