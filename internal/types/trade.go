package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type Action string

const (
	ActionNone Action = "none"
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ExitReason names the cause that closed a position.
type ExitReason string

const (
	ExitReasonNone         ExitReason = ""
	ExitReasonStopLoss     ExitReason = "stop_loss"
	ExitReasonTrailingStop ExitReason = "trailing_stop"
	ExitReasonTakeProfit   ExitReason = "take_profit"
	ExitReasonMaxHolding   ExitReason = "max_holding"
	ExitReasonSignal       ExitReason = "signal"
	ExitReasonEndOfData    ExitReason = "end_of_data"
)

// AllExitReasons lists the exit reasons in priority order. EndOfData is not a
// competing cause and is appended last.
var AllExitReasons = []ExitReason{
	ExitReasonStopLoss,
	ExitReasonTrailingStop,
	ExitReasonTakeProfit,
	ExitReasonMaxHolding,
	ExitReasonSignal,
	ExitReasonEndOfData,
}

// Trade is an immutable record appended on every entry and every exit.
type Trade struct {
	ID       string    `yaml:"id" json:"id"`
	Symbol   string    `yaml:"symbol" json:"symbol"`
	Time     time.Time `yaml:"time" json:"time"`
	BarIndex int       `yaml:"bar_index" json:"bar_index"`
	Action   Action    `yaml:"action" json:"action"`
	Price    float64   `yaml:"price" json:"price"`
	Shares   int64     `yaml:"shares" json:"shares"`
	Fee      float64   `yaml:"fee" json:"fee"`
	// CashDelta is the signed change in cash, fees included.
	CashDelta float64 `yaml:"cash_delta" json:"cash_delta"`
	CashAfter float64 `yaml:"cash_after" json:"cash_after"`
	// ReturnPct is the realized return of the round trip, set on exits only.
	// It is computed on prices: exit/entry - 1.
	ReturnPct optional.Option[float64] `yaml:"-" json:"-"`
	// PnL is the realized profit of the round trip net of both legs' fees, 0 for buys.
	PnL         float64    `yaml:"pnl" json:"pnl"`
	ExitReason  ExitReason `yaml:"exit_reason,omitempty" json:"exit_reason,omitempty"`
	HoldingBars int        `yaml:"holding_bars" json:"holding_bars"`
}

func (t Trade) IsExit() bool {
	return t.Action == ActionSell
}

// RealizedReturn returns ReturnPct or 0 for entries.
func (t Trade) RealizedReturn() float64 {
	return t.ReturnPct.TakeOr(0)
}

// ExitTrades filters the sells out of a trade log.
func ExitTrades(trades []Trade) []Trade {
	exits := make([]Trade, 0, len(trades)/2+1)

	for _, trade := range trades {
		if trade.IsExit() {
			exits = append(exits, trade)
		}
	}

	return exits
}
