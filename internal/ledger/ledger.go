package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/ledger/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/internal/utils"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Order is the state machine's decision for one bar.
type Order struct {
	Action types.Action
	Price  float64
	Shares int64
	// LotSize lets a buy that cash cannot cover shrink one lot at a time. Zero
	// drops the buy instead.
	LotSize  int64
	Time     time.Time
	BarIndex int
	// Reason is recorded on sells.
	Reason types.ExitReason
}

// Ledger tracks cash, the open position, the trade log and the equity curve of
// one run. It is owned by a single run and is not safe for concurrent use.
type Ledger struct {
	symbol        string
	initialCash   decimal.Decimal
	cash          decimal.Decimal
	position      types.Position
	trades        []types.Trade
	equity        []types.EquityPoint
	commissionFee commission_fee.CommissionFee
	logger        *logger.Logger
}

// NewLedger creates a flat ledger holding initialCash.
func NewLedger(symbol string, initialCash float64, commissionFee commission_fee.CommissionFee, log *logger.Logger) (*Ledger, error) {
	if initialCash <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "initial cash must be positive, got %f", initialCash)
	}

	if commissionFee == nil {
		commissionFee = commission_fee.NewZeroCommissionFee()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	cash := decimal.NewFromFloat(initialCash)

	return &Ledger{
		symbol:        symbol,
		initialCash:   cash,
		cash:          cash,
		position:      types.FlatPosition(),
		trades:        []types.Trade{},
		equity:        []types.EquityPoint{},
		commissionFee: commissionFee,
		logger:        log,
	}, nil
}

// Apply executes order at order.Price and appends exactly one equity point.
// A sell while Flat, a buy while Long, and a buy that cash cannot cover are
// logged and treated as ActionNone.
func (l *Ledger) Apply(order Order) (optional.Option[types.Trade], error) {
	if order.Price <= 0 || math.IsNaN(order.Price) || math.IsInf(order.Price, 0) {
		return optional.None[types.Trade](), errors.Newf(errors.ErrCodeInvalidOrder, "price must be a positive finite number, got %f", order.Price)
	}

	if n := len(l.equity); n > 0 && !order.Time.After(l.equity[n-1].Time) {
		return optional.None[types.Trade](), errors.Newf(errors.ErrCodeLedgerInvariant,
			"bar time %s is not after the previous bar %s", order.Time.Format(time.RFC3339), l.equity[n-1].Time.Format(time.RFC3339))
	}

	var trade optional.Option[types.Trade]

	switch order.Action {
	case types.ActionBuy:
		trade = l.buy(order)
	case types.ActionSell:
		trade = l.sell(order)
	case types.ActionNone, "":
		trade = optional.None[types.Trade]()
	default:
		return optional.None[types.Trade](), errors.Newf(errors.ErrCodeInvalidOrder, "unknown action %s", order.Action)
	}

	if l.cash.IsNegative() {
		return trade, errors.Newf(errors.ErrCodeLedgerInvariant, "cash went negative: %s", l.cash.String())
	}

	if trade.IsSome() {
		l.trades = append(l.trades, trade.Unwrap())
	}

	l.position = l.position.Observe(order.Price)
	l.equity = append(l.equity, types.EquityPoint{
		Time:   order.Time,
		Value:  l.valueAt(order.Price).InexactFloat64(),
		Cash:   l.cash.InexactFloat64(),
		Shares: l.position.Shares,
		Price:  order.Price,
	})

	return trade, nil
}

func (l *Ledger) buy(order Order) optional.Option[types.Trade] {
	if l.position.IsLong() {
		l.logger.Warn("Ignoring buy while a position is open",
			zap.String("symbol", l.symbol),
			zap.Int("bar", order.BarIndex),
		)

		return optional.None[types.Trade]()
	}

	if order.Shares <= 0 {
		l.logger.Debug("Ignoring buy with no shares", zap.String("symbol", l.symbol), zap.Int("bar", order.BarIndex))

		return optional.None[types.Trade]()
	}

	shares := order.Shares
	cost, fee := utils.LotCost(shares, order.Price, l.commissionFee)

	for cost.GreaterThan(l.cash) && order.LotSize > 0 && shares > order.LotSize {
		shares -= order.LotSize
		cost, fee = utils.LotCost(shares, order.Price, l.commissionFee)
	}

	if cost.GreaterThan(l.cash) {
		l.logger.Warn("Ignoring buy that exceeds available cash",
			zap.String("symbol", l.symbol),
			zap.Int("bar", order.BarIndex),
			zap.String("cost", cost.String()),
			zap.String("cash", l.cash.String()),
		)

		return optional.None[types.Trade]()
	}

	if shares != order.Shares {
		l.logger.Debug("Reduced buy to fit available cash",
			zap.String("symbol", l.symbol),
			zap.Int("bar", order.BarIndex),
			zap.Int64("requested", order.Shares),
			zap.Int64("shares", shares),
		)
	}

	l.cash = l.cash.Sub(cost)
	l.position = l.position.Open(shares, order.Price, fee.InexactFloat64(), order.BarIndex, order.Time)

	return optional.Some(types.Trade{
		ID:        uuid.New().String(),
		Symbol:    l.symbol,
		Time:      order.Time,
		BarIndex:  order.BarIndex,
		Action:    types.ActionBuy,
		Price:     order.Price,
		Shares:    shares,
		Fee:       fee.InexactFloat64(),
		CashDelta: cost.Neg().InexactFloat64(),
		CashAfter: l.cash.InexactFloat64(),
		ReturnPct: optional.None[float64](),
	})
}

func (l *Ledger) sell(order Order) optional.Option[types.Trade] {
	if l.position.IsFlat() {
		l.logger.Warn("Ignoring sell while flat",
			zap.String("symbol", l.symbol),
			zap.Int("bar", order.BarIndex),
			zap.String("reason", string(order.Reason)),
		)

		return optional.None[types.Trade]()
	}

	// positions are always fully liquidated
	shares := l.position.Shares
	price := decimal.NewFromFloat(order.Price)
	fee := decimal.NewFromFloat(l.commissionFee.Calculate(shares, order.Price))
	proceeds := decimal.NewFromInt(shares).Mul(price).Sub(fee)
	entryCost := decimal.NewFromInt(shares).Mul(decimal.NewFromFloat(l.position.EntryPrice)).Add(decimal.NewFromFloat(l.position.EntryFee))
	returnPct := price.Div(decimal.NewFromFloat(l.position.EntryPrice)).Sub(decimal.NewFromInt(1))

	l.cash = l.cash.Add(proceeds)

	trade := types.Trade{
		ID:          uuid.New().String(),
		Symbol:      l.symbol,
		Time:        order.Time,
		BarIndex:    order.BarIndex,
		Action:      types.ActionSell,
		Price:       order.Price,
		Shares:      shares,
		Fee:         fee.InexactFloat64(),
		CashDelta:   proceeds.InexactFloat64(),
		CashAfter:   l.cash.InexactFloat64(),
		ReturnPct:   optional.Some(returnPct.InexactFloat64()),
		PnL:         proceeds.Sub(entryCost).InexactFloat64(),
		ExitReason:  order.Reason,
		HoldingBars: l.position.BarsHeld(order.BarIndex),
	}

	l.position = l.position.Close()

	return optional.Some(trade)
}

func (l *Ledger) valueAt(price float64) decimal.Decimal {
	return l.cash.Add(decimal.NewFromInt(l.position.Shares).Mul(decimal.NewFromFloat(price)))
}

func (l *Ledger) Symbol() string {
	return l.symbol
}

func (l *Ledger) Cash() float64 {
	return l.cash.InexactFloat64()
}

func (l *Ledger) InitialCash() float64 {
	return l.initialCash.InexactFloat64()
}

func (l *Ledger) Position() types.Position {
	return l.position
}

// Value returns cash plus the position marked at price.
func (l *Ledger) Value(price float64) float64 {
	return l.valueAt(price).InexactFloat64()
}

// Trades returns a copy of the trade log.
func (l *Ledger) Trades() []types.Trade {
	trades := make([]types.Trade, len(l.trades))
	copy(trades, l.trades)

	return trades
}

// Equity returns a copy of the equity curve.
func (l *Ledger) Equity() []types.EquityPoint {
	equity := make([]types.EquityPoint, len(l.equity))
	copy(equity, l.equity)

	return equity
}
