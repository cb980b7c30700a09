package risk

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/ledger/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/internal/utils"
)

// Manager sizes entries and decides exits. It holds configuration only; the
// position it reasons about is always passed in.
type Manager struct {
	config        Config
	tiers         []Tier
	commissionFee commission_fee.CommissionFee
}

// NewManager validates config and returns a Manager.
func NewManager(config Config, commissionFee commission_fee.CommissionFee) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if commissionFee == nil {
		commissionFee = commission_fee.NewZeroCommissionFee()
	}

	return &Manager{
		config:        config,
		tiers:         config.sortedTiers(),
		commissionFee: commissionFee,
	}, nil
}

func (m *Manager) Config() Config {
	return m.config
}

// EntryShares returns the lot-rounded number of shares an entry at price may buy.
// Zero means the entry must not happen.
func (m *Manager) EntryShares(cash float64, price float64) int64 {
	return utils.CalculateLotSharesByPercentage(cash, price, m.config.LotSize, m.commissionFee, m.config.PositionFraction)
}

// ExitReason returns the highest-priority exit cause that holds at price, or
// None when the position should stay open. pos is expected to have observed
// price already; a Flat position never exits.
//
// Priority: stop loss, trailing stop, take profit, max holding, signal.
func (m *Manager) ExitReason(pos types.Position, price float64, barIndex int, sig types.Signal) optional.Option[types.ExitReason] {
	if !pos.IsLong() {
		return optional.None[types.ExitReason]()
	}

	pos = pos.Observe(price)
	gain := pos.UnrealizedReturn(price)
	held := pos.BarsHeld(barIndex)

	if price <= pos.EntryPrice*(1-m.config.StopLossPct) {
		return optional.Some(types.ExitReasonStopLoss)
	}

	if m.trailingStopHit(pos, price, gain) {
		return optional.Some(types.ExitReasonTrailingStop)
	}

	if m.takeProfitHit(pos, price, gain) {
		return optional.Some(types.ExitReasonTakeProfit)
	}

	if m.config.MaxHoldingBars > 0 && held >= m.config.MaxHoldingBars {
		return optional.Some(types.ExitReasonMaxHolding)
	}

	if m.signalExit(sig, gain, held) {
		return optional.Some(types.ExitReasonSignal)
	}

	return optional.None[types.ExitReason]()
}

func (m *Manager) trailingStopHit(pos types.Position, price float64, gain float64) bool {
	if m.config.TrailingStopPct <= 0 || gain <= m.config.TrailingActivationPct {
		return false
	}

	return price <= pos.PeakPrice*(1-m.config.TrailingStopPct)
}

func (m *Manager) takeProfitHit(pos types.Position, price float64, gain float64) bool {
	pullback := pos.PullbackFromPeak(price)

	for _, tier := range m.tiers {
		if gain < tier.Gain {
			continue
		}

		if tier.Giveback == 0 || pullback > tier.Giveback {
			return true
		}
	}

	return false
}

func (m *Manager) signalExit(sig types.Signal, gain float64, held int) bool {
	if !sig.Defined || !sig.Exit {
		return false
	}

	if held < m.config.MinHoldingBars {
		return false
	}

	return !m.config.SignalExitRequiresProfit || gain >= 0
}
