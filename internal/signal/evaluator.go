package signal

import (
	"sort"

	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Evaluator turns a two-bar indicator window into a Signal. It holds no state
// between calls.
type Evaluator struct {
	config     Config
	conditions []Condition
	requires   []string
}

// NewEvaluator validates the config against the registry and resolves its conditions.
func NewEvaluator(config Config, registry ConditionRegistry) (*Evaluator, error) {
	if err := config.Validate(registry); err != nil {
		return nil, err
	}

	names := RuleSet{
		Conditions: append(config.Entry.Names(), config.Exit.Names()...),
	}.Names()

	conditions := make([]Condition, 0, len(names))
	requires := map[string]bool{}

	for _, name := range names {
		condition, err := registry.GetCondition(name)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, condition)

		for _, key := range condition.Requires {
			requires[key] = true
		}
	}

	keys := make([]string, 0, len(requires))
	for key := range requires {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return &Evaluator{
		config:     config,
		conditions: conditions,
		requires:   keys,
	}, nil
}

// RequiredSeries lists every series the configured conditions read.
func (e *Evaluator) RequiredSeries() []string {
	return e.requires
}

// CheckAvailable fails when a required series is not produced by the bundle.
func (e *Evaluator) CheckAvailable(bundle *indicator.Bundle) error {
	for _, key := range e.requires {
		if !bundle.Has(key) {
			return errors.Newf(errors.ErrCodeConditionUnavailable, "conditions require series %s, which no configured indicator produces", key)
		}
	}

	return nil
}

// Evaluate returns the signal for cur. Only prev and cur are read.
func (e *Evaluator) Evaluate(prev, cur indicator.Snapshot) types.Signal {
	if !prev.Defined(e.requires...) || !cur.Defined(e.requires...) {
		return types.UndefinedSignal(cur.Index, cur.Bar.Time)
	}

	results := make(map[string]bool, len(e.conditions))
	for _, condition := range e.conditions {
		results[condition.Name] = condition.Eval(prev, cur, e.config.Params)
	}

	entryMet, enter := decide(e.config.Entry, results)
	exitMet, exit := decide(e.config.Exit, results)

	signalType := types.SignalTypeHold

	switch {
	case enter:
		signalType = types.SignalTypeEnter
	case exit:
		signalType = types.SignalTypeExit
	}

	return types.Signal{
		Time:       cur.Bar.Time,
		BarIndex:   cur.Index,
		Type:       signalType,
		Defined:    true,
		Conditions: results,
		EntryMet:   entryMet,
		ExitMet:    exitMet,
		Enter:      enter,
		Exit:       exit,
		Score:      Score(cur, e.config.Params),
	}
}

func decide(rules RuleSet, results map[string]bool) (int, bool) {
	met := 0

	for _, name := range rules.Conditions {
		if results[name] {
			met++
		}
	}

	if rules.Empty() {
		return met, false
	}

	for _, name := range rules.Required {
		if !results[name] {
			return met, false
		}
	}

	for _, group := range rules.AnyOf {
		if !anyMet(group, results) {
			return met, false
		}
	}

	return met, met >= rules.MinMet
}

func anyMet(group []string, results map[string]bool) bool {
	for _, name := range group {
		if results[name] {
			return true
		}
	}

	return false
}
