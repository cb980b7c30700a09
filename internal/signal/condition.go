package signal

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// EvalFunc is a boolean predicate over the two-bar window.
type EvalFunc func(prev, cur indicator.Snapshot, p Params) bool

// Condition is a named predicate and the series it reads.
type Condition struct {
	Name string
	// Requires lists the series that must be defined at both bars.
	Requires []string
	Eval     EvalFunc
}

// ConditionRegistry manages the conditions a rule set may reference.
type ConditionRegistry interface {
	RegisterCondition(condition Condition) error
	GetCondition(name string) (Condition, error)
	ListConditions() []string
}

// ConditionRegistryV1 manages the conditions a rule set may reference.
type ConditionRegistryV1 struct {
	conditions map[string]Condition
	mu         sync.RWMutex
}

// NewConditionRegistry creates an empty registry.
func NewConditionRegistry() ConditionRegistry {
	return &ConditionRegistryV1{
		conditions: make(map[string]Condition),
		mu:         sync.RWMutex{},
	}
}

// DefaultConditionRegistry creates a registry holding every built-in condition.
func DefaultConditionRegistry() ConditionRegistry {
	registry := NewConditionRegistry()

	for _, condition := range builtinConditions() {
		// built-in names are unique
		_ = registry.RegisterCondition(condition)
	}

	return registry
}

func (r *ConditionRegistryV1) RegisterCondition(condition Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if condition.Name == "" || condition.Eval == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "RegisterCondition: condition needs a name and an eval function")
	}

	if _, exists := r.conditions[condition.Name]; exists {
		return errors.Newf(errors.ErrCodeInvalidParameter, "RegisterCondition: condition %s already registered", condition.Name)
	}

	r.conditions[condition.Name] = condition

	return nil
}

func (r *ConditionRegistryV1) GetCondition(name string) (Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	condition, exists := r.conditions[name]
	if !exists {
		return Condition{}, errors.Newf(errors.ErrCodeUnknownCondition, "unknown condition %q", name)
	}

	return condition, nil
}

func (r *ConditionRegistryV1) ListConditions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.conditions))
	for name := range r.conditions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
