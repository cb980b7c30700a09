package indicator

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// IndicatorRegistry manages the indicators computed for a run.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(key string) (Indicator, error)
	ListIndicators() []string
	RemoveIndicator(key string) error
	// Lookback is the largest lookback of all registered indicators.
	Lookback() int
}

// IndicatorRegistryV1 manages the indicators computed for a run.
type IndicatorRegistryV1 struct {
	indicators map[string]Indicator
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[string]Indicator),
		mu:         sync.RWMutex{},
	}
}

// RegisterIndicator adds an indicator to the registry. Two indicators may not
// produce the same output series.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := indicator.Key()
	if _, exists := r.indicators[key]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with key %s already registered", key)
	}

	for _, existing := range r.indicators {
		for _, out := range existing.Outputs() {
			for _, candidate := range indicator.Outputs() {
				if out == candidate {
					return errors.Newf(errors.ErrCodeDuplicateSeries, "RegisterIndicator: series %s is already produced by %s", out, existing.Key())
				}
			}
		}
	}

	r.indicators[key] = indicator

	return nil
}

// GetIndicator retrieves an indicator by key.
func (r *IndicatorRegistryV1) GetIndicator(key string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[key]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with key %s not found", key)
	}

	return indicator, nil
}

// ListIndicators returns the sorted keys of all registered indicators.
func (r *IndicatorRegistryV1) ListIndicators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.indicators))
	for key := range r.indicators {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[key]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with key %s not found", key)
	}

	delete(r.indicators, key)

	return nil
}

func (r *IndicatorRegistryV1) Lookback() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lookback := 0
	for _, indicator := range r.indicators {
		lookback = max(lookback, indicator.Lookback())
	}

	return lookback
}
