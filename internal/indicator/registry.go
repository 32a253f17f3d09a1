package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// IndicatorRegistry manages the indicators the engine runs.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 keeps indicators in registration order. Output columns of
// registered indicators must be disjoint.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	order      []types.IndicatorType
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		order:      nil,
		mu:         sync.RWMutex{},
	}
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	owned := make(map[types.Column]types.IndicatorType)
	for _, other := range r.order {
		for _, col := range r.indicators[other].Columns() {
			owned[col] = other
		}
	}

	for _, col := range indicator.Columns() {
		if owner, ok := owned[col]; ok {
			return errors.Newf(errors.ErrCodeColumnConflict, "RegisterIndicator: column %s of %s is already written by %s", col, name, owner)
		}
	}

	r.indicators[name] = indicator
	r.order = append(r.order, name)

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns the registered indicator names in registration order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, len(r.order))
	copy(names, r.order)

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

// DefaultRegistry returns a registry with every indicator in its default
// configuration, in the documented column order.
func DefaultRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	for _, ind := range DefaultIndicators() {
		// default columns are disjoint
		_ = registry.RegisterIndicator(ind)
	}

	return registry
}

// DefaultIndicators returns fresh instances of every indicator.
func DefaultIndicators() []Indicator {
	return []Indicator{
		NewMA(),
		NewMACD(),
		NewRSI(),
		NewBollingerBands(),
		NewKDJ(),
		NewCCI(),
		NewDMI(),
		NewOBV(),
		NewVR(),
		NewWilliamsR(),
	}
}
