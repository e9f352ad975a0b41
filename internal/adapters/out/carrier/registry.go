// Package carrier provides the registry that routes shipment batches to the
// adapter responsible for a carrier code. Adapters announce the codes they
// handle; the registry is built once at composition time.
package carrier

import (
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// Registry implements ports.CarrierRegistry over a static adapter set.
type Registry struct {
	adapters map[string]ports.CarrierAdapter
}

// NewRegistry builds a registry from the given adapters, indexed by every
// carrier code each adapter declares compatible. A code claimed by two
// adapters is rejected.
func NewRegistry(adapters ...ports.CarrierAdapter) (*Registry, error) {
	index := make(map[string]ports.CarrierAdapter)
	for _, adapter := range adapters {
		if adapter == nil {
			return nil, errs.NewValueIsRequiredError("adapter")
		}
		for _, code := range adapter.CompatibleCarriers() {
			if code == "" {
				return nil, errs.NewValueIsRequiredError("carrier code")
			}
			if _, taken := index[code]; taken {
				return nil, errs.NewValueIsInvalidError("carrier code " + code)
			}
			index[code] = adapter
		}
	}

	return &Registry{adapters: index}, nil
}

// AdapterFor returns the adapter handling the given carrier code.
// Returns errs.ObjectNotFoundError when no adapter claims the code.
func (r *Registry) AdapterFor(code string) (ports.CarrierAdapter, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	adapter, ok := r.adapters[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", code)
	}
	return adapter, nil
}
