package carrier_test

import (
	"context"
	"testing"

	"shoporder/internal/adapters/out/carrier"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	codes []string
}

func (a stubAdapter) CompatibleCarriers() []string {
	return a.codes
}

func (a stubAdapter) CreateShipmentBatch(
	_ context.Context, _ string, _ []ports.Shipment,
) ([]ports.ShipmentResult, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	t.Run("should route each code to its adapter", func(t *testing.T) {
		ppl := stubAdapter{codes: []string{"ppl"}}
		zasilkovna := stubAdapter{codes: []string{"zasilkovna", "zasilkovna-cod"}}

		registry, err := carrier.NewRegistry(ppl, zasilkovna)
		require.NoError(t, err)

		adapter, err := registry.AdapterFor("zasilkovna-cod")
		require.NoError(t, err)
		require.Equal(t, zasilkovna, adapter)
	})

	t.Run("should return not found for unknown code", func(t *testing.T) {
		registry, err := carrier.NewRegistry(stubAdapter{codes: []string{"ppl"}})
		require.NoError(t, err)

		_, err = registry.AdapterFor("dhl")
		var notFoundErr *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("should reject code claimed twice", func(t *testing.T) {
		_, err := carrier.NewRegistry(
			stubAdapter{codes: []string{"ppl"}},
			stubAdapter{codes: []string{"ppl"}},
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
