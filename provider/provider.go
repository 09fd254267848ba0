package provider

import (
	"context"

	"github.com/sig-0/tcbrates/types"
)

// Provider is a single live exchange rate source
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// Base returns the currency the provider's raw rates are quoted in
	Base() types.Currency

	// LiveRates fetches the current rates, expressed relative to the given reference currency
	LiveRates(ctx context.Context, reference types.Currency) ([]*types.ExchangeRate, error)
}
