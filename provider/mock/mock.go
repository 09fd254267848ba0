package mock

import (
	"context"

	"github.com/sig-0/tcbrates/types"
)

type (
	NameDelegate      func() string
	BaseDelegate      func() types.Currency
	LiveRatesDelegate func(context.Context, types.Currency) ([]*types.ExchangeRate, error)
)

type Provider struct {
	NameFn      NameDelegate
	BaseFn      BaseDelegate
	LiveRatesFn LiveRatesDelegate
}

func (m *Provider) Name() string {
	if m.NameFn != nil {
		return m.NameFn()
	}

	return ""
}

func (m *Provider) Base() types.Currency {
	if m.BaseFn != nil {
		return m.BaseFn()
	}

	return ""
}

func (m *Provider) LiveRates(ctx context.Context, reference types.Currency) ([]*types.ExchangeRate, error) {
	if m.LiveRatesFn != nil {
		return m.LiveRatesFn(ctx, reference)
	}

	return nil, nil
}
