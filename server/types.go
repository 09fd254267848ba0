package server

import (
	"github.com/sig-0/tcbrates/types"
	"github.com/sig-0/tcbrates/watch"
)

type ProviderInfo struct {
	Name string         `json:"name"`
	Base types.Currency `json:"base"`
}

type ProvidersResponse struct {
	Results []ProviderInfo `json:"results"`
}

type RatesResponse struct {
	Provider  string                `json:"provider"`
	Reference types.Currency        `json:"reference"`
	Results   []*types.ExchangeRate `json:"results"`
}

type StatusResponse struct {
	Results []watch.Status `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
