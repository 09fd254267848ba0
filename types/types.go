package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

func (c Currency) String() string {
	return string(c)
}

// ExchangeRate is a single live rate, expressed relative to
// the reference currency requested from the provider
type ExchangeRate struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Currency  Currency        `json:"currency_code"`
	Rate      decimal.Decimal `json:"rate"`
}
