package currencies

import "github.com/sig-0/tcbrates/types"

var (
	TWD types.Currency = "TWD"
	USD types.Currency = "USD"
	EUR types.Currency = "EUR"
	JPY types.Currency = "JPY"
	HKD types.Currency = "HKD"
	GBP types.Currency = "GBP"
	CNY types.Currency = "CNY"
)
