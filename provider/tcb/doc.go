// Package tcb provides the Taiwan Cooperative Bank (TCB) live exchange rate provider.
//
// # Source
//
// URL: https://www.tcb-bank.com.tw/finance_info/Pages/foreign_spot_rate.aspx
// Base currency: TWD
//
// The page publishes a single result table where every currency spans two
// adjacent rows. The first row carries the currency display name and the
// buying quotes, the second row carries the currency code and the selling
// quotes:
//
//	| name | label | spot buying  | cash buying  |
//	| code | label | spot selling | cash selling |
//
// A dash marks a quote that is not published. Blank cash cells on both rows
// are treated the same as dashes.
//
// # Rates
//
// Each currency is reduced to a single mid rate, in TWD per unit of the
// currency, which is then inverted to units of the currency per TWD:
//
//   - spot quoted: 1 / ((spot buying + spot selling) / 2)
//   - cash quoted only: 1 / ((cash buying + cash buying) / 2)
//   - nothing quoted: the currency is omitted
//
// TWD itself is always present with a rate of 1. When a different reference
// currency is requested, every rate is divided by the reference currency's
// rate and rounded to 4 decimal places.
package tcb
