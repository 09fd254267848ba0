package tcb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/types"
)

// ratePrecision is the number of decimal places kept for rebased rates
const ratePrecision = 4

var (
	errNonPositiveMid    = errors.New("mid quote is not positive")
	errZeroReferenceRate = errors.New("reference rate is zero")

	two = decimal.NewFromInt(2)
)

type basisKind int

const (
	unquoted basisKind = iota
	spotBasis
	cashBasis
)

// basis is the quote pair a currency's mid rate is derived from
type basis struct {
	kind    basisKind
	buying  decimal.Decimal
	selling decimal.Decimal
}

// basis picks the spot quotes if both are published,
// falling back to the cash quotes if both of those are
func (q rawQuote) basis() basis {
	switch {
	case q.spotBuying.Valid && q.spotSelling.Valid:
		return basis{
			kind:    spotBasis,
			buying:  q.spotBuying.Decimal,
			selling: q.spotSelling.Decimal,
		}
	case q.cashBuying.Valid && q.cashSelling.Valid:
		return basis{
			kind:    cashBasis,
			buying:  q.cashBuying.Decimal,
			selling: q.cashSelling.Decimal,
		}
	default:
		return basis{kind: unquoted}
	}
}

// midRate returns the currency's rate in units per 1 base currency,
// and false if the currency is unquoted
func (b basis) midRate() (decimal.Decimal, bool, error) {
	var mid decimal.Decimal

	switch b.kind {
	case spotBasis:
		mid = b.buying.Add(b.selling).Div(two)
	case cashBasis:
		// The cash mid averages cash buying with itself, cash selling is not used
		mid = b.buying.Add(b.buying).Div(two)
	default:
		return decimal.Zero, false, nil
	}

	if !mid.IsPositive() {
		return decimal.Zero, false, errNonPositiveMid
	}

	return decimal.NewFromInt(1).Div(mid), true, nil
}

// midRates computes the base-relative rate set, starting with the base itself
func midRates(quotes []rawQuote, base types.Currency, now time.Time) ([]*types.ExchangeRate, error) {
	rates := make([]*types.ExchangeRate, 0, len(quotes)+1)

	rates = append(rates, &types.ExchangeRate{
		Currency:  base,
		Rate:      decimal.NewFromInt(1),
		UpdatedAt: now,
	})

	for _, q := range quotes {
		rate, ok, err := q.basis().midRate()
		if err != nil {
			return nil, &provider.ParseError{
				Row:   q.row,
				Field: string(q.code),
				Err:   err,
			}
		}

		if !ok {
			continue
		}

		rates = append(rates, &types.ExchangeRate{
			Currency:  q.code,
			Rate:      rate,
			UpdatedAt: now,
		})
	}

	return rates, nil
}

// rebase re-expresses the base-relative rates relative to the reference currency.
// Currency codes are matched case-insensitively
func rebase(
	rates []*types.ExchangeRate,
	base types.Currency,
	reference types.Currency,
	providerName string,
) ([]*types.ExchangeRate, error) {
	ref := strings.TrimSpace(reference.String())
	if ref == "" {
		return nil, fmt.Errorf("%w: reference currency is required", provider.ErrInvalidArgument)
	}

	if strings.EqualFold(ref, base.String()) {
		return rates, nil
	}

	var refRate *types.ExchangeRate

	for _, rate := range rates {
		if strings.EqualFold(ref, rate.Currency.String()) {
			refRate = rate

			break
		}
	}

	if refRate == nil {
		return nil, &provider.UnsupportedCurrencyError{
			Provider: providerName,
			Currency: types.Currency(ref),
		}
	}

	if refRate.Rate.IsZero() {
		return nil, fmt.Errorf("%w: %s", provider.ErrInvalidArgument, errZeroReferenceRate)
	}

	out := make([]*types.ExchangeRate, 0, len(rates))

	for _, rate := range rates {
		out = append(out, &types.ExchangeRate{
			Currency:  rate.Currency,
			Rate:      rate.Rate.Div(refRate.Rate).Round(ratePrecision),
			UpdatedAt: rate.UpdatedAt,
		})
	}

	return out, nil
}

// normalize computes the rate set for the given reference currency
func normalize(
	quotes []rawQuote,
	base types.Currency,
	reference types.Currency,
	now time.Time,
	providerName string,
) ([]*types.ExchangeRate, error) {
	rates, err := midRates(quotes, base, now)
	if err != nil {
		return nil, err
	}

	return rebase(rates, base, reference, providerName)
}
