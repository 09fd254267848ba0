package provider

import (
	"errors"
	"fmt"

	"github.com/sig-0/tcbrates/types"
)

var (
	// ErrInvalidArgument is returned when a required input is missing
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedCurrency is returned when the requested reference
	// currency is not quoted by the provider
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrParse is returned when the upstream document can't be interpreted
	ErrParse = errors.New("unable to parse rates")
)

// UnsupportedCurrencyError signals that the reference currency
// is neither the provider's base nor one of its quoted currencies
type UnsupportedCurrencyError struct {
	Provider string
	Currency types.Currency
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf(
		"%s can only be used when the primary exchange rate currency is supported by it, %q is not",
		e.Provider,
		e.Currency,
	)
}

func (e *UnsupportedCurrencyError) Is(target error) bool {
	return target == ErrUnsupportedCurrency
}

// ParseError signals that the upstream page layout changed or is malformed.
// Row is the 1-based data row index, or 0 if the error is not tied to a row
type ParseError struct {
	Err   error
	Field string
	Row   int
}

func (e *ParseError) Error() string {
	switch {
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("%s: row %d, %s: %s", ErrParse, e.Row, e.Field, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", ErrParse, e.Row, e.Err)
	default:
		return fmt.Sprintf("%s: %s", ErrParse, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
