package tcb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/types"
)

// placeholder marks a quote the bank doesn't publish
const placeholder = "-"

// Cell positions within a row
const (
	labelCell = 0
	spotCell  = 2
	cashCell  = 3

	minCells = 4
)

var (
	errUnpairedRow  = errors.New("row has no matching selling row")
	errMissingCells = errors.New("missing quote cells")
	errMissingCode  = errors.New("empty currency code")
)

// rowPair is a single currency's buying row and its matching selling row
type rowPair struct {
	buying  rawRow
	selling rawRow
}

// rawQuote holds the published quotes of a single currency.
// Quotes that are not published are invalid (null)
type rawQuote struct {
	name string
	code types.Currency
	row  int

	cashBuying  decimal.NullDecimal
	cashSelling decimal.NullDecimal
	spotBuying  decimal.NullDecimal
	spotSelling decimal.NullDecimal
}

// pairRows groups the table's data rows into buying/selling pairs.
// The table is expected to list every currency on two adjacent rows,
// so an odd row count means the layout can't be trusted
func pairRows(rows []rawRow) ([]rowPair, error) {
	if len(rows)%2 != 0 {
		return nil, &provider.ParseError{
			Row: rows[len(rows)-1].index,
			Err: errUnpairedRow,
		}
	}

	pairs := make([]rowPair, 0, len(rows)/2)

	for i := 0; i+1 < len(rows); i += 2 {
		pairs = append(pairs, rowPair{
			buying:  rows[i],
			selling: rows[i+1],
		})
	}

	return pairs, nil
}

// extractQuotes converts the table's data rows into per-currency quotes
func extractQuotes(rows []rawRow) ([]rawQuote, error) {
	pairs, err := pairRows(rows)
	if err != nil {
		return nil, err
	}

	quotes := make([]rawQuote, 0, len(pairs))

	for _, pair := range pairs {
		q, err := extractQuote(pair)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, q)
	}

	return quotes, nil
}

func extractQuote(pair rowPair) (rawQuote, error) {
	for _, row := range []rawRow{pair.buying, pair.selling} {
		if len(row.cells) < minCells {
			return rawQuote{}, &provider.ParseError{
				Row: row.index,
				Err: fmt.Errorf("%w: expected %d cells, got %d", errMissingCells, minCells, len(row.cells)),
			}
		}
	}

	var (
		name = cleanLabel(pair.buying.cells[labelCell])
		code = cleanLabel(pair.selling.cells[labelCell])

		spotBuying  = pair.buying.cells[spotCell]
		cashBuying  = pair.buying.cells[cashCell]
		spotSelling = pair.selling.cells[spotCell]
		cashSelling = pair.selling.cells[cashCell]
	)

	if code == "" {
		return rawQuote{}, &provider.ParseError{
			Row:   pair.selling.index,
			Field: "currency code",
			Err:   errMissingCode,
		}
	}

	// Missing cash quotes are sometimes rendered blank instead of dashed
	if cashBuying == "" && cashSelling == "" {
		cashBuying = placeholder
		cashSelling = placeholder
	}

	q := rawQuote{
		name: name,
		code: types.Currency(code),
		row:  pair.buying.index,
	}

	fields := []struct {
		dst   *decimal.NullDecimal
		raw   string
		field string
		row   int
	}{
		{&q.spotBuying, spotBuying, "spot buying", pair.buying.index},
		{&q.cashBuying, cashBuying, "cash buying", pair.buying.index},
		{&q.spotSelling, spotSelling, "spot selling", pair.selling.index},
		{&q.cashSelling, cashSelling, "cash selling", pair.selling.index},
	}

	for _, f := range fields {
		v, err := parseQuote(f.raw)
		if err != nil {
			return rawQuote{}, &provider.ParseError{
				Row:   f.row,
				Field: f.field,
				Err:   err,
			}
		}

		*f.dst = v
	}

	return q, nil
}

// parseQuote parses a published quote, using "." as the decimal separator.
// Placeholder quotes yield an invalid (null) value
func parseQuote(s string) (decimal.NullDecimal, error) {
	if strings.Contains(s, placeholder) {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid quote %q: %w", s, err)
	}

	return decimal.NewNullDecimal(d), nil
}

// cleanLabel trims the currency name / code cell, dropping non-breaking spaces
func cleanLabel(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	return strings.TrimSpace(s)
}
