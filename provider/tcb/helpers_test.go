package tcb

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/tcbrates/types"
)

const fixturePath = "testdata/foreign_spot_rate.html"

// loadFixture loads the captured TCB rate page
func loadFixture(t *testing.T) *goquery.Document {
	t.Helper()

	f, err := os.Open(fixturePath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = f.Close()
	})

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	return doc
}

// tableDoc builds a minimal rate page with the given data rows
func tableDoc(t *testing.T, rows ...[]string) *goquery.Document {
	t.Helper()

	var sb strings.Builder

	sb.WriteString(`<html><body><table id="` + rateTableID + `">`)
	sb.WriteString(`<tr><th>幣別</th><th></th><th>即期匯率</th><th>現金匯率</th></tr>`)

	for _, row := range rows {
		sb.WriteString("<tr>")

		for _, cell := range row {
			sb.WriteString("<td>" + cell + "</td>")
		}

		sb.WriteString("</tr>")
	}

	sb.WriteString(`</table></body></html>`)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)

	return doc
}

// dataRows builds raw data rows, indexed from 1
func dataRows(rows ...[]string) []rawRow {
	out := make([]rawRow, 0, len(rows))

	for i, cells := range rows {
		out = append(out, rawRow{
			cells: cells,
			index: i + 1,
		})
	}

	return out
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func nullDec(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()

	return decimal.NewNullDecimal(dec(t, s))
}

// rateFor returns the rate entry for the given currency, if any
func rateFor(rates []*types.ExchangeRate, c types.Currency) *types.ExchangeRate {
	for _, r := range rates {
		if r.Currency == c {
			return r
		}
	}

	return nil
}
