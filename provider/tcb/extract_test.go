package tcb

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/types"
)

func TestExtract_PairRows(t *testing.T) {
	t.Parallel()

	t.Run("odd row count", func(t *testing.T) {
		t.Parallel()

		rows := dataRows(
			[]string{"美金", "買入", "31.20", "30.85"},
			[]string{"USD", "賣出", "31.50", "31.35"},
			[]string{"歐元", "買入", "33.90", "33.40"},
		)

		_, err := pairRows(rows)
		require.Error(t, err)

		var parseErr *provider.ParseError

		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 3, parseErr.Row)
		assert.ErrorIs(t, err, errUnpairedRow)
	})

	t.Run("adjacent rows paired", func(t *testing.T) {
		t.Parallel()

		rows := dataRows(
			[]string{"a"},
			[]string{"b"},
			[]string{"c"},
			[]string{"d"},
		)

		pairs, err := pairRows(rows)
		require.NoError(t, err)
		require.Len(t, pairs, 2)

		assert.Equal(t, 1, pairs[0].buying.index)
		assert.Equal(t, 2, pairs[0].selling.index)
		assert.Equal(t, 3, pairs[1].buying.index)
		assert.Equal(t, 4, pairs[1].selling.index)
	})
}

func TestExtract_Quotes(t *testing.T) {
	t.Parallel()

	t.Run("spot and cash quoted", func(t *testing.T) {
		t.Parallel()

		quotes, err := extractQuotes(dataRows(
			[]string{"美金 ", "買入", "31.20", "30.85"},
			[]string{"USD&nbsp;", "賣出", "31.50", "31.35"},
		))
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		q := quotes[0]

		assert.Equal(t, "美金", q.name)
		assert.Equal(t, types.Currency("USD"), q.code)
		assert.Equal(t, 1, q.row)

		assert.True(t, dec(t, "31.20").Equal(q.spotBuying.Decimal))
		assert.True(t, dec(t, "31.50").Equal(q.spotSelling.Decimal))
		assert.True(t, dec(t, "30.85").Equal(q.cashBuying.Decimal))
		assert.True(t, dec(t, "31.35").Equal(q.cashSelling.Decimal))
	})

	t.Run("placeholder quotes", func(t *testing.T) {
		t.Parallel()

		quotes, err := extractQuotes(dataRows(
			[]string{"人民幣", "買入", "-", "4.310"},
			[]string{"CNY", "賣出", "--", "4.420"},
		))
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		assert.False(t, quotes[0].spotBuying.Valid)
		assert.False(t, quotes[0].spotSelling.Valid)
		assert.True(t, quotes[0].cashBuying.Valid)
		assert.True(t, quotes[0].cashSelling.Valid)
	})

	t.Run("blank cash quotes", func(t *testing.T) {
		t.Parallel()

		blank, err := extractQuotes(dataRows(
			[]string{"南非幣", "買入", "1.70", ""},
			[]string{"ZAR", "賣出", "1.80", ""},
		))
		require.NoError(t, err)

		dashed, err := extractQuotes(dataRows(
			[]string{"南非幣", "買入", "1.70", "-"},
			[]string{"ZAR", "賣出", "1.80", "-"},
		))
		require.NoError(t, err)

		assert.Equal(t, dashed, blank)
		assert.False(t, blank[0].cashBuying.Valid)
		assert.False(t, blank[0].cashSelling.Valid)
	})

	t.Run("single blank cash quote", func(t *testing.T) {
		t.Parallel()

		_, err := extractQuotes(dataRows(
			[]string{"南非幣", "買入", "1.70", "1.60"},
			[]string{"ZAR", "賣出", "1.80", ""},
		))
		require.Error(t, err)

		var parseErr *provider.ParseError

		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 2, parseErr.Row)
		assert.Equal(t, "cash selling", parseErr.Field)
	})

	t.Run("invalid quote", func(t *testing.T) {
		t.Parallel()

		_, err := extractQuotes(dataRows(
			[]string{"美金", "買入", "31.2O", "30.85"},
			[]string{"USD", "賣出", "31.50", "31.35"},
		))
		require.Error(t, err)

		var parseErr *provider.ParseError

		require.True(t, errors.As(err, &parseErr))
		assert.ErrorIs(t, err, provider.ErrParse)
		assert.Equal(t, 1, parseErr.Row)
		assert.Equal(t, "spot buying", parseErr.Field)
	})

	t.Run("thousands separator", func(t *testing.T) {
		t.Parallel()

		quotes, err := extractQuotes(dataRows(
			[]string{"印尼盾", "買入", "0.0019", "1,234.50"},
			[]string{"IDR", "賣出", "0.0021", "1,240.00"},
		))
		require.NoError(t, err)

		assert.True(t, dec(t, "1234.50").Equal(quotes[0].cashBuying.Decimal))
		assert.True(t, dec(t, "1240").Equal(quotes[0].cashSelling.Decimal))
	})

	t.Run("missing cells", func(t *testing.T) {
		t.Parallel()

		_, err := extractQuotes(dataRows(
			[]string{"美金", "買入", "31.20", "30.85"},
			[]string{"USD", "賣出", "31.50"},
		))

		assert.ErrorIs(t, err, errMissingCells)
	})

	t.Run("empty currency code", func(t *testing.T) {
		t.Parallel()

		_, err := extractQuotes(dataRows(
			[]string{"美金", "買入", "31.20", "30.85"},
			[]string{" ", "賣出", "31.50", "31.35"},
		))

		assert.ErrorIs(t, err, errMissingCode)
	})

	t.Run("odd row count", func(t *testing.T) {
		t.Parallel()

		_, err := extractQuotes(dataRows(
			[]string{"美金", "買入", "31.20", "30.85"},
			[]string{"USD", "賣出", "31.50", "31.35"},
			[]string{"歐元", "買入", "33.90", "33.40"},
		))

		assert.ErrorIs(t, err, provider.ErrParse)
	})
}

func TestExtract_ParseQuote(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		input    string
		expected decimal.NullDecimal
		err      bool
	}{
		{"plain", "31.20", nullDec(t, "31.20"), false},
		{"integer", "31", nullDec(t, "31"), false},
		{"placeholder", "-", decimal.NullDecimal{}, false},
		{"embedded placeholder", "--", decimal.NullDecimal{}, false},
		{"empty", "", decimal.NullDecimal{}, true},
		{"garbage", "N/A", decimal.NullDecimal{}, true},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			v, err := parseQuote(testCase.input)
			if testCase.err {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.expected.Valid, v.Valid)
			assert.True(t, testCase.expected.Decimal.Equal(v.Decimal))
		})
	}
}
