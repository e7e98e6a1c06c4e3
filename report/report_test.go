package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-pricer-go/basket"
	"basket-pricer-go/valuation"
)

func TestFormatAmount(t *testing.T) {
	opt := DefaultOptions()
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1.5, "1.50"},
		{999.999, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
		{0.125, "0.12"},
		{-0.001, "0.00"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.in, opt), "%v", tc.in)
	}
}

func TestFormatAmountCustomOptions(t *testing.T) {
	opt := Options{Grouping: " ", Decimal: ",", NaN: "n/a", Inf: "∞"}
	assert.Equal(t, "12 345,60", FormatAmount(12345.6, opt))
	assert.Equal(t, "n/a", FormatAmount(math.NaN(), opt))
	assert.Equal(t, "∞", FormatAmount(math.Inf(1), opt))
	assert.Equal(t, "-∞", FormatAmount(math.Inf(-1), opt))
}

func TestWrite(t *testing.T) {
	r := valuation.Result{
		basket.Holding{Name: "Oranges", QuoteKey: "O", Quantity: 10}: 29.9,
		basket.Holding{Name: "Bananas", QuoteKey: "B", Quantity: 1}:  3.5,
	}
	h := Header{
		Time:       time.Date(2016, 3, 1, 10, 0, 0, 0, time.UTC),
		WorkDir:    "/tmp",
		BasketPath: "fruit.basket",
		QuotePath:  "fruit.feed",
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, h, r, DefaultOptions()))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Valuation date-time:    2016-03-01 10:00:00", lines[0])
	assert.Equal(t, "Basket definition file: fruit.basket", lines[2])
	assert.Equal(t, "Bananas              3.50", lines[5])
	assert.Equal(t, "Oranges             29.90", lines[6])
	assert.Equal(t, "----", lines[7])
	assert.Equal(t, "TOTALS              33.40", lines[8])
}
