package basket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-pricer-go/market"
)

func TestParse(t *testing.T) {
	for _, line := range []string{
		"FRUIT.BANA\t11.001\tBananas",
		"FRUIT.BANA\t\t11.001\t\tBananas\twill not be used",
		"FRUIT.BANA 11.00100 Bananas",
	} {
		h, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, "FRUIT.BANA", h.QuoteKey)
		assert.Equal(t, "Bananas", h.Name)
		assert.InDelta(t, 11.001, h.Quantity, 1e-12)
	}
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{
		"FRUIT.BANA",
		"FRUIT.BANA\t11.001blah\tBananas",
		"FRUIT.BANA\t11.001",
	} {
		_, err := Parse(line)
		var pe *market.ParseError
		assert.True(t, errors.As(err, &pe), line)
	}
}

func TestHoldingIdentity(t *testing.T) {
	a := Holding{Name: "Apples", QuoteKey: "FRUIT.AAPL", Quantity: 1}
	b := Holding{Name: "Apples", QuoteKey: "FRUIT.GALA", Quantity: 1}
	m := map[Holding]float64{a: 1, b: 2}
	assert.Len(t, m, 2)
	assert.Equal(t, "Holding[name=Apples,quote=FRUIT.AAPL,quantity=1]", a.String())
}
