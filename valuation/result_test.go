package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"basket-pricer-go/basket"
)

func TestResultSortedByName(t *testing.T) {
	r := Result{
		{Name: "Oranges", QuoteKey: "O"}: 2,
		{Name: "Apples", QuoteKey: "B"}:  1,
		{Name: "Apples", QuoteKey: "A"}:  3,
	}
	got := r.Sorted()
	assert.Equal(t, []basket.Holding{
		{Name: "Apples", QuoteKey: "A"},
		{Name: "Apples", QuoteKey: "B"},
		{Name: "Oranges", QuoteKey: "O"},
	}, []basket.Holding{got[0].Holding, got[1].Holding, got[2].Holding})
}

func TestResultStats(t *testing.T) {
	r := Result{
		{Name: "A"}: 1.5,
		{Name: "B"}: 2.5,
	}
	assert.Equal(t, Stats{Count: 2, Total: 4}, r.Stats())

	r[basket.Holding{Name: "C"}] = math.NaN()
	st := r.Stats()
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 1, st.NaN)
	assert.True(t, math.IsNaN(st.Total))
}
