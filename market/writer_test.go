package market

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveQuotesThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.feed")
	now := time.Date(2016, 3, 1, 10, 0, 0, 0, time.UTC)

	err := SaveQuotes(path, []Quote{
		{Key: "FRUIT.ORAN", Price: 2.99},
		{Key: "FRUIT.BANA", Price: 3.5},
		{Key: "MISSING", Price: math.NaN()},
	}, "HTTPFetcher", now)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "# Origin: HTTPFetcher\n")
	assert.Contains(t, text, "# Timestamp: 2016-03-01T10:00:00Z\n")
	assert.True(t, strings.HasSuffix(text, "\nFRUIT.BANA 3.50000\nFRUIT.ORAN 2.99000\nMISSING    NaN\n"), text)

	s := LoadQuotes(path, nil)
	assert.Equal(t, 3, s.Len())
	q, _ := s.Quote("FRUIT.ORAN")
	assert.InDelta(t, 2.99, q.Price, 1e-12)
	q, _ = s.Quote("MISSING")
	assert.True(t, math.IsNaN(q.Price))
}

func TestSaveQuotesTruncatesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.feed")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("OLD.KEY 1\n", 500)), 0o644))

	require.NoError(t, SaveQuotes(path, []Quote{{Key: "NEW", Price: 1}}, "test", time.Now()))

	s := LoadQuotes(path, nil)
	assert.Equal(t, []string{"NEW"}, s.Keys())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "123.40000", FormatPrice(123.4))
	assert.Equal(t, "0.00000", FormatPrice(0))
	assert.Equal(t, "NaN", FormatPrice(math.NaN()))
	assert.Equal(t, "+Inf", FormatPrice(math.Inf(1)))
}
