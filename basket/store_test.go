package basket

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"basket-pricer-go/market"
)

func TestLoad(t *testing.T) {
	b := Load(filepath.Join("testdata", "test.basket"), nil)
	require.Len(t, b, 5)
	assert.Equal(t, Holding{Name: "Bananas", QuoteKey: "FRUIT.BANA", Quantity: 11.001}, b[0])
}

func TestLoadPartialSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.basket")
	require.NoError(t, os.WriteFile(path, []byte(
		"A 1 Alpha\n"+
			"B 2\n"+
			"C x Gamma\n"+
			"D 4 Delta extra tokens\n"), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	b := Load(path, zap.New(core))

	assert.Equal(t, Basket{
		{Name: "Alpha", QuoteKey: "A", Quantity: 1},
		{Name: "Delta", QuoteKey: "D", Quantity: 4},
	}, b)
	assert.Equal(t, 2, logs.FilterMessage("basket line dropped").Len())
}

func TestLoadDeduplicatesIdenticalLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.basket")
	require.NoError(t, os.WriteFile(path, []byte(
		"A 1 Alpha\nA 1 Alpha\nB 1 Alpha\nA 2 Alpha\n"), 0o644))

	b := Load(path, nil)
	assert.Len(t, b, 3)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	b := Load(filepath.Join(t.TempDir(), "none.basket"), zap.New(core))
	assert.NotNil(t, b)
	assert.Empty(t, b)
	assert.Equal(t, 1, logs.FilterMessage("basket source unavailable").Len())
}

func TestLoadDropsOnlyOversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.basket")
	long := "B 2 " + strings.Repeat("x", 70*1024)
	require.NoError(t, os.WriteFile(path, []byte("A 1 Alpha\n"+long+"\nC 3 Gamma\n"), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	b := Load(path, zap.New(core))

	assert.Equal(t, Basket{
		{Name: "Alpha", QuoteKey: "A", Quantity: 1},
		{Name: "Gamma", QuoteKey: "C", Quantity: 3},
	}, b)
	dropped := logs.FilterMessage("basket line dropped").All()
	require.Len(t, dropped, 1)
	assert.Contains(t, dropped[0].ContextMap()["error"], market.ErrLineTooLong.Error())
	assert.Contains(t, dropped[0].ContextMap()["error"], "long.basket:2")
}
