package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotLookup(t *testing.T) {
	s := NewSnapshot(Quote{Key: "B", Price: 2}, Quote{Key: "A", Price: 1})

	q, ok := s.Quote("A")
	assert.True(t, ok)
	assert.Equal(t, 1.0, q.Price)

	_, ok = s.Quote("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"A", "B"}, s.Keys())
	assert.Equal(t, []Quote{{Key: "A", Price: 1}, {Key: "B", Price: 2}}, s.Quotes())
}

func TestSnapshotDuplicateKeyLastWins(t *testing.T) {
	s := NewSnapshot(Quote{Key: "A", Price: 1}, Quote{Key: "A", Price: 5})
	q, ok := s.Quote("A")
	assert.True(t, ok)
	assert.Equal(t, 5.0, q.Price)
	assert.Equal(t, 1, s.Len())
}

func TestSnapshotQuotesIsCopy(t *testing.T) {
	s := NewSnapshot(Quote{Key: "A", Price: 1})
	qs := s.Quotes()
	qs[0].Price = 99
	q, _ := s.Quote("A")
	assert.Equal(t, 1.0, q.Price)
}

func TestEmptySnapshot(t *testing.T) {
	var s Snapshot
	_, ok := s.Quote("A")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Quotes())
}
