package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDayCounts(t *testing.T) {
	table := NewDayCounts(183)
	assert.Equal(t, 183, table.Window())
	assert.Len(t, table.Values(), 184)
	assert.Zero(t, table.Total())

	assert.Equal(t, 0, NewDayCounts(-5).Window())
}

func TestDayCounts_Add(t *testing.T) {
	table := NewDayCounts(7)
	require.NoError(t, table.Add(0, 1))
	require.NoError(t, table.Add(7, 2))
	require.NoError(t, table.Add(7, 3))

	assert.Equal(t, 1, table.Count(0))
	assert.Equal(t, 5, table.Count(7))
	assert.Equal(t, 6, table.Total())

	assert.ErrorIs(t, table.Add(8, 1), ErrOutOfWindow)
	assert.ErrorIs(t, table.Add(-1, 1), ErrOutOfWindow)
	assert.Error(t, table.Add(3, -1))
	assert.Equal(t, 0, table.Count(8), "keys outside the window read as zero")
}

func TestDayCounts_Merge(t *testing.T) {
	a := NewDayCounts(3)
	b := NewDayCounts(3)
	require.NoError(t, a.Add(1, 2))
	require.NoError(t, b.Add(1, 3))
	require.NoError(t, b.Add(3, 1))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []int{0, 5, 0, 1}, a.Values())

	assert.ErrorIs(t, a.Merge(NewDayCounts(4)), ErrOutOfWindow)
}

func TestDayCounts_Equal(t *testing.T) {
	a := NewDayCounts(2)
	b := NewDayCounts(2)
	assert.True(t, a.Equal(b))
	require.NoError(t, b.Add(2, 1))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(NewDayCounts(3)))
	assert.False(t, a.Equal(nil))
}

func TestDayCounts_ValuesIsCopy(t *testing.T) {
	table := NewDayCounts(1)
	v := table.Values()
	v[0] = 42
	assert.Equal(t, 0, table.Count(0))
}
