package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *SlotTable {
	t.Helper()
	table, err := NewSlotTable([]TimeSlot{
		mustSlot(t, "09:00", "10:30"),
		mustSlot(t, "10:30", "11:30"),
		mustSlot(t, "11:30", "13:00"),
		mustSlot(t, "13:00", "14:00"),
		mustSlot(t, "14:00", "15:30"),
		mustSlot(t, "15:30", "17:00"),
	}, []string{"13:00-14:00"})
	require.NoError(t, err)
	return table
}

func TestGridPlaceAllOrNothing(t *testing.T) {
	g := NewTimeGrid(testTable(t))

	require.True(t, g.Place(Monday, []string{"09:00-10:30", "10:30-11:30"}, "CS301 (C101)"))
	assert.Equal(t, "CS301 (C101)", g.At(Monday, "09:00-10:30"))
	assert.False(t, g.IsFree(Monday, "10:30-11:30"))

	// overlapping placement must not touch the free cell either
	assert.False(t, g.Place(Monday, []string{"10:30-11:30", "11:30-13:00"}, "MA201 (C102)"))
	assert.True(t, g.IsFree(Monday, "11:30-13:00"))

	assert.False(t, g.Place(Monday, []string{"08:00-09:00"}, "X"))
}

func TestGridFreeBlocks(t *testing.T) {
	g := NewTimeGrid(testTable(t))

	// the excluded lunch slot splits the empty day in two
	blocks := g.FreeBlocks(Monday, false)
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"09:00-10:30", "10:30-11:30", "11:30-13:00"}, blocks[0])
	assert.Equal(t, []string{"14:00-15:30", "15:30-17:00"}, blocks[1])

	// with excluded slots included the day is one run
	blocks = g.FreeBlocks(Monday, true)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0], 6)

	require.True(t, g.Place(Monday, []string{"10:30-11:30"}, "X"))
	blocks = g.FreeBlocks(Monday, false)
	require.Len(t, blocks, 3)
	assert.Equal(t, []string{"09:00-10:30"}, blocks[0])
	assert.Equal(t, []string{"11:30-13:00"}, blocks[1])
}

func TestGridPlacedHours(t *testing.T) {
	g := NewTimeGrid(testTable(t))
	assert.InDelta(t, 0, g.PlacedHours(Monday), 1e-9)

	require.True(t, g.Place(Monday, []string{"09:00-10:30", "10:30-11:30"}, "X"))
	assert.InDelta(t, 2.5, g.PlacedHours(Monday), 1e-9)
	assert.InDelta(t, 0, g.PlacedHours(Tuesday), 1e-9)
}

func TestGridRowIsACopy(t *testing.T) {
	g := NewTimeGrid(testTable(t))
	row := g.Row(Monday)
	row[0] = "tampered"
	assert.True(t, g.IsFree(Monday, "09:00-10:30"))
}
