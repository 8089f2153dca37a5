package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

var testRooms = []model.Room{
	{ID: "C101", Capacity: 60, Type: "classroom"},
	{ID: "C102", Capacity: 60, Type: "classroom"},
	{ID: "C201", Capacity: 100, Type: "classroom"},
	{ID: "L101", Capacity: 30, Type: "lab"},
	{ID: "L201", Capacity: 30, Type: "lab"},
}

var testSlots = []string{"09:00-10:30"}

func TestSelectRoundRobin(t *testing.T) {
	ra := NewRoomAllocator(testRooms, nil, "C004")
	ledger := NewUsageLedger(nil, "C004")

	r1, ok := ra.Select("CS301", model.Lecture, "", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C101", r1)

	// the pool pointer advanced, so the next course gets the next room
	r2, ok := ra.Select("MA201", model.Lecture, "", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C102", r2)
}

func TestSelectSticky(t *testing.T) {
	ra := NewRoomAllocator(testRooms, nil, "C004")
	ledger := NewUsageLedger(nil, "C004")

	r1, ok := ra.Select("CS301", model.Lecture, "", model.Monday, testSlots, ledger)
	require.True(t, ok)
	r2, ok := ra.Select("CS301", model.Lecture, "", model.Tuesday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, r1, r2)

	// a busy sticky room fails the attempt rather than moving the course
	ledger.ReserveRoom(model.Wednesday, r1, testSlots)
	_, ok = ra.Select("CS301", model.Lecture, "", model.Wednesday, testSlots, ledger)
	assert.False(t, ok)
}

func TestSelectBestFitByRegistration(t *testing.T) {
	reg := map[string]int{"CS301": 80}
	ra := NewRoomAllocator(testRooms, reg, "C004")
	ledger := NewUsageLedger(nil, "C004")

	r, ok := ra.Select("CS301", model.Lecture, "", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C201", r)

	// nothing seats 200 students
	ra2 := NewRoomAllocator(testRooms, map[string]int{"XX1": 200}, "C004")
	_, ok = ra2.Select("XX1", model.Lecture, "", model.Monday, testSlots, ledger)
	assert.False(t, ok)
}

func TestSelectPrefixFilter(t *testing.T) {
	ra := NewRoomAllocator(testRooms, nil, "C004")
	ledger := NewUsageLedger(nil, "C004")

	r, ok := ra.Select("CS301", model.Lecture, "C2", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C201", r)

	// an unknown wing falls back to the full pool
	r, ok = ra.Select("MA201", model.Lecture, "C9", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C101", r)
}

func TestSelectLabWing(t *testing.T) {
	ra := NewRoomAllocator(testRooms, nil, "C004")
	ledger := NewUsageLedger(nil, "C004")

	// classroom wing C2 maps to lab wing L2
	r, ok := ra.Select("CS301", model.Practical, "C2", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "L201", r)
}

func TestAssignFixedAndCombinedHall(t *testing.T) {
	ra := NewRoomAllocator(testRooms, nil, "C004")
	ledger := NewUsageLedger(nil, "C004")

	ra.AssignFixed("MA101", model.Lecture, "C004")
	assert.True(t, ra.IsCombinedHall("MA101"))
	assert.False(t, ra.IsCombinedHall("CS301"))

	// the shared hall skips the availability recheck
	ledger.ReserveRoom(model.Monday, "C004", testSlots)
	r, ok := ra.Select("MA101", model.Lecture, "", model.Monday, testSlots, ledger)
	require.True(t, ok)
	assert.Equal(t, "C004", r)

	got, ok := ra.AssignedRoom("MA101", model.Lecture)
	require.True(t, ok)
	assert.Equal(t, "C004", got)
}
