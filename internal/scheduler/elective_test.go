package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

func TestSynchronizerFirstRecordWins(t *testing.T) {
	es := NewElectiveSynchronizer()
	assert.False(t, es.Known("CS452"))

	first := SyncPlacement{Day: model.Monday, Slots: []string{"09:00-10:30"}}
	es.Record("CS452", first)
	es.Record("CS452", SyncPlacement{Day: model.Friday, Slots: []string{"15:30-17:00"}})

	got, ok := es.Lookup("CS452")
	require.True(t, ok)
	assert.Equal(t, first, got)

	es.Record("", first)
	assert.False(t, es.Known(""))
}

func TestElectiveRoomMap(t *testing.T) {
	classrooms := []model.Room{
		{ID: "C101", Capacity: 60},
		{ID: "C102", Capacity: 60},
		{ID: "C103", Capacity: 60},
	}
	m := NewElectiveRoomMap(classrooms, rand.New(rand.NewSource(7)))

	_, ok := m.Peek("CS452")
	assert.False(t, ok)

	r1, ok := m.Room("CS452")
	require.True(t, ok)
	r2, ok := m.Room("HS301_B2")
	require.True(t, ok)
	assert.NotEqual(t, r1, r2)

	// assignments are stable
	again, ok := m.Room("CS452")
	require.True(t, ok)
	assert.Equal(t, r1, again)
	peeked, ok := m.Peek("CS452")
	require.True(t, ok)
	assert.Equal(t, r1, peeked)

	// an exhausted pool reuses rooms instead of failing
	m.Room("A")
	r4, ok := m.Room("B")
	assert.True(t, ok)
	assert.Contains(t, []string{"C101", "C102", "C103"}, r4)

	_, ok = m.Room("")
	assert.False(t, ok)
}

func TestElectiveRoomMapDeterministic(t *testing.T) {
	classrooms := []model.Room{{ID: "C101"}, {ID: "C102"}, {ID: "C103"}, {ID: "C104"}}
	a := NewElectiveRoomMap(classrooms, rand.New(rand.NewSource(42)))
	b := NewElectiveRoomMap(classrooms, rand.New(rand.NewSource(42)))

	for _, key := range []string{"X", "Y", "Z"} {
		ra, _ := a.Room(key)
		rb, _ := b.Room(key)
		assert.Equal(t, ra, rb)
	}
}

func TestElectiveEntries(t *testing.T) {
	electives := []*model.Course{
		{Code: "CS452", IsElective: true, Lecture: 3},
		{Code: "HS310", IsElective: true, Basket: "2", Lecture: 2, Faculty: "C. Das"},
		{Code: "HS311", IsElective: true, Basket: "2", Lecture: 3},
		{Code: "HS320", IsElective: true, Basket: "10", Lecture: 2},
	}
	entries := electiveEntries(electives)
	require.Len(t, entries, 3)

	assert.Equal(t, "CS452", entries[0].course.Code)
	assert.Equal(t, "CS452", entries[0].syncKey)

	// baskets collapse to one representative, in numeric basket order,
	// carrying the first member's hours and faculty
	assert.Equal(t, "Elective2", entries[1].course.Code)
	assert.Equal(t, "HS310_B2", entries[1].syncKey)
	assert.Equal(t, 2, entries[1].course.Lecture)
	assert.Equal(t, "C. Das", entries[1].course.Faculty)
	assert.Equal(t, "Elective10", entries[2].course.Code)
}
