package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

func TestCourseTypeBudget(t *testing.T) {
	l := NewUsageLedger(nil, "C004")

	// lectures and tutorials share one daily allowance per course
	assert.True(t, l.CanUseCourseType(model.Monday, "CS301", model.Lecture, false))
	l.CommitCourseType(model.Monday, "CS301", model.Lecture)
	assert.False(t, l.CanUseCourseType(model.Monday, "CS301", model.Tutorial, false))
	assert.False(t, l.CanUseCourseType(model.Monday, "CS301", model.Lecture, false))

	// practicals draw from their own allowance
	assert.True(t, l.CanUseCourseType(model.Monday, "CS301", model.Practical, false))
	l.CommitCourseType(model.Monday, "CS301", model.Practical)
	assert.False(t, l.CanUseCourseType(model.Monday, "CS301", model.Practical, false))

	// elective practicals are never capped
	assert.True(t, l.CanUseCourseType(model.Monday, "CS301", model.Practical, true))

	// other days and courses are unaffected
	assert.True(t, l.CanUseCourseType(model.Tuesday, "CS301", model.Lecture, false))
	assert.True(t, l.CanUseCourseType(model.Monday, "MA201", model.Lecture, false))
	assert.Equal(t, 1, l.CourseTypeCount(model.Monday, "CS301", model.Lecture))
	assert.Equal(t, 0, l.CourseTypeCount(model.Tuesday, "CS301", model.Lecture))
}

func TestFacultyReservations(t *testing.T) {
	l := NewUsageLedger(nil, "")
	slots := []string{"09:00-10:30"}

	assert.True(t, l.IsFacultyFree(model.Monday, "A. Rao", slots))
	l.ReserveFaculty(model.Monday, "A. Rao", slots)
	assert.False(t, l.IsFacultyFree(model.Monday, "A. Rao", slots))
	assert.True(t, l.IsFacultyFree(model.Monday, "A. Rao", []string{"10:30-11:30"}))
	assert.True(t, l.IsFacultyFree(model.Tuesday, "A. Rao", slots))

	// unassigned faculty never blocks
	assert.True(t, l.IsFacultyFree(model.Monday, "", slots))
	l.ReserveFaculty(model.Monday, "", slots)
	assert.True(t, l.IsFacultyFree(model.Monday, "", slots))
}

func TestRoomReservations(t *testing.T) {
	l := NewUsageLedger(nil, "C004")
	slots := []string{"09:00-10:30"}

	assert.True(t, l.IsRoomFree(model.Monday, "C101", slots))
	l.ReserveRoom(model.Monday, "C101", slots)
	assert.False(t, l.IsRoomFree(model.Monday, "C101", slots))

	// the shared combined hall is exempt
	l.ReserveRoom(model.Monday, "C004", slots)
	assert.True(t, l.IsRoomFree(model.Monday, "C004", slots))
}

func TestRoomBusySharedAcrossLedgers(t *testing.T) {
	rb := NewRoomBusy()
	first := NewUsageLedger(rb, "")
	second := NewUsageLedger(rb, "")
	slots := []string{"09:00-10:30"}

	first.ReserveRoom(model.Monday, "C101", slots)
	assert.False(t, second.IsRoomFree(model.Monday, "C101", slots))

	// faculty state stays per-ledger
	first.ReserveFaculty(model.Monday, "A. Rao", slots)
	assert.True(t, second.IsFacultyFree(model.Monday, "A. Rao", slots))
}
