package scheduler

import (
	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

type slotSet map[string]struct{}

func (s slotSet) add(keys []string) {
	for _, k := range keys {
		s[k] = struct{}{}
	}
}

func (s slotSet) intersects(keys []string) bool {
	for _, k := range keys {
		if _, ok := s[k]; ok {
			return true
		}
	}
	return false
}

// RoomBusy tracks per-day per-room reserved slot sets. One instance may be
// shared across all generate calls in a run so that different groups cannot
// claim the same room at the same time.
type RoomBusy map[model.Day]map[string]slotSet

// NewRoomBusy creates an empty building-wide room ledger.
func NewRoomBusy() RoomBusy {
	rb := make(RoomBusy, len(model.Days))
	for _, d := range model.Days {
		rb[d] = make(map[string]slotSet)
	}
	return rb
}

type typeCount struct {
	lecture, tutorial, practical int
}

// UsageLedger holds the hard-constraint state for one generate call:
// per-day faculty busy sets, per-day room busy sets (possibly shared), and
// per-course-per-day session-type counts.
type UsageLedger struct {
	facultyBusy map[model.Day]map[string]slotSet
	roomBusy    RoomBusy
	courseUsage map[model.Day]map[string]*typeCount

	// sharedHall is exempt from room conflict checks: combined sections
	// deliberately overlay it to represent a joint lecture.
	sharedHall string
}

// NewUsageLedger creates a ledger. roomBusy may be nil for a call-local room
// ledger, or a shared instance threaded across groups.
func NewUsageLedger(roomBusy RoomBusy, sharedHall string) *UsageLedger {
	if roomBusy == nil {
		roomBusy = NewRoomBusy()
	}
	l := &UsageLedger{
		facultyBusy: make(map[model.Day]map[string]slotSet, len(model.Days)),
		roomBusy:    roomBusy,
		courseUsage: make(map[model.Day]map[string]*typeCount, len(model.Days)),
		sharedHall:  sharedHall,
	}
	for _, d := range model.Days {
		l.facultyBusy[d] = make(map[string]slotSet)
		l.courseUsage[d] = make(map[string]*typeCount)
	}
	return l
}

func (l *UsageLedger) usage(d model.Day, code string) *typeCount {
	u, ok := l.courseUsage[d][code]
	if !ok {
		u = &typeCount{}
		l.courseUsage[d][code] = u
	}
	return u
}

// CanUseCourseType applies the per-day session budget: lectures and
// tutorials share a single daily allowance per course, practicals have their
// own, and elective practicals are unrestricted (they behave like synced
// theory hours and may repeat within a day).
func (l *UsageLedger) CanUseCourseType(d model.Day, code string, t model.SessionType, elective bool) bool {
	u := l.usage(d, code)
	if t == model.Practical {
		if elective {
			return true
		}
		return u.practical < 1
	}
	return u.lecture+u.tutorial < 1
}

// CommitCourseType counts a successfully placed session.
func (l *UsageLedger) CommitCourseType(d model.Day, code string, t model.SessionType) {
	u := l.usage(d, code)
	switch t {
	case model.Lecture:
		u.lecture++
	case model.Tutorial:
		u.tutorial++
	case model.Practical:
		u.practical++
	}
}

// CourseTypeCount reports how many sessions of a type were placed that day.
func (l *UsageLedger) CourseTypeCount(d model.Day, code string, t model.SessionType) int {
	u, ok := l.courseUsage[d][code]
	if !ok {
		return 0
	}
	switch t {
	case model.Lecture:
		return u.lecture
	case model.Tutorial:
		return u.tutorial
	default:
		return u.practical
	}
}

// IsFacultyFree checks the faculty busy set for the day against the slot
// set. Courses with no assigned faculty never block and are never blocked.
func (l *UsageLedger) IsFacultyFree(d model.Day, faculty string, slots []string) bool {
	if faculty == "" {
		return true
	}
	busy, ok := l.facultyBusy[d][faculty]
	if !ok {
		return true
	}
	return !busy.intersects(slots)
}

// ReserveFaculty marks the slots busy for the faculty on the day.
func (l *UsageLedger) ReserveFaculty(d model.Day, faculty string, slots []string) {
	if faculty == "" {
		return
	}
	busy, ok := l.facultyBusy[d][faculty]
	if !ok {
		busy = make(slotSet)
		l.facultyBusy[d][faculty] = busy
	}
	busy.add(slots)
}

// IsRoomFree checks the room busy set for the day. The shared combined hall
// is always considered free.
func (l *UsageLedger) IsRoomFree(d model.Day, room string, slots []string) bool {
	if room == "" || room == l.sharedHall {
		return true
	}
	busy, ok := l.roomBusy[d][room]
	if !ok {
		return true
	}
	return !busy.intersects(slots)
}

// ReserveRoom marks the slots busy for the room on the day.
func (l *UsageLedger) ReserveRoom(d model.Day, room string, slots []string) {
	if room == "" {
		return
	}
	busy, ok := l.roomBusy[d][room]
	if !ok {
		busy = make(slotSet)
		l.roomBusy[d][room] = busy
	}
	busy.add(slots)
}
