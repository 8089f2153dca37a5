package scheduler

import (
	"go.uber.org/zap"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// eps guards float accumulation of slot durations.
const eps = 1e-9

// SyncPlacement pins an elective to a day and slot list.
type SyncPlacement struct {
	Day   model.Day
	Slots []string
}

// PlacementRequest carries everything one allocation attempt needs to know
// about the session being placed.
type PlacementRequest struct {
	Code        string
	Faculty     string
	Type        model.SessionType
	Hours       float64
	Elective    bool
	ClassPrefix string
	// HideHall suppresses the shared-hall annotation in rendered labels
	// for groups that print the joint lecture without its room.
	HideHall bool
}

// SlotAllocator carves contiguous sub-blocks out of a TimeGrid and commits
// them against the usage ledger and room allocator. It encapsulates the
// one-shot alloc operation; failure is a boolean, never an error.
type SlotAllocator struct {
	grid   *model.TimeGrid
	ledger *UsageLedger
	rooms  *RoomAllocator
	log    *zap.Logger
}

// NewSlotAllocator wires an allocator over one generate call's state.
func NewSlotAllocator(grid *model.TimeGrid, ledger *UsageLedger, rooms *RoomAllocator, log *zap.Logger) *SlotAllocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &SlotAllocator{grid: grid, ledger: ledger, rooms: rooms, log: log}
}

// AllocSpecific places the session at an exact slot list. It fails when any
// target slot is occupied or unknown, the per-day course/type budget is
// violated, or room allocation fails. Faculty availability is not checked
// here: the callers (elective sync and combined-course placement) pin slots
// that are already coordinated.
func (a *SlotAllocator) AllocSpecific(d model.Day, slots []string, req PlacementRequest) bool {
	table := a.grid.Slots()
	for _, s := range slots {
		if !table.Contains(s) || !a.grid.IsFree(d, s) {
			return false
		}
	}
	if !a.ledger.CanUseCourseType(d, req.Code, req.Type, req.Elective) {
		return false
	}
	room := ""
	if !req.Elective {
		var ok bool
		room, ok = a.rooms.Select(req.Code, req.Type, req.ClassPrefix, d, slots, a.ledger)
		if !ok {
			return false
		}
	}
	return a.commit(d, slots, req, room)
}

// AllocSearch scans the day's free blocks for the first one whose minimal
// prefix covers the requested hours, honoring excluded-slot and faculty
// constraints, and commits it. When preferred is given for this day and
// covers the hours, it is tried first via AllocSpecific. Returns the chosen
// placement so electives can record their synchronization point.
func (a *SlotAllocator) AllocSearch(d model.Day, req PlacementRequest, allowExcluded bool, preferred *SyncPlacement) (SyncPlacement, bool) {
	if !a.ledger.CanUseCourseType(d, req.Code, req.Type, req.Elective) {
		return SyncPlacement{}, false
	}
	table := a.grid.Slots()

	if preferred != nil && preferred.Day == d &&
		table.TotalDuration(preferred.Slots)+eps >= req.Hours {
		if a.AllocSpecific(d, preferred.Slots, req) {
			return SyncPlacement{Day: d, Slots: preferred.Slots}, true
		}
	}

	for _, block := range a.grid.FreeBlocks(d, allowExcluded) {
		if table.TotalDuration(block)+eps < req.Hours {
			continue
		}
		// Carve the first sufficient prefix, not the best fit.
		var use []string
		var dur float64
		for _, s := range block {
			use = append(use, s)
			dur += table.Duration(s)
			if dur+eps >= req.Hours {
				break
			}
		}
		if !allowExcluded && containsExcluded(table, use) {
			continue
		}
		if !a.ledger.IsFacultyFree(d, req.Faculty, use) {
			continue
		}
		room := ""
		if !req.Elective {
			var ok bool
			room, ok = a.rooms.Select(req.Code, req.Type, req.ClassPrefix, d, use, a.ledger)
			if !ok {
				continue
			}
		}
		if !a.commit(d, use, req, room) {
			continue
		}
		return SyncPlacement{Day: d, Slots: use}, true
	}
	return SyncPlacement{}, false
}

// commit writes the grid cells and reserves faculty, room, and the daily
// type budget. The grid re-validates emptiness on write.
func (a *SlotAllocator) commit(d model.Day, slots []string, req PlacementRequest, room string) bool {
	label := a.sessionLabel(req, room)
	if !a.grid.Place(d, slots, label) {
		a.log.Debug("placement lost target cells between discovery and write",
			zap.String("course", req.Code), zap.Stringer("day", d))
		return false
	}
	a.ledger.ReserveFaculty(d, req.Faculty, slots)
	if room != "" {
		a.ledger.ReserveRoom(d, room, slots)
	}
	a.ledger.CommitCourseType(d, req.Code, req.Type)
	return true
}

func containsExcluded(table *model.SlotTable, keys []string) bool {
	for _, k := range keys {
		if table.IsExcluded(k) {
			return true
		}
	}
	return false
}

// sessionLabel renders the cell text: course code, tutorial suffix, and the
// room annotation. Combined-hall courses carry the hall id unless hidden;
// electives never embed a room since their rooms live in the legend.
func (a *SlotAllocator) sessionLabel(req PlacementRequest, room string) string {
	code := req.Code
	if a.rooms.IsCombinedHall(code) {
		hall := a.rooms.sharedHall
		switch {
		case req.Type == model.Practical:
			return code + " (Lab)"
		case req.Type == model.Tutorial && req.HideHall:
			return code + "T"
		case req.Type == model.Tutorial:
			return code + "T (" + hall + ")"
		case req.HideHall:
			return code
		default:
			return code + " (" + hall + ")"
		}
	}
	if room != "" && !req.Elective {
		switch req.Type {
		case model.Tutorial:
			return code + "T (" + room + ")"
		case model.Practical:
			return code + " (Lab-" + room + ")"
		default:
			return code + " (" + room + ")"
		}
	}
	switch req.Type {
	case model.Tutorial:
		return code + "T"
	case model.Practical:
		return code + " (Lab)"
	default:
		return code
	}
}
