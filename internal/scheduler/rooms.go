package scheduler

import (
	"sort"
	"strings"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// labWingForPrefix maps a group's classroom prefix to the lab wing its
// practicals should prefer.
var labWingForPrefix = map[string]string{
	"C1": "L1",
	"C2": "L2",
	"C3": "L3",
	"C4": "L4",
}

type roomKey struct {
	Code string
	Type model.SessionType
}

// RoomAllocator selects rooms for (course, session-type) pairs. A room is
// sticky: the first assignment for a pair is reused for every later session
// of that pair, so a course meets in one room per type across the week.
type RoomAllocator struct {
	classrooms []model.Room // ascending capacity
	labs       []model.Room // ascending capacity
	assigned   map[roomKey]string
	rotation   map[string]int // per-pool round-robin pointer
	reg        map[string]int // course code -> registered head count
	sharedHall string
}

// NewRoomAllocator builds an allocator over the room roster. reg may be nil
// when no registration counts are available.
func NewRoomAllocator(rooms []model.Room, reg map[string]int, sharedHall string) *RoomAllocator {
	classrooms, labs := model.PartitionRooms(rooms)
	byCapacity := func(rs []model.Room) {
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].Capacity != rs[j].Capacity {
				return rs[i].Capacity < rs[j].Capacity
			}
			return rs[i].ID < rs[j].ID
		})
	}
	byCapacity(classrooms)
	byCapacity(labs)
	if reg == nil {
		reg = map[string]int{}
	}
	return &RoomAllocator{
		classrooms: classrooms,
		labs:       labs,
		assigned:   make(map[roomKey]string),
		rotation:   make(map[string]int),
		reg:        reg,
		sharedHall: sharedHall,
	}
}

// AssignFixed pins a room to a (course, type) pair ahead of placement, used
// for combined-course halls and synced elective rooms.
func (ra *RoomAllocator) AssignFixed(code string, t model.SessionType, room string) {
	ra.assigned[roomKey{code, t}] = room
}

// AssignedRoom returns the sticky room for a pair, if one exists.
func (ra *RoomAllocator) AssignedRoom(code string, t model.SessionType) (string, bool) {
	r, ok := ra.assigned[roomKey{code, t}]
	return r, ok
}

// IsCombinedHall reports whether the course's lectures are pinned to the
// shared combined hall.
func (ra *RoomAllocator) IsCombinedHall(code string) bool {
	return ra.sharedHall != "" && ra.assigned[roomKey{code, model.Lecture}] == ra.sharedHall
}

// candidates filters a pool by room-id prefix. An empty filter result falls
// back to the whole pool so a missing wing never strands a group.
func (ra *RoomAllocator) candidates(lab bool, prefix string) []model.Room {
	pool := ra.classrooms
	if lab {
		pool = ra.labs
	}
	if prefix == "" || len(pool) == 0 {
		return pool
	}
	var filtered []model.Room
	up := strings.ToUpper(prefix)
	for _, r := range pool {
		if strings.HasPrefix(strings.ToUpper(r.ID), up) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return pool
	}
	return filtered
}

// pickRoundRobin walks the candidate list from a rotating per-pool pointer,
// returning the first room free for the slot set. The pointer advances only
// on success so repeated failures re-scan the same order.
func (ra *RoomAllocator) pickRoundRobin(cands []model.Room, poolKey string, d model.Day, slots []string, ledger *UsageLedger) (string, bool) {
	if len(cands) == 0 {
		return "", false
	}
	start := ra.rotation[poolKey] % len(cands)
	for i := 0; i < len(cands); i++ {
		r := cands[(start+i)%len(cands)]
		if ledger.IsRoomFree(d, r.ID, slots) {
			ra.rotation[poolKey] = (ra.rotation[poolKey] + 1) % len(cands)
			return r.ID, true
		}
	}
	return "", false
}

// pickBestFit returns the smallest-capacity free room that seats the given
// head count.
func (ra *RoomAllocator) pickBestFit(cands []model.Room, need int, d model.Day, slots []string, ledger *UsageLedger) (string, bool) {
	for _, r := range cands {
		if r.Capacity < need {
			continue
		}
		if ledger.IsRoomFree(d, r.ID, slots) {
			return r.ID, true
		}
	}
	return "", false
}

// Select resolves a room for the pair on the given day/slots. The sticky
// assignment wins when present (re-checked for availability, except the
// shared hall); otherwise best-fit by capacity when a registration count is
// known, else round-robin over the prefix pool.
func (ra *RoomAllocator) Select(code string, t model.SessionType, classPrefix string, d model.Day, slots []string, ledger *UsageLedger) (string, bool) {
	key := roomKey{code, t}
	if room, ok := ra.assigned[key]; ok {
		if room != ra.sharedHall && !ledger.IsRoomFree(d, room, slots) {
			return "", false
		}
		return room, true
	}

	lab := t == model.Practical
	prefix := classPrefix
	if lab {
		prefix = labWingForPrefix[classPrefix]
	}
	cands := ra.candidates(lab, prefix)

	var room string
	var ok bool
	if need := ra.reg[code]; need > 0 {
		room, ok = ra.pickBestFit(cands, need, d, slots, ledger)
	} else {
		room, ok = ra.pickRoundRobin(cands, prefix, d, slots, ledger)
	}
	if !ok {
		return "", false
	}
	ra.assigned[key] = room
	return room, true
}
