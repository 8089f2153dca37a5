package scheduler

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// ElectiveSynchronizer pins every section sharing an elective sync key to
// the day/slot combination chosen by the first section that placed it. One
// synchronizer is threaded across all generate calls of a sync group (e.g.
// all third-semester sections) so students can pick across sections.
type ElectiveSynchronizer struct {
	placements map[string]SyncPlacement
}

// NewElectiveSynchronizer creates an empty synchronizer.
func NewElectiveSynchronizer() *ElectiveSynchronizer {
	return &ElectiveSynchronizer{placements: make(map[string]SyncPlacement)}
}

// Lookup returns the recorded placement for a sync key.
func (es *ElectiveSynchronizer) Lookup(key string) (SyncPlacement, bool) {
	p, ok := es.placements[key]
	return p, ok
}

// Record pins a sync key to a placement. The first record wins; later calls
// for the same key are ignored so an established meeting time never moves.
func (es *ElectiveSynchronizer) Record(key string, p SyncPlacement) {
	if key == "" {
		return
	}
	if _, ok := es.placements[key]; ok {
		return
	}
	es.placements[key] = p
}

// Known reports whether the sync key already has a placement.
func (es *ElectiveSynchronizer) Known(key string) bool {
	_, ok := es.placements[key]
	return ok
}

// ElectiveRoomMap assigns one classroom per elective sync key for the whole
// run, so every section of an elective prints the same room in its legend.
type ElectiveRoomMap struct {
	rooms map[string]string
	pool  []string // shuffled classroom ids
	rng   *rand.Rand
}

// NewElectiveRoomMap shuffles the classroom pool with the injected source;
// a fixed seed reproduces the same room table.
func NewElectiveRoomMap(classrooms []model.Room, rng *rand.Rand) *ElectiveRoomMap {
	ids := make([]string, 0, len(classrooms))
	for _, r := range classrooms {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return &ElectiveRoomMap{rooms: make(map[string]string), pool: ids, rng: rng}
}

// Peek returns an already-assigned room without assigning one.
func (m *ElectiveRoomMap) Peek(key string) (string, bool) {
	r, ok := m.rooms[key]
	return r, ok
}

// Room returns the room pinned to a sync key, assigning the first untaken
// pool room on first use. When the pool is exhausted rooms are reused.
func (m *ElectiveRoomMap) Room(key string) (string, bool) {
	if key == "" || len(m.pool) == 0 {
		return "", false
	}
	if r, ok := m.rooms[key]; ok {
		return r, true
	}
	taken := make(map[string]bool, len(m.rooms))
	for _, r := range m.rooms {
		taken[r] = true
	}
	chosen := ""
	for _, r := range m.pool {
		if !taken[r] {
			chosen = r
			break
		}
	}
	if chosen == "" {
		chosen = m.pool[m.rng.Intn(len(m.pool))]
	}
	m.rooms[key] = chosen
	return chosen, true
}

// electiveEntry pairs a schedulable course with its sync key. Basket groups
// collapse to one representative entry per basket.
type electiveEntry struct {
	course  *model.Course
	syncKey string
}

// electiveEntries builds the placement list for a roster's electives:
// ungrouped electives keep their own identity, while each elective basket is
// represented once under a synthetic "Elective<basket>" code carrying the
// hours and faculty of its first member.
func electiveEntries(electives []*model.Course) []electiveEntry {
	var entries []electiveEntry
	baskets := make(map[string][]*model.Course)
	for _, c := range electives {
		if c.HasBasket() {
			baskets[c.Basket] = append(baskets[c.Basket], c)
		} else {
			entries = append(entries, electiveEntry{course: c, syncKey: c.SyncKey()})
		}
	}
	ids := make([]string, 0, len(baskets))
	for b := range baskets {
		ids = append(ids, b)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, errI := strconv.Atoi(ids[i])
		nj, errJ := strconv.Atoi(ids[j])
		if errI == nil && errJ == nil {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
	for _, b := range ids {
		chosen := baskets[b][0]
		rep := &model.Course{
			Code:       "Elective" + b,
			Title:      chosen.Title,
			Faculty:    chosen.Faculty,
			Lecture:    chosen.Lecture,
			Tutorial:   chosen.Tutorial,
			Practical:  chosen.Practical,
			IsElective: true,
			Basket:     b,
		}
		entries = append(entries, electiveEntry{course: rep, syncKey: chosen.SyncKey()})
	}
	return entries
}
