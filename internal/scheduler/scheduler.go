package scheduler

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// Scheduler drives timetable generation for all groups of one run. It owns
// the state threaded across generate calls: the building-wide room ledger,
// the elective room map, and one synchronizer per sync group. All state is
// mutated in place by strictly sequential calls; there is no concurrency.
type Scheduler struct {
	cfg        Config
	table      *model.SlotTable
	rooms      []model.Room
	reg        map[string]int
	roomBusy   RoomBusy
	electRooms *ElectiveRoomMap
	syncGroups map[string]*ElectiveSynchronizer
	log        *zap.Logger
	runID      string
}

// GenerateOptions selects the roster-specific policies for one call.
type GenerateOptions struct {
	// Label names the group/half in failure records and sheet blocks.
	Label string
	// SyncGroup keys the elective synchronizer shared by all sections
	// that must offer identical elective meeting times.
	SyncGroup string
	// RoomPrefix narrows the classroom pool to the group's wing.
	RoomPrefix string
	// Seed offsets the day-rotation start for this call.
	Seed int
	// HideSharedHall drops the joint-lecture hall id from cell labels.
	HideSharedHall bool
}

// Result is the outcome of one generate call: a populated grid plus the
// soft-failure listing, or a validation error with an empty grid.
type Result struct {
	Label    string
	Grid     *model.TimeGrid
	Placed   []*model.Course
	Failures []model.UnplacedChunk
	Balance  BalanceReport
	Err      error
}

// New creates a scheduler over the shared room roster and registration
// counts. reg may be nil.
func New(cfg Config, table *model.SlotTable, rooms []model.Room, reg map[string]int) *Scheduler {
	cfg = cfg.withDefaults()
	classrooms, _ := model.PartitionRooms(rooms)
	return &Scheduler{
		cfg:        cfg,
		table:      table,
		rooms:      rooms,
		reg:        reg,
		roomBusy:   NewRoomBusy(),
		electRooms: NewElectiveRoomMap(classrooms, cfg.Rand),
		syncGroups: make(map[string]*ElectiveSynchronizer),
		log:        cfg.Logger,
		runID:      uuid.NewString(),
	}
}

// ElectiveRooms exposes the run-wide elective room table for legends.
func (s *Scheduler) ElectiveRooms() *ElectiveRoomMap { return s.electRooms }

// RunID identifies this scheduler's run in logs and reports.
func (s *Scheduler) RunID() string { return s.runID }

// SharedHall returns the effective joint-lecture hall id after defaults.
func (s *Scheduler) SharedHall() string { return s.cfg.SharedHall }

func (s *Scheduler) syncGroup(id string) *ElectiveSynchronizer {
	es, ok := s.syncGroups[id]
	if !ok {
		es = NewElectiveSynchronizer()
		s.syncGroups[id] = es
	}
	return es
}

// Generate builds one group/half timetable. Electives are placed first
// (synced ones before free ones), then the combined joint-lecture pass, then
// regular core courses. A roster validation failure returns an empty result
// without touching any shared state.
func (s *Scheduler) Generate(courses []*model.Course, opts GenerateOptions) *Result {
	res := &Result{Label: opts.Label}
	if err := ValidateRoster(courses); err != nil {
		s.log.Warn("roster rejected, skipping group",
			zap.String("run", s.runID),
			zap.String("label", opts.Label),
			zap.Error(err))
		res.Err = err
		return res
	}

	grid := model.NewTimeGrid(s.table)
	ledger := NewUsageLedger(s.roomBusy, s.cfg.SharedHall)
	rooms := NewRoomAllocator(s.rooms, s.reg, s.cfg.SharedHall)
	alloc := NewSlotAllocator(grid, ledger, rooms, s.log)
	sync := s.syncGroup(opts.SyncGroup)

	var electives, combined, regular []*model.Course
	for _, c := range courses {
		switch {
		case c.IsElective:
			electives = append(electives, c)
		case c.IsCombined:
			combined = append(combined, c)
		default:
			regular = append(regular, c)
		}
	}
	for _, c := range combined {
		for _, t := range model.SessionTypes {
			rooms.AssignFixed(c.Code, t, s.cfg.SharedHall)
		}
	}

	entries := electiveEntries(electives)
	// Sections whose electives already have a pinned time go first so the
	// fast path claims those cells before free search fragments them.
	sort.SliceStable(entries, func(i, j int) bool {
		return sync.Known(entries[i].syncKey) && !sync.Known(entries[j].syncKey)
	})

	p := &placer{
		scheduler: s,
		alloc:     alloc,
		sync:      sync,
		rooms:     rooms,
		opts:      opts,
		rotation:  ((opts.Seed % len(model.Days)) + len(model.Days)) % len(model.Days),
	}
	for _, e := range entries {
		p.placeCourse(e.course, e.syncKey)
		res.Placed = append(res.Placed, e.course)
	}
	combinedPlaced, combinedFails := s.placeCombined(combined, alloc, opts)
	res.Placed = append(res.Placed, combinedPlaced...)
	p.failures = append(p.failures, combinedFails...)
	for _, c := range regular {
		p.placeCourse(c, "")
		res.Placed = append(res.Placed, c)
	}

	res.Grid = grid
	res.Failures = p.failures
	res.Balance = DayLoadBalance(grid)
	s.log.Info("generated timetable",
		zap.String("run", s.runID),
		zap.String("label", opts.Label),
		zap.Int("courses", len(courses)),
		zap.Int("unplaced_chunks", len(res.Failures)),
		zap.Float64("mean_hours_per_day", res.Balance.MeanHours),
		zap.Float64("stddev_hours_per_day", res.Balance.StdDevHours))
	return res
}

// placer walks one generate call's course lists and drives the slot
// allocator with the day-rotation and excluded-slot fallback policies.
type placer struct {
	scheduler *Scheduler
	alloc     *SlotAllocator
	sync      *ElectiveSynchronizer
	rooms     *RoomAllocator
	opts      GenerateOptions
	rotation  int
	failures  []model.UnplacedChunk
}

// placeCourse decomposes one course's hour pools into chunks and places them
// under the bounded attempt budget. Residual hours become failure records.
func (p *placer) placeCourse(c *model.Course, syncKey string) {
	cfg := p.scheduler.cfg
	for _, typ := range model.SessionTypes {
		hours := c.Hours(typ)
		attempts := 0
		for hours > eps && attempts < cfg.MaxAttempts {
			size := chunkSize(typ, hours)
			req := PlacementRequest{
				Code:        c.Code,
				Faculty:     c.Faculty,
				Type:        typ,
				Hours:       size,
				Elective:    c.IsElective,
				ClassPrefix: p.opts.RoomPrefix,
				HideHall:    p.opts.HideSharedHall,
			}
			if c.IsElective && syncKey != "" {
				if room, ok := p.scheduler.electRooms.Room(syncKey); ok {
					for _, t := range model.SessionTypes {
						p.rooms.AssignFixed(c.Code, t, room)
					}
				}
			}

			placement, placed := p.tryPlace(req, c.IsElective, syncKey)
			if placed {
				hours -= size
				if syncKey != "" && !p.sync.Known(syncKey) {
					p.sync.Record(syncKey, placement)
				}
			}
			attempts++
		}
		if hours > eps {
			p.failures = append(p.failures, model.UnplacedChunk{
				Label:          p.opts.Label,
				CourseCode:     c.Code,
				Type:           typ,
				HoursRemaining: math.Round(hours*100) / 100,
				Faculty:        c.Faculty,
			})
		}
	}
}

// tryPlace runs one attempt's fallback ladder: the sync fast path, then
// rotation passes over regular slots, then the excluded-slot overflow.
func (p *placer) tryPlace(req PlacementRequest, elective bool, syncKey string) (SyncPlacement, bool) {
	if syncKey != "" {
		if pref, ok := p.sync.Lookup(syncKey); ok {
			if placement, placed := p.alloc.AllocSearch(pref.Day, req, false, &pref); placed {
				return placement, true
			}
		}
	}
	cfg := p.scheduler.cfg
	for cycle := 0; cycle < cfg.RotationCycles; cycle++ {
		for _, d := range p.dayOrder(elective) {
			if placement, placed := p.alloc.AllocSearch(d, req, false, nil); placed {
				return placement, true
			}
		}
	}
	for _, d := range model.Days {
		if placement, placed := p.alloc.AllocSearch(d, req, true, nil); placed {
			return placement, true
		}
	}
	return SyncPlacement{}, false
}

// dayOrder yields the scan order for one rotation pass. Electives always
// scan Monday-first since their placement is pinned by the sync map on first
// success; core courses advance a rotating start day so consecutive
// placements spread across the week.
func (p *placer) dayOrder(elective bool) []model.Day {
	if elective {
		return model.Days
	}
	n := len(model.Days)
	order := make([]model.Day, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, model.Days[(p.rotation+i)%n])
	}
	p.rotation = (p.rotation + 1) % n
	return order
}

// chunkSize picks the next chunk on the degrade ladder for the remaining
// hours of a session type: lectures 1.5h with 1.0h remainders, tutorials
// 1.0h, practicals 2.0h degrading to 1.5h then 1.0h.
func chunkSize(t model.SessionType, remaining float64) float64 {
	switch t {
	case model.Practical:
		switch {
		case remaining >= 2.0:
			return 2.0
		case remaining >= 1.5:
			return 1.5
		default:
			return 1.0
		}
	case model.Tutorial:
		return 1.0
	default:
		if remaining >= 1.5 {
			return 1.5
		}
		return 1.0
	}
}
