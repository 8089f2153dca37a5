// Package exam assigns end-semester exams to dated morning/afternoon slots
// and rooms. It is a greedy bin-packing pass, independent of the weekly
// timetable engine: rooms are filled at half capacity small-first, halls
// last, under per-group and campus-wide daily exam caps.
package exam

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// Config tunes the exam pass. Zero values take the defaults below.
type Config struct {
	StartDate         time.Time
	Slots             []string
	MaxPerDay         int
	MaxPerGroupPerDay int
	HorizonDays       int
	Logger            *zap.Logger
}

const (
	defaultMaxPerDay      = 4
	defaultMaxPerGroupDay = 1
	defaultHorizonDays    = 30
)

var defaultSlots = []string{"09:00-12:00", "14:00-17:00"}

func (c Config) withDefaults() Config {
	if c.StartDate.IsZero() {
		now := time.Now()
		c.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	}
	if len(c.Slots) == 0 {
		c.Slots = defaultSlots
	}
	if c.MaxPerDay <= 0 {
		c.MaxPerDay = defaultMaxPerDay
	}
	if c.MaxPerGroupPerDay <= 0 {
		c.MaxPerGroupPerDay = defaultMaxPerGroupDay
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = defaultHorizonDays
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// RoomShare is one room's contribution of seats to an exam.
type RoomShare struct {
	RoomID string
	Seats  int
}

// Placement is one scheduled exam sitting.
type Placement struct {
	Date         time.Time
	Slot         string
	Group        string
	Code         string
	Title        string
	Students     int
	Rooms        []RoomShare
	Invigilators []string
}

// examRoom is a seating-eligible room: labs and the library are excluded,
// and only half the nominal capacity is usable for exam spacing.
type examRoom struct {
	id     string
	cap    int
	usable int
	isHall bool
}

// Scheduler runs the exam pass. Single-threaded, like the weekly engine.
type Scheduler struct {
	cfg          Config
	rooms        []examRoom
	invigilators []string
	invIdx       int
	groups       []string
	courses      map[string][]*model.ExamCourse

	remaining   map[string]map[string]map[string]int // date -> slot -> room -> seats left
	groupDaily  map[string]map[string]int            // date -> group -> exams
	globalDaily map[string]int                       // date -> exams

	// electives with the same code sit together once across groups.
	electivePlaced map[string]*Placement
}

// New builds the exam scheduler over the shared room roster. Courses are
// ordered largest-first within each group; groups run in sorted label order.
func New(rooms []model.Room, invigilators []string, groups map[string][]*model.ExamCourse, cfg Config) *Scheduler {
	cfg = cfg.withDefaults()
	s := &Scheduler{
		cfg:            cfg,
		invigilators:   invigilators,
		courses:        make(map[string][]*model.ExamCourse, len(groups)),
		remaining:      make(map[string]map[string]map[string]int),
		groupDaily:     make(map[string]map[string]int),
		globalDaily:    make(map[string]int),
		electivePlaced: make(map[string]*Placement),
	}
	for _, r := range rooms {
		id := strings.TrimSpace(r.ID)
		t := strings.ToLower(r.Type)
		if id == "" || r.Capacity <= 0 {
			continue
		}
		if r.IsLab() || strings.Contains(t, "library") {
			continue
		}
		isHall := strings.Contains(t, "hall") || id == "C002" || id == "C003" || id == "C004"
		s.rooms = append(s.rooms, examRoom{
			id:     id,
			cap:    r.Capacity,
			usable: (r.Capacity + 1) / 2,
			isHall: isHall,
		})
	}
	sort.Slice(s.rooms, func(i, j int) bool {
		if s.rooms[i].usable != s.rooms[j].usable {
			return s.rooms[i].usable < s.rooms[j].usable
		}
		return s.rooms[i].id < s.rooms[j].id
	})
	for g, list := range groups {
		ordered := make([]*model.ExamCourse, len(list))
		copy(ordered, list)
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].Students != ordered[j].Students {
				return ordered[i].Students > ordered[j].Students
			}
			return ordered[i].Code < ordered[j].Code
		})
		s.courses[g] = ordered
		s.groups = append(s.groups, g)
	}
	sort.Strings(s.groups)
	return s
}

// invigilatorsNeeded follows the room size rule: large rooms get a pair.
func invigilatorsNeeded(capacity int) int {
	if capacity >= 200 {
		return 2
	}
	return 1
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func (s *Scheduler) ensureDate(key string) {
	if _, ok := s.remaining[key]; ok {
		return
	}
	bySlot := make(map[string]map[string]int, len(s.cfg.Slots))
	for _, slot := range s.cfg.Slots {
		byRoom := make(map[string]int, len(s.rooms))
		for _, r := range s.rooms {
			byRoom[r.id] = r.usable
		}
		bySlot[slot] = byRoom
	}
	s.remaining[key] = bySlot
	s.groupDaily[key] = make(map[string]int, len(s.groups))
}

// allocRooms packs the needed seats from the date/slot's remaining
// capacity, small rooms first. Halls join the pool only when the normal
// rooms alone cannot cover the head count.
func (s *Scheduler) allocRooms(key, slot string, need int) []RoomShare {
	remaining := s.remaining[key][slot]
	try := func(includeHalls bool) []RoomShare {
		var alloc []RoomShare
		total := 0
		for _, r := range s.rooms {
			if r.isHall && !includeHalls {
				continue
			}
			avail := remaining[r.id]
			if avail <= 0 {
				continue
			}
			take := need - total
			if take > avail {
				take = avail
			}
			alloc = append(alloc, RoomShare{RoomID: r.id, Seats: take})
			total += take
			if total >= need {
				return alloc
			}
		}
		return nil
	}
	if alloc := try(false); alloc != nil {
		return alloc
	}
	return try(true)
}

func (s *Scheduler) assignInvigilators(rooms []RoomShare) []string {
	if len(s.invigilators) == 0 {
		return nil
	}
	var names []string
	for _, rs := range rooms {
		capacity := 0
		for _, r := range s.rooms {
			if r.id == rs.RoomID {
				capacity = r.cap
				break
			}
		}
		for i := 0; i < invigilatorsNeeded(capacity); i++ {
			names = append(names, s.invigilators[s.invIdx%len(s.invigilators)])
			s.invIdx++
		}
	}
	return names
}

// place finds the earliest date and slot within the horizon that satisfies
// the daily caps and seats the exam.
func (s *Scheduler) place(c *model.ExamCourse) *Placement {
	for offset := 0; offset < s.cfg.HorizonDays; offset++ {
		date := s.cfg.StartDate.AddDate(0, 0, offset)
		if date.Weekday() == time.Sunday {
			continue
		}
		key := dateKey(date)
		s.ensureDate(key)
		if s.globalDaily[key] >= s.cfg.MaxPerDay {
			continue
		}
		if s.groupDaily[key][c.Group] >= s.cfg.MaxPerGroupPerDay {
			continue
		}
		for _, slot := range s.cfg.Slots {
			alloc := s.allocRooms(key, slot, c.Students)
			if alloc == nil {
				continue
			}
			for _, rs := range alloc {
				s.remaining[key][slot][rs.RoomID] -= rs.Seats
			}
			s.globalDaily[key]++
			s.groupDaily[key][c.Group]++
			return &Placement{
				Date:         date,
				Slot:         slot,
				Group:        c.Group,
				Code:         c.Code,
				Title:        c.Title,
				Students:     c.Students,
				Rooms:        alloc,
				Invigilators: s.assignInvigilators(alloc),
			}
		}
	}
	return nil
}

// Run schedules every group's exams largest-first and returns placements
// plus the exams that did not fit inside the horizon. An elective already
// seated for another group reuses that sitting.
func (s *Scheduler) Run() ([]Placement, []*model.ExamCourse) {
	var placed []Placement
	var unscheduled []*model.ExamCourse
	for _, g := range s.groups {
		for _, c := range s.courses[g] {
			if c.IsElective {
				if prior, ok := s.electivePlaced[c.Code]; ok {
					shared := *prior
					shared.Group = c.Group
					key := dateKey(shared.Date)
					s.groupDaily[key][c.Group]++
					placed = append(placed, shared)
					continue
				}
			}
			p := s.place(c)
			if p == nil {
				s.cfg.Logger.Warn("exam could not be scheduled within horizon",
					zap.String("group", c.Group),
					zap.String("course", c.Code),
					zap.Int("students", c.Students))
				unscheduled = append(unscheduled, c)
				continue
			}
			if c.IsElective {
				s.electivePlaced[c.Code] = p
			}
			placed = append(placed, *p)
		}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		if !placed[i].Date.Equal(placed[j].Date) {
			return placed[i].Date.Before(placed[j].Date)
		}
		if placed[i].Slot != placed[j].Slot {
			return placed[i].Slot < placed[j].Slot
		}
		return placed[i].Group < placed[j].Group
	})
	s.cfg.Logger.Info("exam schedule complete",
		zap.Int("placed", len(placed)),
		zap.Int("unscheduled", len(unscheduled)))
	return placed, unscheduled
}

// ScheduleRow is the CSV projection of a placement.
type ScheduleRow struct {
	Date         string `csv:"Date"`
	Slot         string `csv:"Slot"`
	Group        string `csv:"Group"`
	CourseCode   string `csv:"Course_Code"`
	CourseTitle  string `csv:"Course_Title"`
	Students     int    `csv:"Students"`
	Rooms        string `csv:"Rooms"`
	Invigilators string `csv:"Invigilators"`
}

// Rows flattens placements for CSV export.
func Rows(placements []Placement) []*ScheduleRow {
	rows := make([]*ScheduleRow, 0, len(placements))
	for _, p := range placements {
		var rooms []string
		for _, rs := range p.Rooms {
			rooms = append(rooms, rs.RoomID+":"+strconv.Itoa(rs.Seats))
		}
		rows = append(rows, &ScheduleRow{
			Date:         dateKey(p.Date),
			Slot:         p.Slot,
			Group:        p.Group,
			CourseCode:   p.Code,
			CourseTitle:  p.Title,
			Students:     p.Students,
			Rooms:        strings.Join(rooms, "; "),
			Invigilators: strings.Join(p.Invigilators, "; "),
		})
	}
	return rows
}
