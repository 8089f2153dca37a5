package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TimeSlot is one fixed interval of the daily slot grid. Identity is the
// "start-end" key; ordering is by start time.
type TimeSlot struct {
	Start    string
	End      string
	Key      string
	Duration float64 // hours
}

// NewTimeSlot parses a start/end wall-clock pair ("HH:MM").
func NewTimeSlot(start, end string) (TimeSlot, error) {
	s, err := minutesOfDay(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := minutesOfDay(end)
	if err != nil {
		return TimeSlot{}, err
	}
	if e <= s {
		return TimeSlot{}, fmt.Errorf("time slot %s-%s ends before it starts", start, end)
	}
	return TimeSlot{
		Start:    start,
		End:      end,
		Key:      start + "-" + end,
		Duration: float64(e-s) / 60.0,
	}, nil
}

func minutesOfDay(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed wall-clock time %q, want HH:MM", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed wall-clock time %q: %w", t, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed wall-clock time %q: %w", t, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("wall-clock time %q out of range", t)
	}
	return h*60 + m, nil
}

// SlotTable is the process-wide ordered slot grid, partitioned into regular
// and excluded (break/admin) slots. It is built once and never mutated.
type SlotTable struct {
	slots    []TimeSlot
	index    map[string]int
	excluded map[string]bool
}

// NewSlotTable sorts the given slots chronologically and marks the excluded
// subset. Excluded keys must reference known slots.
func NewSlotTable(slots []TimeSlot, excluded []string) (*SlotTable, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("slot table needs at least one time slot")
	}
	ordered := make([]TimeSlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		si, _ := minutesOfDay(ordered[i].Start)
		sj, _ := minutesOfDay(ordered[j].Start)
		return si < sj
	})
	t := &SlotTable{
		slots:    ordered,
		index:    make(map[string]int, len(ordered)),
		excluded: make(map[string]bool, len(excluded)),
	}
	for i, s := range ordered {
		if _, dup := t.index[s.Key]; dup {
			return nil, fmt.Errorf("duplicate time slot %s", s.Key)
		}
		t.index[s.Key] = i
	}
	for _, k := range excluded {
		if _, ok := t.index[k]; !ok {
			return nil, fmt.Errorf("excluded slot %s is not in the slot grid", k)
		}
		t.excluded[k] = true
	}
	return t, nil
}

// Keys returns slot keys in chronological order.
func (t *SlotTable) Keys() []string {
	keys := make([]string, len(t.slots))
	for i, s := range t.slots {
		keys[i] = s.Key
	}
	return keys
}

// Count returns the number of slots in the grid.
func (t *SlotTable) Count() int { return len(t.slots) }

// Contains reports whether key is part of the slot grid.
func (t *SlotTable) Contains(key string) bool {
	_, ok := t.index[key]
	return ok
}

// IsExcluded reports whether key is a break/admin slot.
func (t *SlotTable) IsExcluded(key string) bool { return t.excluded[key] }

// Duration returns the length of the slot in hours, 0 for unknown keys.
func (t *SlotTable) Duration(key string) float64 {
	i, ok := t.index[key]
	if !ok {
		return 0
	}
	return t.slots[i].Duration
}

// TotalDuration sums the durations of the given slot keys.
func (t *SlotTable) TotalDuration(keys []string) float64 {
	var total float64
	for _, k := range keys {
		total += t.Duration(k)
	}
	return total
}
