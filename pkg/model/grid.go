package model

// TimeGrid is one group's day×slot availability matrix. Cells hold the
// rendered session label, or "" when free. A cell, once written, is never
// overwritten or cleared during a generate call.
type TimeGrid struct {
	table *SlotTable
	cells [][]string // [day][slot index]
}

// NewTimeGrid creates an empty grid over the given slot table.
func NewTimeGrid(table *SlotTable) *TimeGrid {
	cells := make([][]string, len(Days))
	for i := range cells {
		cells[i] = make([]string, table.Count())
	}
	return &TimeGrid{table: table, cells: cells}
}

// Slots returns the grid's slot table.
func (g *TimeGrid) Slots() *SlotTable { return g.table }

// At returns the cell content for a day and slot key ("" when free or the
// key is unknown).
func (g *TimeGrid) At(d Day, key string) string {
	i, ok := g.table.index[key]
	if !ok {
		return ""
	}
	return g.cells[d][i]
}

// IsFree reports whether a known slot is empty on the given day.
func (g *TimeGrid) IsFree(d Day, key string) bool {
	i, ok := g.table.index[key]
	if !ok {
		return false
	}
	return g.cells[d][i] == ""
}

// Place writes label into every target cell. It re-validates emptiness even
// when the caller already checked, since the grid may have changed between
// block discovery and the placement attempt. Returns false and writes
// nothing if any target is occupied or unknown.
func (g *TimeGrid) Place(d Day, keys []string, label string) bool {
	idx := make([]int, len(keys))
	for n, k := range keys {
		i, ok := g.table.index[k]
		if !ok || g.cells[d][i] != "" {
			return false
		}
		idx[n] = i
	}
	for _, i := range idx {
		g.cells[d][i] = label
	}
	return true
}

// FreeBlocks returns the maximal contiguous runs of empty slots for a day,
// in chronological order. Occupied slots always split a run; excluded slots
// also split unless includeExcluded is set.
func (g *TimeGrid) FreeBlocks(d Day, includeExcluded bool) [][]string {
	var blocks [][]string
	var block []string
	for i, s := range g.table.slots {
		if !includeExcluded && g.table.excluded[s.Key] {
			if len(block) > 0 {
				blocks = append(blocks, block)
				block = nil
			}
			continue
		}
		if g.cells[d][i] == "" {
			block = append(block, s.Key)
		} else if len(block) > 0 {
			blocks = append(blocks, block)
			block = nil
		}
	}
	if len(block) > 0 {
		blocks = append(blocks, block)
	}
	return blocks
}

// Row returns the day's cells in slot order.
func (g *TimeGrid) Row(d Day) []string {
	row := make([]string, len(g.cells[d]))
	copy(row, g.cells[d])
	return row
}

// PlacedHours sums the occupied slot durations for a day.
func (g *TimeGrid) PlacedHours(d Day) float64 {
	var total float64
	for i, s := range g.table.slots {
		if g.cells[d][i] != "" {
			total += s.Duration
		}
	}
	return total
}
