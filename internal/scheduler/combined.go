package scheduler

import (
	"math"
	"sort"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// chunk is one schedulable sub-division of a course's weekly hours.
type chunk struct {
	hours float64
	typ   model.SessionType
}

// decomposeChunks splits a course's contact hours into session chunks:
// lectures in 1.5h pieces with 1.0h remainders, tutorials in 1.0h pieces,
// practicals in 2.0h pieces degrading to 1.5h then 1.0h.
func decomposeChunks(c *model.Course) []chunk {
	var chunks []chunk
	rem := float64(c.Lecture)
	for rem > eps {
		if rem >= 1.5 {
			chunks = append(chunks, chunk{1.5, model.Lecture})
			rem -= 1.5
		} else {
			chunks = append(chunks, chunk{1.0, model.Lecture})
			rem -= 1.0
		}
	}
	rem = float64(c.Tutorial)
	for rem > eps {
		chunks = append(chunks, chunk{1.0, model.Tutorial})
		rem -= 1.0
	}
	rem = float64(c.Practical)
	for rem > eps {
		switch {
		case rem >= 2.0:
			chunks = append(chunks, chunk{2.0, model.Practical})
			rem -= 2.0
		case rem >= 1.5:
			chunks = append(chunks, chunk{1.5, model.Practical})
			rem -= 1.5
		default:
			chunks = append(chunks, chunk{1.0, model.Practical})
			rem -= 1.0
		}
	}
	return chunks
}

// weekBlock is a contiguous run of free slots on one day, pre-extracted for
// the combined-course pass.
type weekBlock struct {
	day   model.Day
	slots []string
}

// collectWeekBlocks gathers the week's free slots of the requested kind into
// contiguous per-day blocks. The scan runs latest-first (Friday evening
// backwards) so joint lectures drain the end of the week before touching
// slots the per-group search prefers.
func collectWeekBlocks(grid *model.TimeGrid, excludedOnly bool) []weekBlock {
	table := grid.Slots()
	keys := table.Keys()
	var blocks []weekBlock
	for i := len(model.Days) - 1; i >= 0; i-- {
		d := model.Days[i]
		var block []string
		flush := func() {
			if len(block) > 0 {
				blocks = append(blocks, weekBlock{day: d, slots: block})
				block = nil
			}
		}
		for j := len(keys) - 1; j >= 0; j-- {
			k := keys[j]
			if table.IsExcluded(k) != excludedOnly || !grid.IsFree(d, k) {
				flush()
				continue
			}
			block = append(block, k)
		}
		flush()
	}
	return blocks
}

// tryChunkFromBlock scans the block's sub-windows for the first one that
// covers the chunk and places it there. On success it returns the remaining
// slots as separate contiguous runs: a mid-block carve splits the block in
// two rather than handing later chunks a gapped slot list.
func (s *Scheduler) tryChunkFromBlock(alloc *SlotAllocator, blk weekBlock, req PlacementRequest) ([][]string, bool) {
	table := alloc.grid.Slots()
	n := len(blk.slots)
	for i := 0; i < n; i++ {
		var sub []string
		var accum float64
		for j := i; j < n; j++ {
			sub = append(sub, blk.slots[j])
			accum += table.Duration(blk.slots[j])
			if accum+eps >= req.Hours {
				if alloc.AllocSpecific(blk.day, sub, req) {
					var runs [][]string
					if i > 0 {
						runs = append(runs, blk.slots[:i])
					}
					if j+1 < n {
						runs = append(runs, blk.slots[j+1:])
					}
					return runs, true
				}
				break
			}
		}
	}
	return nil, false
}

// placeCombined runs the joint-lecture pass: every combined core course is
// pinned to the shared hall, its chunk list sorted largest-first, and each
// chunk greedily matched against the pre-extracted block list (regular
// blocks first, excluded blocks as overflow), one chunk per day per course.
// Chunks that fit nowhere become failure records like any other residue.
func (s *Scheduler) placeCombined(combined []*model.Course, alloc *SlotAllocator, opts GenerateOptions) ([]*model.Course, []model.UnplacedChunk) {
	if len(combined) == 0 {
		return nil, nil
	}
	valid := collectWeekBlocks(alloc.grid, false)
	overflow := collectWeekBlocks(alloc.grid, true)

	var placed []*model.Course
	var failures []model.UnplacedChunk
	for _, c := range combined {
		chunks := decomposeChunks(c)
		sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].hours > chunks[j].hours })
		daysUsed := make(map[model.Day]bool)
		fit := func(blocks *[]weekBlock, req PlacementRequest) bool {
			for i := range *blocks {
				if daysUsed[(*blocks)[i].day] {
					continue
				}
				if runs, ok := s.tryChunkFromBlock(alloc, (*blocks)[i], req); ok {
					day := (*blocks)[i].day
					(*blocks)[i].slots = nil
					if len(runs) > 0 {
						(*blocks)[i].slots = runs[0]
					}
					for _, extra := range runs[1:] {
						*blocks = append(*blocks, weekBlock{day: day, slots: extra})
					}
					daysUsed[day] = true
					return true
				}
			}
			return false
		}
		residue := make(map[model.SessionType]float64)
		for _, ch := range chunks {
			req := PlacementRequest{
				Code:        c.Code,
				Faculty:     c.Faculty,
				Type:        ch.typ,
				Hours:       ch.hours,
				ClassPrefix: opts.RoomPrefix,
				HideHall:    opts.HideSharedHall,
			}
			if !fit(&valid, req) && !fit(&overflow, req) {
				residue[ch.typ] += ch.hours
			}
		}
		for _, typ := range model.SessionTypes {
			if residue[typ] > eps {
				failures = append(failures, model.UnplacedChunk{
					Label:          opts.Label,
					CourseCode:     c.Code,
					Type:           typ,
					HoursRemaining: math.Round(residue[typ]*100) / 100,
					Faculty:        c.Faculty,
				})
			}
		}
		placed = append(placed, c)
	}
	return placed, failures
}
