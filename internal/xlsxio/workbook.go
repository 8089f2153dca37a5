// Package xlsxio renders generated timetables into a styled workbook: one
// sheet per group with merged, colored session cells, a legend block per
// roster, and a report sheet for unplaced chunks.
package xlsxio

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// palette is the session fill rotation. Courses keep their color across
// sheets; exhausting the palette falls back to gray.
var palette = []string{
	"FFB3BA", "BAE1FF", "BAFFC9", "FFFFBA", "FFD8BA", "E3BAFF", "D0BAFF", "FFCBA4",
	"C7FFD8", "B8E1FF", "F7FFBA", "FFDFBA", "E9BAFF", "BAFFD9", "FFE1BA", "BAFFF2",
	"D1FFBA", "B2D8F7", "F2C2FF", "C2FFD8", "FFB8E1", "D8FFB8", "FFE3BA", "BAE7FF",
	"E8BAFF", "BAFFD6", "FFF2BA", "DAD7FF", "BFFFE1", "FFDAB8", "E2FFBA", "BAF7FF",
}

const fallbackColor = "CCCCCC"

type colorPicker struct {
	avail []string
	byKey map[string]string
}

func newColorPicker(rng *rand.Rand) *colorPicker {
	avail := make([]string, len(palette))
	copy(avail, palette)
	rng.Shuffle(len(avail), func(i, j int) { avail[i], avail[j] = avail[j], avail[i] })
	return &colorPicker{avail: avail, byKey: make(map[string]string)}
}

func (c *colorPicker) colorFor(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return fallbackColor
	}
	if col, ok := c.byKey[key]; ok {
		return col
	}
	col := fallbackColor
	if len(c.avail) > 0 {
		col = c.avail[len(c.avail)-1]
		c.avail = c.avail[:len(c.avail)-1]
	}
	c.byKey[key] = col
	return col
}

// Workbook accumulates sheets and saves the styled file once at the end.
type Workbook struct {
	f      *excelize.File
	rows   map[string]int            // next row per sheet
	widths map[string]map[int]int    // sheet -> column -> max content length
	colors *colorPicker
	fills  map[string]int // color -> style id
	base   struct {
		title, subtitle, header, cell, legendHeader int
	}
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Style: 1, Color: "000000"})
	}
	return borders
}

// NewWorkbook prepares an empty workbook. The injected source only drives
// color assignment; a fixed seed reproduces the same fills.
func NewWorkbook(rng *rand.Rand) (*Workbook, error) {
	w := &Workbook{
		f:      excelize.NewFile(),
		rows:   make(map[string]int),
		widths: make(map[string]map[int]int),
		colors: newColorPicker(rng),
		fills:  make(map[string]int),
	}
	var err error
	if w.base.title, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return nil, fmt.Errorf("workbook style: %w", err)
	}
	if w.base.subtitle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return nil, fmt.Errorf("workbook style: %w", err)
	}
	if w.base.header, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	}); err != nil {
		return nil, fmt.Errorf("workbook style: %w", err)
	}
	if w.base.cell, err = w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	}); err != nil {
		return nil, fmt.Errorf("workbook style: %w", err)
	}
	if w.base.legendHeader, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	}); err != nil {
		return nil, fmt.Errorf("workbook style: %w", err)
	}
	return w, nil
}

// fillStyle memoizes a bold, centered, bordered style with the given fill.
func (w *Workbook) fillStyle(color string) (int, error) {
	if id, ok := w.fills[color]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, fmt.Errorf("workbook style: %w", err)
	}
	w.fills[color] = id
	return id, nil
}

func (w *Workbook) ensureSheet(name string) error {
	if _, ok := w.rows[name]; ok {
		return nil
	}
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if idx < 0 {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	w.rows[name] = 1
	w.widths[name] = make(map[int]int)
	return nil
}

func (w *Workbook) setCell(sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	if style != 0 {
		if err := w.f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	if s, ok := value.(string); ok && len(s) > w.widths[sheet][col] {
		w.widths[sheet][col] = len(s)
	}
	return nil
}

// skipRows advances the sheet cursor over blank rows.
func (w *Workbook) skipRows(sheet string, n int) {
	w.rows[sheet] += n
}

// expectedDuration mirrors the rendering heuristic of the source labels:
// lab sessions span 2.0h, tutorials 1.0h, everything else 1.5h.
func expectedDuration(label string) float64 {
	if strings.Contains(label, "Lab") {
		return 2.0
	}
	head := label
	if i := strings.IndexByte(label, '('); i >= 0 {
		head = strings.TrimSpace(label[:i])
	}
	if strings.HasSuffix(head, "T") {
		return 1.0
	}
	return 1.5
}

// codeOfLabel extracts the course code a cell label refers to, for color
// lookup: the first token with any tutorial suffix and annotation stripped.
func codeOfLabel(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	code := strings.TrimSuffix(fields[0], "T")
	code = strings.TrimSuffix(code, "(Lab)")
	return strings.ToUpper(strings.TrimSpace(code))
}

// AddGridBlock appends one labeled timetable block to a sheet: a title row,
// the slot header, and five day rows with merged, colored session runs.
func (w *Workbook) AddGridBlock(sheet, label string, grid *model.TimeGrid, courses []*model.Course) error {
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}
	valid := make(map[string]bool, len(courses))
	for _, c := range courses {
		valid[strings.ToUpper(c.Code)] = true
	}
	table := grid.Slots()
	keys := table.Keys()

	w.skipRows(sheet, 1)
	row := w.rows[sheet]
	if err := w.setCell(sheet, 1, row, label, w.base.subtitle); err != nil {
		return err
	}
	w.rows[sheet]++

	row = w.rows[sheet]
	if err := w.setCell(sheet, 1, row, "Day", w.base.header); err != nil {
		return err
	}
	for i, k := range keys {
		if err := w.setCell(sheet, i+2, row, k, w.base.header); err != nil {
			return err
		}
	}
	w.rows[sheet]++

	for _, d := range model.Days {
		row = w.rows[sheet]
		if err := w.setCell(sheet, 1, row, d.String(), w.base.header); err != nil {
			return err
		}
		cells := grid.Row(d)
		col := 0
		for col < len(cells) {
			value := strings.TrimSpace(cells[col])
			if value == "" {
				if err := w.setCell(sheet, col+2, row, "", w.base.cell); err != nil {
					return err
				}
				col++
				continue
			}
			expected := expectedDuration(value)
			run := []int{col}
			total := table.Duration(keys[col])
			next := col + 1
			for next < len(cells) && strings.TrimSpace(cells[next]) == value && total+1e-9 < expected {
				total += table.Duration(keys[next])
				run = append(run, next)
				next++
			}
			style := w.base.cell
			code := codeOfLabel(value)
			if valid[code] || strings.HasPrefix(code, "ELECTIVE") {
				var err error
				if style, err = w.fillStyle(w.colors.colorFor(code)); err != nil {
					return err
				}
			}
			for _, c := range run {
				if err := w.setCell(sheet, c+2, row, value, style); err != nil {
					return err
				}
			}
			if len(run) > 1 {
				first, err := excelize.CoordinatesToCellName(run[0]+2, row)
				if err != nil {
					return err
				}
				last, err := excelize.CoordinatesToCellName(run[len(run)-1]+2, row)
				if err != nil {
					return err
				}
				if err := w.f.MergeCell(sheet, first, last); err != nil {
					return fmt.Errorf("merge %s: %w", sheet, err)
				}
			}
			col = run[len(run)-1] + 1
		}
		w.rows[sheet]++
	}
	return nil
}

var legendHeaders = []string{
	"Course Code", "Course Title", "L-T-P-S-C", "Faculty",
	"Semester Half", "Elective", "Elective Basket", "Elective Room",
}

// AddLegend appends the roster legend block: one row per course with the
// human-readable half/elective columns and the run-wide elective room.
func (w *Workbook) AddLegend(sheet, title string, courses []*model.Course, electiveRoom func(syncKey string) (string, bool)) error {
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}
	w.skipRows(sheet, 2)
	row := w.rows[sheet]
	if err := w.setCell(sheet, 1, row, "Legend - "+title, w.base.title); err != nil {
		return err
	}
	w.rows[sheet]++

	row = w.rows[sheet]
	for i, h := range legendHeaders {
		if err := w.setCell(sheet, i+1, row, h, w.base.legendHeader); err != nil {
			return err
		}
	}
	w.rows[sheet]++

	for _, c := range courses {
		room := ""
		if c.IsElective && electiveRoom != nil {
			if r, ok := electiveRoom(c.SyncKey()); ok {
				room = r
			}
		}
		values := []any{
			c.Code,
			c.Title,
			fmt.Sprintf("%d-%d-%d-%d-%d", c.Lecture, c.Tutorial, c.Practical, c.SelfStudy, c.Credits),
			c.Faculty,
			semesterHalfText(c.SemesterHalf),
			yesNo(c.IsElective),
			c.Basket,
			room,
		}
		row = w.rows[sheet]
		for i, v := range values {
			if err := w.setCell(sheet, i+1, row, v, w.base.cell); err != nil {
				return err
			}
		}
		w.rows[sheet]++
	}
	w.skipRows(sheet, 1)
	return nil
}

func semesterHalfText(half int) string {
	switch half {
	case 1:
		return "First Half"
	case 2:
		return "Second Half"
	default:
		return "Full Sem"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// AddFailureReport appends the unplaced-chunk sheet. No sheet is created
// when there is nothing to report.
func (w *Workbook) AddFailureReport(failures []model.UnplacedChunk) error {
	if len(failures) == 0 {
		return nil
	}
	const sheet = "Report"
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}
	row := w.rows[sheet]
	if err := w.setCell(sheet, 1, row, "Unplaced/Partial Courses", w.base.title); err != nil {
		return err
	}
	w.rows[sheet]++

	headers := []string{"Label", "Course Code", "Type", "Hours Remaining", "Faculty"}
	row = w.rows[sheet]
	for i, h := range headers {
		if err := w.setCell(sheet, i+1, row, h, w.base.legendHeader); err != nil {
			return err
		}
	}
	w.rows[sheet]++

	for _, fr := range failures {
		row = w.rows[sheet]
		values := []any{fr.Label, fr.CourseCode, string(fr.Type), fr.HoursRemaining, fr.Faculty}
		for i, v := range values {
			if err := w.setCell(sheet, i+1, row, v, w.base.cell); err != nil {
				return err
			}
		}
		w.rows[sheet]++
	}
	return nil
}

// Save fits column widths and writes the workbook. The default sheet is
// dropped when other sheets exist.
func (w *Workbook) Save(path string) error {
	for sheet, cols := range w.widths {
		for col, maxLen := range cols {
			width := float64(maxLen + 2)
			if width < 8 {
				width = 8
			}
			if width > 60 {
				width = 60
			}
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			if err := w.f.SetColWidth(sheet, name, name, width); err != nil {
				return err
			}
		}
	}
	if len(w.rows) > 0 {
		if _, tracked := w.rows["Sheet1"]; !tracked {
			if idx, err := w.f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
				_ = w.f.DeleteSheet("Sheet1")
			}
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
