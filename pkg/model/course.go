package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SessionType distinguishes the contact-hour components of a course.
type SessionType string

const (
	Lecture   SessionType = "L"
	Tutorial  SessionType = "T"
	Practical SessionType = "P"
)

// SessionTypes lists the schedulable components in placement order.
var SessionTypes = []SessionType{Lecture, Tutorial, Practical}

// CourseRecord mirrors one row of a course roster CSV.
type CourseRecord struct {
	Code           string `csv:"Course_Code"`
	Title          string `csv:"Course_Title"`
	LTPSC          string `csv:"L-T-P-S-C"`
	Faculty        string `csv:"Faculty"`
	SemesterHalf   int    `csv:"Semester_Half"`
	Elective       int    `csv:"Elective"`
	ElectiveBasket string `csv:"ElectiveBasket"`
	IsCombined     int    `csv:"Is_Combined"`
}

// Course is a parsed roster entry.
type Course struct {
	Code         string
	Title        string
	Faculty      string // raw roster text, possibly multiple names
	Lecture      int    // weekly contact hours per component
	Tutorial     int
	Practical    int
	SelfStudy    int
	Credits      int
	IsElective   bool
	Basket       string // "" or "0" means no basket
	SemesterHalf int    // 0 = full, 1, 2
	IsCombined   bool
}

// Parse converts a CSV record into a Course. Blank codes yield nil so
// callers can skip filler rows.
func (r *CourseRecord) Parse() (*Course, error) {
	code := strings.TrimSpace(r.Code)
	if code == "" {
		return nil, nil
	}
	l, t, p, s, c, err := SplitLTPSC(r.LTPSC)
	if err != nil {
		return nil, fmt.Errorf("course %s: %w", code, err)
	}
	return &Course{
		Code:         code,
		Title:        strings.TrimSpace(r.Title),
		Faculty:      strings.TrimSpace(r.Faculty),
		Lecture:      l,
		Tutorial:     t,
		Practical:    p,
		SelfStudy:    s,
		Credits:      c,
		IsElective:   r.Elective == 1,
		Basket:       strings.TrimSpace(r.ElectiveBasket),
		SemesterHalf: r.SemesterHalf,
		IsCombined:   r.IsCombined == 1,
	}, nil
}

// SplitLTPSC parses the dash-separated contact-hour tally. Missing trailing
// fields default to zero, matching roster files that omit S and C.
func SplitLTPSC(v string) (l, t, p, s, c int, err error) {
	parts := strings.Split(v, "-")
	vals := [5]int{}
	for i := 0; i < len(parts) && i < 5; i++ {
		field := strings.TrimSpace(parts[i])
		if field == "" {
			continue
		}
		n, convErr := strconv.Atoi(field)
		if convErr != nil {
			return 0, 0, 0, 0, 0, fmt.Errorf("malformed L-T-P-S-C %q", v)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], vals[3], vals[4], nil
}

// HasBasket reports whether the course belongs to an elective basket.
func (c *Course) HasBasket() bool {
	return c.Basket != "" && c.Basket != "0"
}

// SyncKey is the elective synchronization identifier: the basket-qualified
// code for basket electives, otherwise the bare course code.
func (c *Course) SyncKey() string {
	if !c.IsElective {
		return ""
	}
	if c.HasBasket() {
		return c.Code + "_B" + c.Basket
	}
	return c.Code
}

// Hours returns the weekly contact hours for one session type.
func (c *Course) Hours(t SessionType) float64 {
	switch t {
	case Lecture:
		return float64(c.Lecture)
	case Tutorial:
		return float64(c.Tutorial)
	case Practical:
		return float64(c.Practical)
	}
	return 0
}

// InHalf reports whether the course runs in the given semester half.
// Full-semester courses (half 0) run in both.
func (c *Course) InHalf(half int) bool {
	return c.SemesterHalf == 0 || c.SemesterHalf == half
}

var facultySep = regexp.MustCompile(`[\\/;,&]| and `)

// SplitFaculty breaks a free-text faculty field into individual names.
func SplitFaculty(raw string) []string {
	var names []string
	for _, part := range facultySep.Split(raw, -1) {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}
