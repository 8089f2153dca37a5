package scheduler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// codePattern accepts department-prefixed course codes, optionally joined
// into cross-listed composites (e.g. "CS301", "MA261/EC261").
var codePattern = regexp.MustCompile(`(?i)^[A-Z]{1,5}\d{0,3}([+/\-][A-Z]{1,5}\d{0,3})*$`)

// Placeholder codes rosters use for not-yet-announced offerings; they pass
// validation but are not checked against the pattern.
var placeholderCodes = map[string]bool{"NEW": true, "ELECTIVE": true}

// RosterError reports a roster that failed validation. The group's schedule
// generation is skipped entirely; the run continues with other groups.
type RosterError struct {
	Malformed  []string
	Duplicates []string
}

func (e *RosterError) Error() string {
	var parts []string
	if len(e.Malformed) > 0 {
		parts = append(parts, fmt.Sprintf("malformed course codes: %s", strings.Join(e.Malformed, ", ")))
	}
	if len(e.Duplicates) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate core course codes: %s", strings.Join(e.Duplicates, ", ")))
	}
	return "invalid roster: " + strings.Join(parts, "; ")
}

// ValidateRoster checks course codes against the code pattern and rejects
// duplicate non-elective codes within one roster.
func ValidateRoster(courses []*model.Course) error {
	var rosterErr RosterError
	coreSeen := make(map[string]int)
	dupSeen := make(map[string]bool)
	for _, c := range courses {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		if code == "" {
			continue
		}
		if placeholderCodes[code] {
			continue
		}
		if !codePattern.MatchString(c.Code) {
			rosterErr.Malformed = append(rosterErr.Malformed, c.Code)
		}
		if !c.IsElective {
			coreSeen[code]++
			if coreSeen[code] > 1 && !dupSeen[code] {
				dupSeen[code] = true
				rosterErr.Duplicates = append(rosterErr.Duplicates, code)
			}
		}
	}
	if len(rosterErr.Malformed) > 0 || len(rosterErr.Duplicates) > 0 {
		return &rosterErr
	}
	return nil
}

var roomAnnotation = regexp.MustCompile(`\(([^)]*)\)\s*$`)

// roomOfLabel extracts the room id a rendered cell label refers to, or ""
// when the label carries no concrete room.
func roomOfLabel(label string) string {
	m := roomAnnotation.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	room := strings.TrimSpace(m[1])
	room = strings.TrimPrefix(room, "Lab-")
	if room == "" || room == "Lab" {
		return ""
	}
	return room
}

// Verify cross-checks finished grids for room collisions: no concrete room
// may host two different labels in the same day/slot across groups, except
// the shared combined hall. Returns a pass/fail summary for the console.
func Verify(results []*Result, sharedHall string) (bool, string) {
	var message strings.Builder
	collision := false
	type cell struct {
		day  model.Day
		slot string
		room string
	}
	seen := make(map[cell]string)
	for _, res := range results {
		if res.Grid == nil {
			continue
		}
		for _, d := range model.Days {
			for _, key := range res.Grid.Slots().Keys() {
				label := res.Grid.At(d, key)
				if label == "" {
					continue
				}
				room := roomOfLabel(label)
				if room == "" || room == sharedHall {
					continue
				}
				k := cell{d, key, room}
				if prev, ok := seen[k]; ok && prev != label {
					collision = true
					fmt.Fprintf(&message, "- Room %s double-booked on %s %s: %q vs %q\n",
						room, d, key, prev, label)
				} else {
					seen[k] = label
				}
			}
		}
	}
	unplaced := 0
	for _, res := range results {
		unplaced += len(res.Failures)
	}
	if unplaced > 0 {
		fmt.Fprintf(&message, "- %d chunks left unplaced (see failure report)\n", unplaced)
	}
	var header strings.Builder
	if collision {
		header.WriteString("[FAIL]: Room collision check.\n")
	} else {
		header.WriteString("[  OK]: Room collision check.\n")
	}
	if unplaced > 0 {
		header.WriteString("[FAIL]: All chunks placed check.\n")
	} else {
		header.WriteString("[  OK]: All chunks placed check.\n")
	}
	return !collision && unplaced == 0, header.String() + message.String()
}
