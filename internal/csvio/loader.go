// Package csvio reads the course, room, and registration rosters and writes
// the failure and exam reports.
package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// LoadCourses reads and parses a course roster CSV. Rows with blank course
// codes are skipped.
func LoadCourses(path string) ([]*model.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*model.CourseRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	courses := make([]*model.Course, 0, len(records))
	for _, r := range records {
		c, err := r.Parse()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if c != nil {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// LoadRooms reads the room roster CSV.
func LoadRooms(path string) ([]model.Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rooms []model.Room
	if err := gocsv.UnmarshalFile(f, &rooms); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range rooms {
		rooms[i].ID = strings.TrimSpace(rooms[i].ID)
	}
	return rooms, nil
}

// LoadRegistrations reads registration counts keyed by course code. A
// missing file is not an error: right-sizing is optional and absent counts
// mean "any room".
func LoadRegistrations(path string) (map[string]int, error) {
	if path == "" {
		return map[string]int{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*model.RegistrationRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	reg := make(map[string]int, len(records))
	for _, r := range records {
		code := strings.TrimSpace(r.Code)
		if code != "" && r.Registered > 0 {
			reg[code] = r.Registered
		}
	}
	return reg, nil
}

// LoadExamRoster reads one group's exam roster. Rows with no students are
// skipped.
func LoadExamRoster(path, group string) ([]*model.ExamCourse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*model.ExamCourseRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	var courses []*model.ExamCourse
	for _, r := range records {
		if c := r.Parse(group); c != nil {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// LoadInvigilators reads the invigilator name roster.
func LoadInvigilators(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*model.InvigilatorRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	var names []string
	for _, r := range records {
		if n := strings.TrimSpace(r.Name); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
