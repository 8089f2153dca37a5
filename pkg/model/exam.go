package model

import "strings"

// ExamCourseRecord mirrors one row of an exam roster CSV.
type ExamCourseRecord struct {
	Code     string `csv:"Course_Code"`
	Title    string `csv:"Course_Title"`
	Students int    `csv:"Students"`
	Elective int    `csv:"Elective"`
}

// ExamCourse is a parsed exam roster entry for one student group.
type ExamCourse struct {
	Group      string
	Code       string
	Title      string
	Students   int
	IsElective bool
}

// Parse converts an exam record for the given group. Rows with no students
// yield nil and are skipped.
func (r *ExamCourseRecord) Parse(group string) *ExamCourse {
	code := strings.TrimSpace(r.Code)
	if code == "" || r.Students <= 0 {
		return nil
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = code
	}
	return &ExamCourse{
		Group:      group,
		Code:       code,
		Title:      title,
		Students:   r.Students,
		IsElective: r.Elective == 1,
	}
}

// InvigilatorRecord mirrors one row of the invigilator roster CSV.
type InvigilatorRecord struct {
	Name string `csv:"Name"`
}
