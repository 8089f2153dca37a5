package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCourses(t *testing.T) {
	path := writeFile(t, "courses.csv",
		"Course_Code,Course_Title,L-T-P-S-C,Faculty,Semester_Half,Elective,ElectiveBasket,Is_Combined\n"+
			"CS301,Software Engineering,3-1-0-0-4,A. Rao,0,0,,0\n"+
			",,,,0,0,,0\n"+
			"HS310,Ethics,2-0-0,B. Iyer,1,1,2,0\n")

	courses, err := LoadCourses(path)
	require.NoError(t, err)
	require.Len(t, courses, 2) // the blank filler row is dropped

	assert.Equal(t, "CS301", courses[0].Code)
	assert.Equal(t, 3, courses[0].Lecture)
	assert.Equal(t, 1, courses[0].Tutorial)

	assert.True(t, courses[1].IsElective)
	assert.Equal(t, "2", courses[1].Basket)
	assert.Equal(t, "HS310_B2", courses[1].SyncKey())
}

func TestLoadCoursesBadLTPSC(t *testing.T) {
	path := writeFile(t, "courses.csv",
		"Course_Code,Course_Title,L-T-P-S-C,Faculty,Semester_Half,Elective,ElectiveBasket,Is_Combined\n"+
			"CS301,SE,x-1-0,A. Rao,0,0,,0\n")
	_, err := LoadCourses(path)
	assert.Error(t, err)
}

func TestLoadRooms(t *testing.T) {
	path := writeFile(t, "rooms.csv",
		"Room_ID,Capacity,Type\nC101 ,60,classroom\nL101,30,lab\n")
	rooms, err := LoadRooms(path)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "C101", rooms[0].ID)
	assert.True(t, rooms[1].IsLab())
}

func TestLoadRegistrations(t *testing.T) {
	path := writeFile(t, "reg.csv",
		"Course_Code,Registered\nCS301,120\nMA201,0\n,50\n")
	reg, err := LoadRegistrations(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"CS301": 120}, reg)

	// missing file means no right-sizing, not an error
	reg, err = LoadRegistrations(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Empty(t, reg)

	reg, err = LoadRegistrations("")
	require.NoError(t, err)
	assert.Empty(t, reg)
}

func TestLoadExamRoster(t *testing.T) {
	path := writeFile(t, "exams.csv",
		"Course_Code,Course_Title,Students,Elective\nCS301,SE,120,0\nMA201,Calc,0,0\n")
	courses, err := LoadExamRoster(path, "3rd")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "3rd", courses[0].Group)
	assert.Equal(t, 120, courses[0].Students)
}

func TestLoadInvigilators(t *testing.T) {
	path := writeFile(t, "inv.csv", "Name\nP. Kumar\n  \nQ. Singh\n")
	names, err := LoadInvigilators(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"P. Kumar", "Q. Singh"}, names)
}

func TestExportFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	failures := []model.UnplacedChunk{
		{Label: "3rd (First Half)", CourseCode: "CS301", Type: model.Lecture, HoursRemaining: 1.5, Faculty: "A. Rao"},
	}
	require.NoError(t, ExportFailures(failures, path))
	// rewriting replaces the previous report
	require.NoError(t, ExportFailures(failures, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CS301")
}
