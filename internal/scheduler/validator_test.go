package scheduler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

func TestValidateRoster(t *testing.T) {
	ok := []*model.Course{
		{Code: "CS301"},
		{Code: "MA261/EC261"},
		{Code: "HS304-A"},
		{Code: "NEW"},
		{Code: "CS452", IsElective: true},
		{Code: "CS452", IsElective: true}, // elective sections may repeat
	}
	assert.NoError(t, ValidateRoster(ok))

	err := ValidateRoster([]*model.Course{
		{Code: "CS301"},
		{Code: "CS301"},
		{Code: "301CS"},
	})
	require.Error(t, err)
	var rosterErr *RosterError
	require.ErrorAs(t, err, &rosterErr)
	assert.Equal(t, []string{"301CS"}, rosterErr.Malformed)
	assert.Equal(t, []string{"CS301"}, rosterErr.Duplicates)
	assert.Contains(t, err.Error(), "invalid roster")
}

func TestRoomOfLabel(t *testing.T) {
	assert.Equal(t, "C101", roomOfLabel("CS301 (C101)"))
	assert.Equal(t, "C102", roomOfLabel("CS301T (C102)"))
	assert.Equal(t, "L101", roomOfLabel("PH111 (Lab-L101)"))
	assert.Equal(t, "", roomOfLabel("CS452"))
	assert.Equal(t, "", roomOfLabel("PH111 (Lab)"))
}

func makeResult(t *testing.T, label string, place func(g *model.TimeGrid)) *Result {
	t.Helper()
	g := model.NewTimeGrid(testSlotTable(t))
	place(g)
	return &Result{Label: label, Grid: g}
}

func TestVerifyDetectsRoomCollision(t *testing.T) {
	a := makeResult(t, "3rd A", func(g *model.TimeGrid) {
		require.True(t, g.Place(model.Monday, []string{"09:00-10:30"}, "CS301 (C101)"))
	})
	b := makeResult(t, "3rd B", func(g *model.TimeGrid) {
		require.True(t, g.Place(model.Monday, []string{"09:00-10:30"}, "MA201 (C101)"))
	})

	ok, report := Verify([]*Result{a, b}, "C004")
	assert.False(t, ok)
	assert.Contains(t, report, "[FAIL]: Room collision check.")
	assert.Contains(t, report, "C101")
}

func TestVerifyAllowsSharedHallOverlay(t *testing.T) {
	a := makeResult(t, "3rd A", func(g *model.TimeGrid) {
		require.True(t, g.Place(model.Monday, []string{"09:00-10:30"}, "MA101 (C004)"))
	})
	b := makeResult(t, "3rd B", func(g *model.TimeGrid) {
		require.True(t, g.Place(model.Monday, []string{"09:00-10:30"}, "MA101 (C004)"))
	})

	ok, report := Verify([]*Result{a, b}, "C004")
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(report, "[  OK]: Room collision check."))
}

func TestVerifyReportsUnplacedChunks(t *testing.T) {
	a := makeResult(t, "3rd A", func(g *model.TimeGrid) {})
	a.Failures = []model.UnplacedChunk{{CourseCode: "CS301", Type: model.Lecture, HoursRemaining: 1.5}}

	ok, report := Verify([]*Result{a}, "C004")
	assert.False(t, ok)
	assert.Contains(t, report, "[FAIL]: All chunks placed check.")
	assert.Contains(t, report, "1 chunks left unplaced")
}
