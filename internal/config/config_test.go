package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
roomsFile: rooms.csv
outputFile: timetable.xlsx
reportFile: report.csv
seed: 42
sharedHall: C004
timeSlots:
  - start: "09:00"
    end: "10:30"
  - start: "10:30"
    end: "11:30"
  - start: "13:00"
    end: "14:00"
excludedSlots:
  - "13:00-14:00"
groups:
  - label: 3rd Sem
    coursesFile: courses_3.csv
    sheet: 3rd Sem
    syncGroup: "3"
    roomPrefix: C1
    hideSharedHall: true
exams:
  startDate: "2026-01-05"
  maxPerDay: 4
  groups:
    - label: 3rd Sem
      coursesFile: exams_3.csv
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "rooms.csv", cfg.RoomsFile)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "3", cfg.Groups[0].SyncGroup)
	assert.True(t, cfg.Groups[0].HideSharedHall)
	assert.Equal(t, "2026-01-05", cfg.Exams.StartDate)

	table, err := cfg.SlotTable()
	require.NoError(t, err)
	assert.Equal(t, 3, table.Count())
	assert.True(t, table.IsExcluded("13:00-14:00"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMissingGroups(t *testing.T) {
	_, err := Load(writeConfig(t, `
roomsFile: rooms.csv
outputFile: out.xlsx
timeSlots:
  - start: "09:00"
    end: "10:30"
groups: []
`))
	assert.Error(t, err)
}

func TestLoadRejectsBadSlotGrid(t *testing.T) {
	_, err := Load(writeConfig(t, `
roomsFile: rooms.csv
outputFile: out.xlsx
timeSlots:
  - start: "10:30"
    end: "09:00"
groups:
  - label: A
    coursesFile: a.csv
    sheet: A
    syncGroup: "1"
`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
roomsFile: rooms.csv
outputFile: out.xlsx
timeSlots:
  - start: "09:00"
    end: "10:30"
excludedSlots:
  - "13:00-14:00"
groups:
  - label: A
    coursesFile: a.csv
    sheet: A
    syncGroup: "1"
`))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "groups: ["))
	assert.Error(t, err)
}
