package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nikunjsrivastav/Automated-Time-Table-IIIT-DWD/pkg/model"
)

// SlotSpec declares one interval of the daily slot grid.
type SlotSpec struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// GroupSpec declares one student group's roster and rendering policy. Each
// group is generated twice, once per semester half.
type GroupSpec struct {
	Label          string `yaml:"label" validate:"required"`
	CoursesFile    string `yaml:"coursesFile" validate:"required"`
	Sheet          string `yaml:"sheet" validate:"required"`
	SyncGroup      string `yaml:"syncGroup" validate:"required"`
	RoomPrefix     string `yaml:"roomPrefix"`
	HideSharedHall bool   `yaml:"hideSharedHall"`
}

// ExamGroupSpec declares one group's exam roster.
type ExamGroupSpec struct {
	Label       string `yaml:"label" validate:"required"`
	CoursesFile string `yaml:"coursesFile" validate:"required"`
}

// ExamsConfig configures the exam scheduling pass.
type ExamsConfig struct {
	StartDate         string          `yaml:"startDate"`
	Slots             []string        `yaml:"slots"`
	MaxPerDay         int             `yaml:"maxPerDay" validate:"omitempty,min=1"`
	MaxPerGroupPerDay int             `yaml:"maxPerGroupPerDay" validate:"omitempty,min=1"`
	InvigilatorsFile  string          `yaml:"invigilatorsFile"`
	OutputFile        string          `yaml:"outputFile"`
	Groups            []ExamGroupSpec `yaml:"groups" validate:"dive"`
}

// Config is the full application configuration.
type Config struct {
	RoomsFile         string      `yaml:"roomsFile" validate:"required"`
	RegistrationsFile string      `yaml:"registrationsFile"`
	OutputFile        string      `yaml:"outputFile" validate:"required"`
	ReportFile        string      `yaml:"reportFile"`
	Seed              *int64      `yaml:"seed"`
	SharedHall        string      `yaml:"sharedHall"`
	MaxAttempts       int         `yaml:"maxAttempts" validate:"omitempty,min=1"`
	TimeSlots         []SlotSpec  `yaml:"timeSlots" validate:"required,min=1,dive"`
	ExcludedSlots     []string    `yaml:"excludedSlots"`
	Groups            []GroupSpec `yaml:"groups" validate:"required,min=1,dive"`
	Exams             ExamsConfig `yaml:"exams"`
}

var validate = validator.New()

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := cfg.SlotTable(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SlotTable builds the process-wide slot grid from the config.
func (c *Config) SlotTable() (*model.SlotTable, error) {
	slots := make([]model.TimeSlot, 0, len(c.TimeSlots))
	for _, s := range c.TimeSlots {
		slot, err := model.NewTimeSlot(s.Start, s.End)
		if err != nil {
			return nil, fmt.Errorf("invalid time slot: %w", err)
		}
		slots = append(slots, slot)
	}
	table, err := model.NewSlotTable(slots, c.ExcludedSlots)
	if err != nil {
		return nil, fmt.Errorf("invalid slot grid: %w", err)
	}
	return table, nil
}
