package scheduler

import (
	"math/rand"

	"go.uber.org/zap"
)

// Config carries the engine tuning knobs. Zero values fall back to the
// defaults the production rosters were tuned against.
type Config struct {
	// SharedHall is the joint-lecture room exempt from busy checks.
	SharedHall string
	// MaxAttempts bounds the retry loop per (course, session type) hour
	// pool. Bounded retries stand in for backtracking search; this is a
	// deliberate simplification, not constraint propagation.
	MaxAttempts int
	// RotationCycles is how many passes over the week a single attempt
	// makes before falling back to excluded slots.
	RotationCycles int
	// Rand drives room and color tie-breaking only, never availability
	// logic. A fixed seed reproduces the timetable byte for byte.
	Rand *rand.Rand
	// Logger receives placement diagnostics. Nil means no logging.
	Logger *zap.Logger
}

const (
	defaultSharedHall     = "C004"
	defaultMaxAttempts    = 400
	defaultRotationCycles = 5
)

func (c Config) withDefaults() Config {
	if c.SharedHall == "" {
		c.SharedHall = defaultSharedHall
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RotationCycles <= 0 {
		c.RotationCycles = defaultRotationCycles
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(42))
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
