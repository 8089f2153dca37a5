package model

// UnplacedChunk records residual contact hours that survived the full
// day/slot/retry search space. These are soft failures: the run continues
// and reports them alongside the partial timetable.
type UnplacedChunk struct {
	Label          string      `csv:"Label"`
	CourseCode     string      `csv:"Course_Code"`
	Type           SessionType `csv:"Type"`
	HoursRemaining float64     `csv:"Hours_Remaining"`
	Faculty        string      `csv:"Faculty"`
}
