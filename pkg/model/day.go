package model

// Day is a weekday index into the scheduling week (0 = Monday).
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Days lists the scheduling week in order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Day) String() string {
	if d < 0 || int(d) >= len(dayNames) {
		return "Invalid"
	}
	return dayNames[d]
}

// ParseDay converts a weekday name to its Day index.
// Returns false for anything outside Monday-Friday.
func ParseDay(name string) (Day, bool) {
	for i, n := range dayNames {
		if n == name {
			return Day(i), true
		}
	}
	return -1, false
}
