package model

import "strings"

// Room is one row of the room roster. Classrooms carry a "C" id prefix,
// labs an "L" prefix; Type is advisory free text ("classroom", "lab", ...).
type Room struct {
	ID       string `csv:"Room_ID"`
	Capacity int    `csv:"Capacity"`
	Type     string `csv:"Type"`
}

// IsLab reports whether the room is a laboratory.
func (r Room) IsLab() bool {
	if strings.Contains(strings.ToLower(r.Type), "lab") {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(r.ID), "L")
}

// PartitionRooms splits a roster into classrooms and labs.
func PartitionRooms(rooms []Room) (classrooms, labs []Room) {
	for _, r := range rooms {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		if r.IsLab() {
			labs = append(labs, r)
		} else {
			classrooms = append(classrooms, r)
		}
	}
	return classrooms, labs
}

// RegistrationRecord maps a course code to its registered head count, used
// for room-capacity right-sizing. Zero or missing means "any room".
type RegistrationRecord struct {
	Code       string `csv:"Course_Code"`
	Registered int    `csv:"Registered"`
}
