package model

// Crew is the solved seating of one vehicle.
type Crew struct {
	Operator   string   // person id, empty when the vehicle stays on the ground unused
	Passengers []string // person ids, operator excluded
}

// Manifest maps every vehicle id to its solved crew. Every person appears as
// occupant of exactly one vehicle; an empty vehicle has no operator.
type Manifest map[string]Crew

// Occupants returns the operator and passengers of the vehicle as one list.
func (c Crew) Occupants() []string {
	out := make([]string, 0, len(c.Passengers)+1)
	if c.Operator != "" {
		out = append(out, c.Operator)
	}
	return append(out, c.Passengers...)
}
