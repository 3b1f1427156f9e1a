package model

// Role classifies a person within the camp.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleCounselor   Role = "counselor"
)

// Person is one camp member to be seated on a flight leg. All fields are
// read-only inputs for the duration of a solve.
type Person struct {
	ID          string
	Name        string
	Weight      int    // body weight in kg; <= 0 means unknown, a configured default applies
	Flights     int    // cumulative prior flight count
	Nationality string // free-form nationality tag used for diversity scoring
	Role        Role
}

// IsCounselor reports whether the person is a counselor. An empty role counts
// as participant.
func (p Person) IsCounselor() bool {
	return p.Role == RoleCounselor
}
