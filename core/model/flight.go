package model

// FrozenRole is the seat role pinned by a frozen assignment.
type FrozenRole string

const (
	FrozenOperator  FrozenRole = "operator"
	FrozenPassenger FrozenRole = "passenger"
)

// FrozenAssignment is a pre-committed seat the optimizer must honor exactly.
type FrozenAssignment struct {
	PersonID  string
	VehicleID string
	Role      FrozenRole
}

// CrewRecord is one vehicle's realized crew on a past leg.
type CrewRecord struct {
	ID         string   // vehicle id
	Operator   string   // person id, empty if the vehicle flew unoccupied
	Passengers []string // person ids, operator excluded
}

// FlightGroup is one balloon and the cars that traveled with it on a past leg.
type FlightGroup struct {
	Balloon CrewRecord
	Cars    []CrewRecord
}

// PastFlight is one historical leg's realized grouping.
type PastFlight struct {
	Groups []FlightGroup
}

// Cluster maps a balloon id to the car ids traveling with it as one ground
// unit. Supplied precomputed and consumed read-only.
type Cluster map[string][]string
