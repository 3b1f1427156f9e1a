package assign

import (
	"github.com/marvin-wtt/BalloonOrganizer/core/model"
)

// index is the per-solve entity lookup: O(1) access by id plus the derived
// scalar maps the constraint builder and objective composer read.
type index struct {
	personIDs  []string
	vehicleIDs []string

	people   map[string]model.Person
	vehicles map[string]model.Vehicle

	weight      map[string]int
	flights     map[string]int
	nationality map[string]string
	counselor   map[string]bool

	capacity  map[string]int
	kind      map[string]model.VehicleKind
	allowedOp map[string]map[string]bool
	maxWeight map[string]int
}

// buildIndex flattens balloons and cars into one vehicle universe tagged with
// kind and derives the per-entity scalar maps. Unknown person weights fall
// back to defaultWeight.
func buildIndex(req Request, defaultWeight int) (*index, error) {
	idx := &index{
		people:      make(map[string]model.Person, len(req.People)),
		vehicles:    make(map[string]model.Vehicle, len(req.Balloons)+len(req.Cars)),
		weight:      make(map[string]int, len(req.People)),
		flights:     make(map[string]int, len(req.People)),
		nationality: make(map[string]string, len(req.People)),
		counselor:   make(map[string]bool, len(req.People)),
		capacity:    make(map[string]int),
		kind:        make(map[string]model.VehicleKind),
		allowedOp:   make(map[string]map[string]bool),
		maxWeight:   make(map[string]int),
	}

	addVehicle := func(v model.Vehicle, kind model.VehicleKind) error {
		if err := v.Validate(); err != nil {
			return configErrorf("invalid vehicle: %v", err)
		}
		if _, ok := idx.vehicles[v.ID]; ok {
			return configErrorf("duplicate vehicle id %q", v.ID)
		}
		v.Kind = kind
		idx.vehicles[v.ID] = v
		idx.vehicleIDs = append(idx.vehicleIDs, v.ID)
		idx.capacity[v.ID] = v.Capacity
		idx.kind[v.ID] = kind
		idx.maxWeight[v.ID] = v.MaxWeight
		ops := make(map[string]bool, len(v.AllowedOperators))
		for _, p := range v.AllowedOperators {
			ops[p] = true
		}
		idx.allowedOp[v.ID] = ops
		return nil
	}

	for _, b := range req.Balloons {
		if err := addVehicle(b, model.KindBalloon); err != nil {
			return nil, err
		}
	}
	for _, c := range req.Cars {
		if err := addVehicle(c, model.KindCar); err != nil {
			return nil, err
		}
	}

	for _, p := range req.People {
		if p.ID == "" {
			return nil, configErrorf("person id must not be empty")
		}
		if _, ok := idx.people[p.ID]; ok {
			return nil, configErrorf("duplicate person id %q", p.ID)
		}
		idx.people[p.ID] = p
		idx.personIDs = append(idx.personIDs, p.ID)
		w := p.Weight
		if w <= 0 {
			w = defaultWeight
		}
		idx.weight[p.ID] = w
		idx.flights[p.ID] = p.Flights
		idx.nationality[p.ID] = p.Nationality
		idx.counselor[p.ID] = p.IsCounselor()
	}

	return idx, nil
}

// maxFlights is the fairness baseline: one more than the highest prior flight
// count across the roster.
func (idx *index) maxFlights() int {
	max := 0
	for _, p := range idx.personIDs {
		if f := idx.flights[p]; f > max {
			max = f
		}
	}
	return max + 1
}

// effectiveFlights returns the flight count used by the fairness families:
// counselors carry the configured discount on top of their real count so they
// rank behind participants.
func (idx *index) effectiveFlights(p string, counselorDiscount int) int {
	f := idx.flights[p]
	if idx.counselor[p] {
		f += counselorDiscount
	}
	return f
}
