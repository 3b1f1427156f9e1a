// Package payload normalizes the process-boundary JSON: one request object on
// stdin, a grouped manifest on stdout, and a structured error object on
// stderr.
package payload

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marvin-wtt/BalloonOrganizer/core/model"
)

// Person is the wire shape of a camp member.
type Person struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Weight      int    `json:"weight,omitempty"`
	Flights     int    `json:"flights"`
	Nationality string `json:"nationality,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Vehicle is the wire shape of a balloon or car.
type Vehicle struct {
	ID               string   `json:"id"`
	Name             string   `json:"name,omitempty"`
	Capacity         int      `json:"capacity"`
	AllowedOperators []string `json:"allowed_operators"`
	MaxWeight        int      `json:"max_weight,omitempty"`
}

// Crew names one vehicle's operator and passengers, used for history records,
// precommitted groups and the output manifest alike.
type Crew struct {
	ID         string   `json:"id"`
	Operator   string   `json:"operator,omitempty"`
	Passengers []string `json:"passengers"`
}

// Group pairs a balloon with the cars traveling alongside it.
type Group struct {
	Balloon Crew   `json:"balloon"`
	Cars    []Crew `json:"cars"`
}

// Flight is one past leg's realized grouping.
type Flight struct {
	Groups []Group `json:"groups"`
}

// Input is the single JSON object expected on stdin.
type Input struct {
	Balloons []Vehicle `json:"balloons"`
	Cars     []Vehicle `json:"cars"`
	People   []Person  `json:"people"`
	History  []Flight  `json:"history"`
	Groups   []Group   `json:"groups"`
}

// Decode parses a single JSON object from r.
func Decode(r io.Reader) (*Input, error) {
	dec := json.NewDecoder(r)
	var in Input
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("stdin payload must be a single JSON object: %w", err)
	}
	return &in, nil
}

// Normalized is the decoded payload mapped onto domain entities. Groups are
// split into their two roles: the balloon-car pairing becomes a precluster,
// any named people become frozen seats.
type Normalized struct {
	Balloons   []model.Vehicle
	Cars       []model.Vehicle
	People     []model.Person
	Precluster model.Cluster
	Frozen     []model.FrozenAssignment
	History    []model.PastFlight
}

// Normalize maps the wire payload onto domain entities.
func Normalize(in *Input) (*Normalized, error) {
	n := &Normalized{Precluster: model.Cluster{}}

	for _, b := range in.Balloons {
		n.Balloons = append(n.Balloons, toVehicle(b, model.KindBalloon))
	}
	for _, c := range in.Cars {
		n.Cars = append(n.Cars, toVehicle(c, model.KindCar))
	}
	for _, p := range in.People {
		role := model.RoleParticipant
		if p.Role != "" {
			role = model.Role(p.Role)
		}
		n.People = append(n.People, model.Person{
			ID:          p.ID,
			Name:        p.Name,
			Weight:      p.Weight,
			Flights:     p.Flights,
			Nationality: p.Nationality,
			Role:        role,
		})
	}

	for _, g := range in.Groups {
		carIDs := make([]string, 0, len(g.Cars))
		for _, car := range g.Cars {
			carIDs = append(carIDs, car.ID)
		}
		if g.Balloon.ID != "" {
			n.Precluster[g.Balloon.ID] = carIDs
		}
		n.Frozen = append(n.Frozen, frozenFromCrew(g.Balloon)...)
		for _, car := range g.Cars {
			n.Frozen = append(n.Frozen, frozenFromCrew(car)...)
		}
	}

	for _, fl := range in.History {
		n.History = append(n.History, toPastFlight(fl))
	}

	return n, nil
}

func toVehicle(v Vehicle, kind model.VehicleKind) model.Vehicle {
	ops := v.AllowedOperators
	if ops == nil {
		ops = []string{}
	}
	return model.Vehicle{
		ID:               v.ID,
		Name:             v.Name,
		Kind:             kind,
		Capacity:         v.Capacity,
		AllowedOperators: ops,
		MaxWeight:        v.MaxWeight,
	}
}

func frozenFromCrew(c Crew) []model.FrozenAssignment {
	var out []model.FrozenAssignment
	if c.Operator != "" {
		out = append(out, model.FrozenAssignment{
			PersonID:  c.Operator,
			VehicleID: c.ID,
			Role:      model.FrozenOperator,
		})
	}
	for _, p := range c.Passengers {
		out = append(out, model.FrozenAssignment{
			PersonID:  p,
			VehicleID: c.ID,
			Role:      model.FrozenPassenger,
		})
	}
	return out
}

func toPastFlight(fl Flight) model.PastFlight {
	var pf model.PastFlight
	for _, g := range fl.Groups {
		grp := model.FlightGroup{
			Balloon: toCrewRecord(g.Balloon),
		}
		for _, car := range g.Cars {
			grp.Cars = append(grp.Cars, toCrewRecord(car))
		}
		pf.Groups = append(pf.Groups, grp)
	}
	return pf
}

func toCrewRecord(c Crew) model.CrewRecord {
	passengers := c.Passengers
	if passengers == nil {
		passengers = []string{}
	}
	return model.CrewRecord{ID: c.ID, Operator: c.Operator, Passengers: passengers}
}
