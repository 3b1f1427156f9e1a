package assign

import (
	"fmt"

	"github.com/marvin-wtt/BalloonOrganizer/core/model"
	"github.com/marvin-wtt/BalloonOrganizer/core/solver"
)

// program holds the constraint model under construction: one operator and one
// seat decision per (person, vehicle) pair.
type program struct {
	m   *solver.Model
	op  map[pv]solver.Var
	pax map[pv]solver.Var
}

type pv struct {
	person  string
	vehicle string
}

// buildConstraints declares the decision variables and imposes every hard
// rule: single seat, at most one operator role, operator-implies-occupant,
// eligibility, capacity, weight caps, the occupancy/operator coupling, frozen
// overrides and cluster continuity.
func buildConstraints(idx *index, req Request) (*program, error) {
	prog := &program{
		m:   solver.NewModel(),
		op:  make(map[pv]solver.Var, len(idx.personIDs)*len(idx.vehicleIDs)),
		pax: make(map[pv]solver.Var, len(idx.personIDs)*len(idx.vehicleIDs)),
	}
	m := prog.m

	for _, p := range idx.personIDs {
		for _, v := range idx.vehicleIDs {
			prog.op[pv{p, v}] = m.NewBool(fmt.Sprintf("op_%s_%s", p, v))
			prog.pax[pv{p, v}] = m.NewBool(fmt.Sprintf("pax_%s_%s", p, v))
		}
	}

	// Each person sits in exactly one vehicle and operates at most one.
	for _, p := range idx.personIDs {
		seat := make([]solver.Term, 0, len(idx.vehicleIDs))
		operate := make([]solver.Term, 0, len(idx.vehicleIDs))
		for _, v := range idx.vehicleIDs {
			seat = append(seat, solver.Term{Var: prog.pax[pv{p, v}], Coeff: 1})
			operate = append(operate, solver.Term{Var: prog.op[pv{p, v}], Coeff: 1})
		}
		m.AddLinear(1, 1, seat...)
		m.AddLinear(solver.NoLower, 1, operate...)
	}

	// Operating implies occupying a seat; only eligible people may operate.
	for _, p := range idx.personIDs {
		for _, v := range idx.vehicleIDs {
			m.AddImplication(prog.op[pv{p, v}], prog.pax[pv{p, v}])
			if !idx.allowedOp[v][p] {
				m.Fix(prog.op[pv{p, v}], 0)
			}
		}
	}

	// Seat capacity and optional weight cap per vehicle.
	for _, v := range idx.vehicleIDs {
		seats := make([]solver.Term, 0, len(idx.personIDs))
		for _, p := range idx.personIDs {
			seats = append(seats, solver.Term{Var: prog.pax[pv{p, v}], Coeff: 1})
		}
		m.AddLinear(solver.NoLower, idx.capacity[v], seats...)

		if idx.maxWeight[v] > 0 {
			load := make([]solver.Term, 0, len(idx.personIDs))
			for _, p := range idx.personIDs {
				load = append(load, solver.Term{Var: prog.pax[pv{p, v}], Coeff: idx.weight[p]})
			}
			m.AddLinear(solver.NoLower, idx.maxWeight[v], load...)
		}
	}

	// An occupied vehicle has exactly one operator, an empty one has none.
	// occ reifies "any seat taken": seats >= occ and seats <= capacity*occ,
	// then the operator count is tied to occ.
	for _, v := range idx.vehicleIDs {
		occ := m.NewBool("occ_" + v)
		seatsGeOcc := []solver.Term{{Var: occ, Coeff: -1}}
		seatsLeCap := []solver.Term{{Var: occ, Coeff: -idx.capacity[v]}}
		operators := []solver.Term{{Var: occ, Coeff: -1}}
		for _, p := range idx.personIDs {
			seatsGeOcc = append(seatsGeOcc, solver.Term{Var: prog.pax[pv{p, v}], Coeff: 1})
			seatsLeCap = append(seatsLeCap, solver.Term{Var: prog.pax[pv{p, v}], Coeff: 1})
			operators = append(operators, solver.Term{Var: prog.op[pv{p, v}], Coeff: 1})
		}
		m.AddLinear(0, solver.NoUpper, seatsGeOcc...)
		m.AddLinear(solver.NoLower, 0, seatsLeCap...)
		m.AddLinear(0, 0, operators...)
	}

	if err := applyFrozen(prog, idx, req.Frozen); err != nil {
		return nil, err
	}

	if req.Leg > 1 {
		if err := applyContinuity(prog, idx, req); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// applyFrozen pins pre-committed seats. Pinning is exact: a frozen operator
// must operate, a frozen passenger must occupy without operating.
func applyFrozen(prog *program, idx *index, frozen []model.FrozenAssignment) error {
	for _, lock := range frozen {
		if _, ok := idx.people[lock.PersonID]; !ok {
			return configErrorf("frozen assignment references unknown person %q", lock.PersonID)
		}
		if _, ok := idx.vehicles[lock.VehicleID]; !ok {
			return configErrorf("frozen assignment references unknown vehicle %q", lock.VehicleID)
		}
		key := pv{lock.PersonID, lock.VehicleID}
		switch lock.Role {
		case model.FrozenOperator:
			prog.m.Fix(prog.op[key], 1)
			prog.m.Fix(prog.pax[key], 1)
		case model.FrozenPassenger:
			prog.m.Fix(prog.pax[key], 1)
			prog.m.Fix(prog.op[key], 0)
		default:
			return configErrorf("unknown frozen role %q", lock.Role)
		}
	}
	return nil
}

// applyContinuity keeps every person inside the travel cluster they occupied
// on the previous leg. A person with no reachable vehicle is a configuration
// error: they were not represented in the previous grouping.
func applyContinuity(prog *program, idx *index, req Request) error {
	prev := req.History[len(req.History)-1]
	allowed := continuityAllowed(prev)

	for _, p := range idx.personIDs {
		set := allowed[p]
		reachable := 0
		for _, v := range idx.vehicleIDs {
			if set[v] {
				reachable++
			}
		}
		if reachable == 0 {
			name := idx.people[p].Name
			if name == "" {
				name = p
			}
			return configErrorf("person %s not allowed in any vehicle on leg %d", name, req.Leg)
		}
		for _, v := range idx.vehicleIDs {
			if !set[v] {
				prog.m.Fix(prog.pax[pv{p, v}], 0)
			}
		}
	}
	return nil
}
