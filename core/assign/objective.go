package assign

import (
	"fmt"
	"sort"

	"github.com/marvin-wtt/BalloonOrganizer/core/logger"
	"github.com/marvin-wtt/BalloonOrganizer/core/model"
	"github.com/marvin-wtt/BalloonOrganizer/core/solver"
)

// objScale keeps every coefficient integral: the counselor halving of the
// passenger-fairness bonus would otherwise be fractional. Scaling every
// family by the same factor leaves the relative weights untouched.
const objScale = 2

// buildObjective composes the single minimized cost expression from the five
// soft-rule families. Negative coefficients are rewards.
func buildObjective(prog *program, idx *index, req Request, opts Options, seen map[string]map[string]bool, log logger.Logger) error {
	m := prog.m
	w := opts.Weights
	maxF := idx.maxFlights()

	bonus := func(p string) int {
		b := maxF - idx.effectiveFlights(p, opts.CounselorFlightDiscount)
		if b < 0 {
			b = 0
		}
		return b
	}

	var terms []solver.Term

	// Pilot fairness: reward low-flight pilots for operating, counselors
	// deprioritized only through the flight discount.
	for _, p := range idx.personIDs {
		for _, v := range idx.vehicleIDs {
			if !idx.allowedOp[v][p] {
				continue
			}
			terms = append(terms, solver.Term{
				Var:   prog.op[pv{p, v}],
				Coeff: -objScale * w.PilotFairness * bonus(p),
			})
		}
	}

	// Passenger fairness, balloon seats only. The counselor bonus is halved
	// via the scale factor: participants get objScale, counselors half of it.
	for _, p := range idx.personIDs {
		factor := objScale
		if idx.counselor[p] {
			factor = objScale / 2
		}
		for _, v := range idx.vehicleIDs {
			if idx.kind[v] != model.KindBalloon {
				continue
			}
			terms = append(terms, solver.Term{
				Var:   prog.pax[pv{p, v}],
				Coeff: -factor * w.PassengerFairness * bonus(p),
			})
		}
	}

	// Nationality diversity: reward every mixed pair sharing a vehicle. The
	// pair indicator is the linearized AND of both seat variables.
	for _, v := range idx.vehicleIDs {
		for i := 0; i < len(idx.personIDs); i++ {
			for j := i + 1; j < len(idx.personIDs); j++ {
				p1, p2 := idx.personIDs[i], idx.personIDs[j]
				if idx.nationality[p1] == idx.nationality[p2] {
					continue
				}
				pair := m.NewBool(fmt.Sprintf("mix_%s_%s_%s", p1, p2, v))
				m.AddMinEquality(pair, prog.pax[pv{p1, v}], prog.pax[pv{p2, v}])
				terms = append(terms, solver.Term{Var: pair, Coeff: -objScale * w.NationalityDiversity})
			}
		}
	}

	// Vehicle rotation: riding a fresh vehicle as a plain passenger earns the
	// reward; operating earns nothing, revisits cost nothing.
	for _, p := range idx.personIDs {
		for _, v := range idx.vehicleIDs {
			if seen[p][v] {
				continue
			}
			terms = append(terms,
				solver.Term{Var: prog.pax[pv{p, v}], Coeff: -objScale * w.VehicleRotation},
				solver.Term{Var: prog.op[pv{p, v}], Coeff: objScale * w.VehicleRotation},
			)
		}
	}

	// Cluster load balancing on the first leg only.
	if req.Leg == 1 {
		balanceTerms, err := clusterBalance(prog, idx, req, w.ClusterBalance, log)
		if err != nil {
			return err
		}
		terms = append(terms, balanceTerms...)
	}

	m.Minimize(terms)
	return nil
}

// clusterBalance penalizes clusters whose cars carry too few of the
// low-flight cohort. The cohort is cut off so its size matches the total
// balloon seating capacity: those are the candidates the next leg's balloons
// will need.
func clusterBalance(prog *program, idx *index, req Request, weight int, log logger.Logger) ([]solver.Term, error) {
	if req.Cluster == nil {
		log.Warnf("cluster balancing skipped: no cluster mapping supplied for leg 1")
		return nil, nil
	}

	futureSeats := 0
	for _, b := range req.Balloons {
		futureSeats += b.Capacity
	}
	if futureSeats == 0 {
		return nil, nil
	}

	flights := make([]int, 0, len(idx.personIDs))
	for _, p := range idx.personIDs {
		flights = append(flights, idx.flights[p])
	}
	sort.Ints(flights)
	cutoff := flights[len(flights)-1]
	if futureSeats < len(flights) {
		cutoff = flights[futureSeats-1]
	}

	var terms []solver.Term
	for _, b := range req.Balloons {
		carIDs := req.Cluster[b.ID]
		if len(carIDs) == 0 {
			log.Warnf("cluster balancing: balloon %s has no cars in the cluster mapping", b.ID)
			continue
		}
		target := b.Capacity

		short := prog.m.NewInt("short_"+b.ID, 0, target)
		cohort := []solver.Term{{Var: short, Coeff: 1}}
		for _, v := range carIDs {
			if _, ok := idx.vehicles[v]; !ok {
				return nil, configErrorf("cluster for balloon %q references unknown vehicle %q", b.ID, v)
			}
			for _, p := range idx.personIDs {
				if idx.flights[p] <= cutoff {
					cohort = append(cohort, solver.Term{Var: prog.pax[pv{p, v}], Coeff: 1})
				}
			}
		}
		// short >= target - cohort members seated in the cluster's cars.
		prog.m.AddLinear(target, solver.NoUpper, cohort...)
		terms = append(terms, solver.Term{Var: short, Coeff: objScale * weight})
	}
	return terms, nil
}
