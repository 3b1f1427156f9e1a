package assign

import (
	"github.com/marvin-wtt/BalloonOrganizer/core/model"
)

// visitedVehicles projects the flight history onto a per-person set of
// vehicle ids they have already occupied, as operator or passenger. Pure set
// accumulation; record order does not matter.
func visitedVehicles(history []model.PastFlight) map[string]map[string]bool {
	seen := make(map[string]map[string]bool)
	add := func(person, vehicle string) {
		if person == "" {
			return
		}
		if seen[person] == nil {
			seen[person] = make(map[string]bool)
		}
		seen[person][vehicle] = true
	}
	for _, fl := range history {
		for _, grp := range fl.Groups {
			add(grp.Balloon.Operator, grp.Balloon.ID)
			for _, p := range grp.Balloon.Passengers {
				add(p, grp.Balloon.ID)
			}
			for _, car := range grp.Cars {
				add(car.Operator, car.ID)
				for _, p := range car.Passengers {
					add(p, car.ID)
				}
			}
		}
	}
	return seen
}

// continuityAllowed derives, from the immediately preceding leg, the vehicles
// each person may still use: their prior balloon plus every car that rode
// with it.
func continuityAllowed(prev model.PastFlight) map[string]map[string]bool {
	allowed := make(map[string]map[string]bool)
	for _, grp := range prev.Groups {
		clusterVids := []string{grp.Balloon.ID}
		for _, car := range grp.Cars {
			clusterVids = append(clusterVids, car.ID)
		}

		members := []string{grp.Balloon.Operator}
		members = append(members, grp.Balloon.Passengers...)
		for _, car := range grp.Cars {
			members = append(members, car.Operator)
			members = append(members, car.Passengers...)
		}

		for _, pid := range members {
			if pid == "" {
				continue
			}
			if allowed[pid] == nil {
				allowed[pid] = make(map[string]bool)
			}
			for _, vid := range clusterVids {
				allowed[pid][vid] = true
			}
		}
	}
	return allowed
}
