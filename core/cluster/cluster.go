// Package cluster builds the static balloon-car travel topology: every car is
// attached to exactly one balloon, forming the ground unit that follows it
// across legs.
package cluster

import (
	"sort"

	"github.com/marvin-wtt/BalloonOrganizer/core/model"
)

// Build assigns every car to a balloon cluster. Precommitted pairings are
// honored first; remaining cars go to the cluster that is weakest relative to
// its balloon, measured as ground seats per balloon seat, so each balloon
// ends up with enough car capacity for its share of the roster. Balloons
// without cars still appear in the result.
func Build(balloons, cars []model.Vehicle, precluster model.Cluster) (model.Cluster, error) {
	if len(balloons) == 0 {
		return model.Cluster{}, nil
	}

	byID := make(map[string]model.Vehicle, len(cars))
	for _, c := range cars {
		byID[c.ID] = c
	}
	balloonByID := make(map[string]model.Vehicle, len(balloons))
	for _, b := range balloons {
		balloonByID[b.ID] = b
	}

	out := make(model.Cluster, len(balloons))
	carSeats := make(map[string]int, len(balloons))
	for _, b := range balloons {
		out[b.ID] = []string{}
	}

	assigned := make(map[string]bool, len(cars))
	for bid, carIDs := range precluster {
		if _, ok := balloonByID[bid]; !ok {
			continue
		}
		for _, cid := range carIDs {
			car, ok := byID[cid]
			if !ok || assigned[cid] {
				continue
			}
			out[bid] = append(out[bid], cid)
			carSeats[bid] += car.Capacity
			assigned[cid] = true
		}
	}

	// Hand out the big cars first so the ratios stay comparable.
	remaining := make([]model.Vehicle, 0, len(cars))
	for _, c := range cars {
		if !assigned[c.ID] {
			remaining = append(remaining, c)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Capacity > remaining[j].Capacity
	})

	for _, car := range remaining {
		best := ""
		bestRatio := 0.0
		for _, b := range balloons {
			cap := b.Capacity
			if cap <= 0 {
				cap = 1
			}
			ratio := float64(carSeats[b.ID]) / float64(cap)
			if best == "" || ratio < bestRatio {
				best = b.ID
				bestRatio = ratio
			}
		}
		out[best] = append(out[best], car.ID)
		carSeats[best] += car.Capacity
	}

	return out, nil
}
