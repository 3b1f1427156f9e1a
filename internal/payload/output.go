package payload

import (
	"sort"

	"github.com/marvin-wtt/BalloonOrganizer/core/model"
)

// Output is the grouped manifest written to stdout: one entry per balloon
// with its cluster's cars.
type Output struct {
	Groups []Group `json:"groups"`
}

// BuildOutput shapes the solved manifest into the caller's schema using the
// cluster topology. Balloons are emitted in sorted id order so the output is
// stable regardless of the input shuffle.
func BuildOutput(manifest model.Manifest, cluster model.Cluster) Output {
	balloonIDs := make([]string, 0, len(cluster))
	for bid := range cluster {
		balloonIDs = append(balloonIDs, bid)
	}
	sort.Strings(balloonIDs)

	out := Output{Groups: []Group{}}
	for _, bid := range balloonIDs {
		g := Group{Balloon: crewFor(manifest, bid), Cars: []Crew{}}
		carIDs := append([]string(nil), cluster[bid]...)
		sort.Strings(carIDs)
		for _, cid := range carIDs {
			g.Cars = append(g.Cars, crewFor(manifest, cid))
		}
		out.Groups = append(out.Groups, g)
	}
	return out
}

func crewFor(manifest model.Manifest, vid string) Crew {
	crew := manifest[vid]
	passengers := append([]string(nil), crew.Passengers...)
	sort.Strings(passengers)
	if passengers == nil {
		passengers = []string{}
	}
	return Crew{ID: vid, Operator: crew.Operator, Passengers: passengers}
}
