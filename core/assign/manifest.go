package assign

import (
	"github.com/marvin-wtt/BalloonOrganizer/core/model"
	"github.com/marvin-wtt/BalloonOrganizer/core/solver"
)

// extractManifest reads the solved assignment back into domain terms: per
// vehicle, the single operator (if any) and the remaining occupants.
func extractManifest(prog *program, res solver.Result, idx *index) model.Manifest {
	manifest := make(model.Manifest, len(idx.vehicleIDs))
	for _, v := range idx.vehicleIDs {
		crew := model.Crew{Passengers: []string{}}
		for _, p := range idx.personIDs {
			if res.BoolValue(prog.op[pv{p, v}]) {
				crew.Operator = p
				continue
			}
			if res.BoolValue(prog.pax[pv{p, v}]) {
				crew.Passengers = append(crew.Passengers, p)
			}
		}
		manifest[v] = crew
	}
	return manifest
}
