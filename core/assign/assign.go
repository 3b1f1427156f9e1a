// Package assign is the per-leg crew assignment core: it translates the hard
// business rules and soft fairness goals into one combinatorial model, hands
// it to the solver engine under a wall-clock bound, and reads the solved
// assignment back into a per-vehicle manifest.
package assign

import (
	"context"
	"time"

	"github.com/marvin-wtt/BalloonOrganizer/core/logger"
	"github.com/marvin-wtt/BalloonOrganizer/core/model"
	"github.com/marvin-wtt/BalloonOrganizer/core/solver"
)

// Weights are the non-negative soft-rule weights of the objective.
type Weights struct {
	PilotFairness        int `json:"pilot_fairness"`
	PassengerFairness    int `json:"passenger_fairness"`
	NationalityDiversity int `json:"nationality_diversity"`
	VehicleRotation      int `json:"vehicle_rotation"`
	ClusterBalance       int `json:"cluster_balance"`
	// SecondLegOverweight is accepted for call-contract parity and reserved:
	// the hard per-vehicle weight cap leaves the soft penalty no slack.
	SecondLegOverweight int `json:"second_leg_overweight"`
}

// Options tune one solve invocation.
type Options struct {
	Weights                 Weights
	CounselorFlightDiscount int
	DefaultPersonWeight     int
	TimeLimit               time.Duration
	Workers                 int
	Seed                    int64
	Logger                  logger.Logger
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{
		Weights: Weights{
			PilotFairness:        1,
			PassengerFairness:    20,
			NationalityDiversity: 3,
			VehicleRotation:      5,
			ClusterBalance:       20,
			SecondLegOverweight:  50,
		},
		CounselorFlightDiscount: 1,
		DefaultPersonWeight:     80,
		TimeLimit:               20 * time.Second,
		Workers:                 8,
	}
}

// Request is the full input of one leg's solve. All fields are read-only for
// the call's duration.
type Request struct {
	Balloons []model.Vehicle
	Cars     []model.Vehicle
	People   []model.Person
	Cluster  model.Cluster
	Frozen   []model.FrozenAssignment
	History  []model.PastFlight
	Leg      int // 0 when no leg number was supplied
}

// Solve runs one synchronous assignment: build model, solve, extract. It
// never returns a partial manifest; failures carry a typed error
// (ConfigError or ErrInfeasible).
func Solve(ctx context.Context, req Request, opts Options) (model.Manifest, error) {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	if req.Leg > 1 {
		if len(req.History) == 0 {
			return nil, configErrorf("flight history must be provided for multi-leg flights")
		}
		if req.Cluster == nil {
			return nil, configErrorf("cluster must be provided for multi-leg flights")
		}
	}

	idx, err := buildIndex(req, opts.DefaultPersonWeight)
	if err != nil {
		return nil, err
	}

	if len(idx.personIDs) == 0 {
		manifest := make(model.Manifest, len(idx.vehicleIDs))
		for _, v := range idx.vehicleIDs {
			manifest[v] = model.Crew{Passengers: []string{}}
		}
		return manifest, nil
	}

	seen := visitedVehicles(req.History)

	prog, err := buildConstraints(idx, req)
	if err != nil {
		return nil, err
	}
	if err := buildObjective(prog, idx, req, opts, seen, log); err != nil {
		return nil, err
	}

	log.Debugw("model built", map[string]any{
		"people":   len(idx.personIDs),
		"vehicles": len(idx.vehicleIDs),
		"vars":     prog.m.NumVars(),
		"leg":      req.Leg,
	})

	res := solver.Solve(ctx, prog.m, solver.Options{
		TimeLimit: opts.TimeLimit,
		Workers:   opts.Workers,
		Seed:      opts.Seed,
		Logger:    log,
	})
	switch res.Status {
	case solver.StatusOptimal, solver.StatusFeasible:
		log.Infof("solved with status %s, cost %d", res.Status, res.Objective)
		return extractManifest(prog, res, idx), nil
	default:
		return nil, ErrInfeasible
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
