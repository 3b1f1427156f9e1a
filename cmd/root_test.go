package cmd

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/marvin-wtt/BalloonOrganizer/config"
	"github.com/marvin-wtt/BalloonOrganizer/core/assign"
	"github.com/marvin-wtt/BalloonOrganizer/internal/payload"
)

func TestApplyFlagOverrides(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := rootCmd.Flags().Set("w-passenger-fairness", "7"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := rootCmd.Flags().Set("workers", "2"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	flags.passengerFairness = 7
	flags.workers = 2

	applyFlagOverrides(rootCmd, cfg)

	if cfg.Solver.Weights.PassengerFairness != 7 {
		t.Errorf("passenger fairness not overridden: %d", cfg.Solver.Weights.PassengerFairness)
	}
	if cfg.Solver.Workers != 2 {
		t.Errorf("workers not overridden: %d", cfg.Solver.Workers)
	}
	// Untouched flags keep the config value.
	if cfg.Solver.Weights.PilotFairness != 1 {
		t.Errorf("pilot fairness should keep its default: %d", cfg.Solver.Weights.PilotFairness)
	}
}

func TestFlightLegDefaultsToNone(t *testing.T) {
	fl := rootCmd.Flags().Lookup("flight-leg")
	if fl == nil {
		t.Fatal("flight-leg flag missing")
	}
	// Leg 0 means no leg supplied: neither the first-leg balancing penalty
	// nor continuity may apply by default.
	if fl.DefValue != "0" {
		t.Fatalf("flight-leg default = %s, want 0", fl.DefValue)
	}
}

func TestShuffleInput_KeepsAllEntries(t *testing.T) {
	in := &payload.Input{
		People: []payload.Person{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Cars:   []payload.Vehicle{{ID: "c1"}, {ID: "c2"}},
	}
	shuffleInput(rand.New(rand.NewSource(1)), in)
	seen := make(map[string]bool)
	for _, p := range in.People {
		seen[p.ID] = true
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if !seen[id] {
			t.Fatalf("person %s lost in shuffle", id)
		}
	}
	if len(in.Cars) != 2 {
		t.Fatalf("cars lost in shuffle: %v", in.Cars)
	}
}

func TestSolveStatus(t *testing.T) {
	if got := solveStatus(nil); got != "ok" {
		t.Errorf("nil: %s", got)
	}
	if got := solveStatus(assign.ErrInfeasible); got != "infeasible" {
		t.Errorf("infeasible: %s", got)
	}
	if got := solveStatus(errors.New("boom")); got != "error" {
		t.Errorf("other: %s", got)
	}
}
