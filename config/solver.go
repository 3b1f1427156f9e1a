package config

import (
	"fmt"
	"time"

	"github.com/marvin-wtt/BalloonOrganizer/core/assign"
)

// SolverConfig carries the assignment weights and search limits.
type SolverConfig struct {
	Weights assign.Weights `json:"weights"`
	// CounselorFlightDiscount is added to a counselor's flight count before
	// fairness bonuses are computed, ranking counselors behind participants.
	CounselorFlightDiscount int `json:"counselor_flight_discount"`
	// DefaultPersonWeight substitutes for people with no known body weight.
	DefaultPersonWeight int `json:"default_person_weight"`
	// TimeLimitSeconds bounds the search; a partial result is returned when
	// it expires.
	TimeLimitSeconds int `json:"time_limit_seconds"`
	// Workers is the number of parallel search workers.
	Workers int `json:"workers"`
	// Seed randomizes input order and worker branching.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	def := assign.DefaultOptions()
	if c.Weights == (assign.Weights{}) {
		c.Weights = def.Weights
	}
	if c.CounselorFlightDiscount == 0 {
		c.CounselorFlightDiscount = def.CounselorFlightDiscount
	}
	if c.DefaultPersonWeight == 0 {
		c.DefaultPersonWeight = def.DefaultPersonWeight
	}
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = int(def.TimeLimit / time.Second)
	}
	if c.Workers == 0 {
		c.Workers = def.Workers
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time_limit_seconds must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.DefaultPersonWeight <= 0 {
		return fmt.Errorf("default_person_weight must be positive")
	}
	return nil
}

// Options maps the config onto solve options.
func (c SolverConfig) Options() assign.Options {
	opts := assign.DefaultOptions()
	opts.Weights = c.Weights
	opts.CounselorFlightDiscount = c.CounselorFlightDiscount
	opts.DefaultPersonWeight = c.DefaultPersonWeight
	opts.TimeLimit = time.Duration(c.TimeLimitSeconds) * time.Second
	opts.Workers = c.Workers
	opts.Seed = c.Seed
	return opts
}
