package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"pilot_fairness", cfg.Solver.Weights.PilotFairness, 1},
		{"passenger_fairness", cfg.Solver.Weights.PassengerFairness, 20},
		{"nationality_diversity", cfg.Solver.Weights.NationalityDiversity, 3},
		{"vehicle_rotation", cfg.Solver.Weights.VehicleRotation, 5},
		{"cluster_balance", cfg.Solver.Weights.ClusterBalance, 20},
		{"counselor_flight_discount", cfg.Solver.CounselorFlightDiscount, 1},
		{"default_person_weight", cfg.Solver.DefaultPersonWeight, 80},
		{"time_limit_seconds", cfg.Solver.TimeLimitSeconds, 20},
		{"workers", cfg.Solver.Workers, 8},
		{"log_level", cfg.Logging.Level, "info"},
		{"metrics_enabled", cfg.Metrics.Enabled, false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `solver:
  weights:
    pilot_fairness: 2
    passenger_fairness: 10
  workers: 4
  time_limit_seconds: 5
logging:
  level: "debug"
metrics:
  enabled: true
  address: ":2112"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Solver.Weights.PilotFairness != 2 {
		t.Errorf("pilot_fairness mismatch: %v", cfg.Solver.Weights.PilotFairness)
	}
	if cfg.Solver.Weights.PassengerFairness != 10 {
		t.Errorf("passenger_fairness mismatch: %v", cfg.Solver.Weights.PassengerFairness)
	}
	if cfg.Solver.Workers != 4 {
		t.Errorf("workers mismatch: %v", cfg.Solver.Workers)
	}
	if cfg.Solver.TimeLimitSeconds != 5 {
		t.Errorf("time_limit_seconds mismatch: %v", cfg.Solver.TimeLimitSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level mismatch: %v", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Address != ":2112" {
		t.Errorf("metrics mismatch: %+v", cfg.Metrics)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BO_SOLVER__WORKERS", "3")
	t.Setenv("BO_LOGGING__LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Solver.Workers != 3 {
		t.Errorf("workers mismatch: %v", cfg.Solver.Workers)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level mismatch: %v", cfg.Logging.Level)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("BO_LOGGING__LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
