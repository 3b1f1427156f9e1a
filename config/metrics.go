package config

import (
	"fmt"
)

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// Validate checks mandatory fields.
func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Address == "" {
		return fmt.Errorf("metrics address is required when enabled")
	}
	return nil
}
