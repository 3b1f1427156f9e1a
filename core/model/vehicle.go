package model

import "fmt"

// VehicleKind distinguishes air and ground vehicles.
type VehicleKind string

const (
	KindBalloon VehicleKind = "balloon"
	KindCar     VehicleKind = "car"
)

// Vehicle is a balloon or car with a fixed seat capacity and a set of people
// qualified to operate it.
type Vehicle struct {
	ID               string
	Name             string
	Kind             VehicleKind
	Capacity         int      // number of seats, operator included
	AllowedOperators []string // person ids eligible to operate this vehicle
	MaxWeight        int      // max total occupant weight in kg; <= 0 means unconstrained
}

// Validate checks that the vehicle configuration is sound.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vehicle id must not be empty")
	}
	if v.Capacity < 0 {
		return fmt.Errorf("vehicle %s: capacity must not be negative", v.ID)
	}
	return nil
}
