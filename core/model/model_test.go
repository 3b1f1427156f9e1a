package model

import "testing"

func TestVehicleValidate(t *testing.T) {
	cases := []struct {
		name    string
		v       Vehicle
		wantErr bool
	}{
		{"ok", Vehicle{ID: "b1", Kind: KindBalloon, Capacity: 3}, false},
		{"zero capacity", Vehicle{ID: "c1", Kind: KindCar}, false},
		{"missing id", Vehicle{Capacity: 2}, true},
		{"negative capacity", Vehicle{ID: "b1", Capacity: -1}, true},
	}
	for _, c := range cases {
		err := c.v.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: got %v", c.name, err)
		}
	}
}

func TestPersonIsCounselor(t *testing.T) {
	if (Person{Role: RoleParticipant}).IsCounselor() {
		t.Error("participant flagged as counselor")
	}
	if (Person{}).IsCounselor() {
		t.Error("empty role flagged as counselor")
	}
	if !(Person{Role: RoleCounselor}).IsCounselor() {
		t.Error("counselor not recognized")
	}
}

func TestCrewOccupants(t *testing.T) {
	got := Crew{Operator: "A", Passengers: []string{"B", "C"}}.Occupants()
	if len(got) != 3 || got[0] != "A" {
		t.Fatalf("expected operator first among 3 occupants, got %v", got)
	}
	if got := (Crew{Passengers: []string{"D"}}).Occupants(); len(got) != 1 || got[0] != "D" {
		t.Fatalf("unexpected occupants for unoperated vehicle: %v", got)
	}
}
