package parking

import "testing"

func TestSlotOccupied(t *testing.T) {
	empty := Slot{Number: 1}
	if empty.Occupied() {
		t.Error("Expected slot without vehicle to be unoccupied")
	}

	taken := Slot{Number: 2, Vehicle: NewVehicle("KA-01-HH-1234", "White")}
	if !taken.Occupied() {
		t.Error("Expected slot with vehicle to be occupied")
	}
}
