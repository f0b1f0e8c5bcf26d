package parking

import "testing"

func TestNewVehicle(t *testing.T) {
	regNumber := "KA-01-HH-1234"
	color := "White"

	vehicle := NewVehicle(regNumber, color)

	if vehicle.Registration() != regNumber {
		t.Errorf("Expected registration number %s, got %s", regNumber, vehicle.Registration())
	}

	if vehicle.Color() != color {
		t.Errorf("Expected color %s, got %s", color, vehicle.Color())
	}
}
