package parking

// Vehicle is never mutated after NewVehicle; a leave discards it.
type Vehicle struct {
	registration string
	color        string
}

func NewVehicle(registration, color string) *Vehicle {
	return &Vehicle{
		registration: registration,
		color:        color,
	}
}

func (v *Vehicle) Registration() string {
	return v.registration
}

func (v *Vehicle) Color() string {
	return v.color
}
