package parking

import "fmt"

// SlotTable holds a fixed number of slots. Index 0 is reported to users as
// slot number 1. The table performs no locking; callers serialise access.
type SlotTable struct {
	capacity int
	slots    []*Vehicle
}

// NewSlotTable allocates capacity empty slots. A zero capacity yields a lot
// that is full from the start.
func NewSlotTable(capacity int) (*SlotTable, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &SlotTable{
		capacity: capacity,
		slots:    make([]*Vehicle, capacity),
	}, nil
}

func (st *SlotTable) Capacity() int {
	return st.capacity
}

// AvailableSlot returns the lowest empty index.
func (st *SlotTable) AvailableSlot() (int, bool) {
	for i, v := range st.slots {
		if v == nil {
			return i, true
		}
	}
	return 0, false
}

// Park writes vehicle at index, replacing any occupant.
func (st *SlotTable) Park(index int, vehicle *Vehicle) error {
	if err := st.checkIndex(index); err != nil {
		return err
	}

	st.slots[index] = vehicle
	return nil
}

// Leave empties index whether or not it was occupied.
func (st *SlotTable) Leave(index int) error {
	if err := st.checkIndex(index); err != nil {
		return err
	}

	st.slots[index] = nil
	return nil
}

func (st *SlotTable) RegistrationsByColor(color string) []string {
	registrations := []string{}
	for _, v := range st.slots {
		if v != nil && v.color == color {
			registrations = append(registrations, v.registration)
		}
	}
	return registrations
}

func (st *SlotTable) SlotNumbersByColor(color string) []int {
	numbers := []int{}
	for i, v := range st.slots {
		if v != nil && v.color == color {
			numbers = append(numbers, i+1)
		}
	}
	return numbers
}

// SlotNumberForRegistration returns the 1-based number of the first slot
// holding registration. Registrations are not unique, later matches are
// ignored.
func (st *SlotTable) SlotNumberForRegistration(registration string) (int, bool) {
	for i, v := range st.slots {
		if v != nil && v.registration == registration {
			return i + 1, true
		}
	}
	return 0, false
}

// Snapshot lists every slot in index order, empty ones included.
func (st *SlotTable) Snapshot() []Slot {
	snapshot := make([]Slot, len(st.slots))
	for i, v := range st.slots {
		snapshot[i] = Slot{Number: i + 1, Vehicle: v}
	}
	return snapshot
}

func (st *SlotTable) Occupied() int {
	occupied := 0
	for _, v := range st.slots {
		if v != nil {
			occupied++
		}
	}
	return occupied
}

func (st *SlotTable) checkIndex(index int) error {
	if index < 0 || index >= st.capacity {
		return &IndexError{Index: index, Capacity: st.capacity}
	}
	return nil
}
