package parking

// Slot is a read-only view of one position in a SlotTable.
type Slot struct {
	Number  int
	Vehicle *Vehicle
}

func (s Slot) Occupied() bool {
	return s.Vehicle != nil
}
