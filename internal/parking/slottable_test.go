package parking

import (
	"errors"
	"reflect"
	"testing"
)

func mustSlotTable(t *testing.T, capacity int) *SlotTable {
	t.Helper()
	st, err := NewSlotTable(capacity)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	return st
}

// parkNext parks at the lowest free slot the way the router does.
func parkNext(t *testing.T, st *SlotTable, registration, color string) int {
	t.Helper()
	index, ok := st.AvailableSlot()
	if !ok {
		t.Fatalf("Expected a free slot for %s", registration)
	}
	if err := st.Park(index, NewVehicle(registration, color)); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	return index
}

func TestNewSlotTable(t *testing.T) {
	capacity := 6
	st := mustSlotTable(t, capacity)

	if st.Capacity() != capacity {
		t.Errorf("Expected capacity %d, got %d", capacity, st.Capacity())
	}

	snapshot := st.Snapshot()
	if len(snapshot) != capacity {
		t.Errorf("Expected %d slots, got %d", capacity, len(snapshot))
	}

	for i, slot := range snapshot {
		if slot.Number != i+1 {
			t.Errorf("Expected slot number %d, got %d", i+1, slot.Number)
		}
		if slot.Occupied() {
			t.Errorf("Expected slot %d to be unoccupied", i+1)
		}
	}
}

func TestNewSlotTableCapacity(t *testing.T) {
	st := mustSlotTable(t, 0)
	if _, ok := st.AvailableSlot(); ok {
		t.Error("Expected a zero capacity lot to be full")
	}

	_, err := NewSlotTable(-1)
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Expected ErrInvalidCapacity, got %v", err)
	}
}

func TestFreshTableOffersFirstSlot(t *testing.T) {
	for capacity := 1; capacity <= 5; capacity++ {
		st := mustSlotTable(t, capacity)
		index, ok := st.AvailableSlot()
		if !ok || index != 0 {
			t.Errorf("capacity %d: expected index 0, got %d (ok=%v)", capacity, index, ok)
		}
	}
}

func TestSlotTableFillsInOrder(t *testing.T) {
	st := mustSlotTable(t, 3)

	for want, reg := range []string{"KA-01-HH-1234", "KA-01-HH-9999", "KA-01-BB-0001"} {
		if got := parkNext(t, st, reg, "White"); got != want {
			t.Errorf("Expected index %d, got %d", want, got)
		}
	}

	if _, ok := st.AvailableSlot(); ok {
		t.Error("Expected no free slot once every slot is taken")
	}
	if st.Occupied() != 3 {
		t.Errorf("Expected 3 occupied slots, got %d", st.Occupied())
	}
}

func TestSlotTableLeaveRestoresSlot(t *testing.T) {
	st := mustSlotTable(t, 3)
	parkNext(t, st, "KA-01-HH-1234", "White")
	index := parkNext(t, st, "KA-01-HH-9999", "Black")
	parkNext(t, st, "KA-01-BB-0001", "Red")

	if err := st.Leave(index); err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}

	got, ok := st.AvailableSlot()
	if !ok || got != index {
		t.Errorf("Expected to reuse index %d, got %d (ok=%v)", index, got, ok)
	}

	if err := st.Leave(index); err != nil {
		t.Errorf("Expected leaving an empty slot to succeed, got %s", err.Error())
	}
}

func TestSlotTableParkOverwrites(t *testing.T) {
	st := mustSlotTable(t, 2)
	parkNext(t, st, "KA-01-HH-1234", "White")

	if err := st.Park(0, NewVehicle("KA-01-HH-9999", "Black")); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if _, ok := st.SlotNumberForRegistration("KA-01-HH-1234"); ok {
		t.Error("Expected the previous occupant to be replaced")
	}
	if n, _ := st.SlotNumberForRegistration("KA-01-HH-9999"); n != 1 {
		t.Errorf("Expected slot number 1, got %d", n)
	}
}

func TestSlotTableIndexOutOfRange(t *testing.T) {
	st := mustSlotTable(t, 2)

	for _, index := range []int{-1, 2, 10} {
		err := st.Park(index, NewVehicle("KA-01-HH-1234", "White"))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Park(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}

		err = st.Leave(index)
		var indexErr *IndexError
		if !errors.As(err, &indexErr) || indexErr.Index != index {
			t.Errorf("Leave(%d): expected IndexError, got %v", index, err)
		}
	}

	if st.Occupied() != 0 {
		t.Errorf("Expected no occupied slots, got %d", st.Occupied())
	}
}

func TestSlotTableColorQueries(t *testing.T) {
	st := mustSlotTable(t, 6)
	parkNext(t, st, "KA-01-HH-1234", "White")
	parkNext(t, st, "KA-01-HH-9999", "White")
	parkNext(t, st, "KA-01-BB-0001", "Black")
	parkNext(t, st, "KA-01-HH-7777", "Red")
	parkNext(t, st, "KA-01-HH-2701", "Blue")
	parkNext(t, st, "KA-01-HH-3141", "Black")
	st.Leave(0)

	regs := st.RegistrationsByColor("White")
	if !reflect.DeepEqual(regs, []string{"KA-01-HH-9999"}) {
		t.Errorf("Unexpected registrations: %v", regs)
	}

	numbers := st.SlotNumbersByColor("Black")
	if !reflect.DeepEqual(numbers, []int{3, 6}) {
		t.Errorf("Unexpected slot numbers: %v", numbers)
	}

	if got := st.RegistrationsByColor("white"); len(got) != 0 {
		t.Errorf("Expected case-sensitive match, got %v", got)
	}
	if got := st.SlotNumbersByColor("Green"); got == nil || len(got) != 0 {
		t.Errorf("Expected an empty slice, got %#v", got)
	}
}

func TestSlotTableSlotNumberForRegistration(t *testing.T) {
	st := mustSlotTable(t, 4)
	parkNext(t, st, "KA-01-HH-1234", "White")
	parkNext(t, st, "KA-01-HH-9999", "Black")
	parkNext(t, st, "KA-01-HH-9999", "Red")

	n, ok := st.SlotNumberForRegistration("KA-01-HH-9999")
	if !ok || n != 2 {
		t.Errorf("Expected lowest matching slot 2, got %d (ok=%v)", n, ok)
	}

	if _, ok := st.SlotNumberForRegistration("NOTFOUND"); ok {
		t.Error("Expected no match for unknown registration")
	}
}

func TestSlotTableSnapshot(t *testing.T) {
	st := mustSlotTable(t, 3)
	parkNext(t, st, "KA-01-HH-1234", "White")
	parkNext(t, st, "KA-01-HH-9999", "Black")
	st.Leave(0)

	snapshot := st.Snapshot()
	if snapshot[0].Occupied() {
		t.Error("Expected slot 1 to be empty")
	}
	if !snapshot[1].Occupied() || snapshot[1].Vehicle.Registration() != "KA-01-HH-9999" {
		t.Errorf("Unexpected slot 2: %+v", snapshot[1])
	}
	if snapshot[2].Occupied() {
		t.Error("Expected slot 3 to be empty")
	}
}
