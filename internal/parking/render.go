package parking

import (
	"strconv"
	"strings"
)

const (
	reportHeader  = "Slot No.    Registration No    Colour"
	messageFull   = "Sorry, parking lot is full"
	messageNoSlot = "Not found"
)

// RenderReport lays out the occupied slots under the report header. Empty
// slots are skipped.
func RenderReport(slots []Slot) string {
	var b strings.Builder
	b.WriteString(reportHeader)

	for _, slot := range slots {
		if !slot.Occupied() {
			continue
		}
		b.WriteString("\n")
		b.WriteString(strconv.Itoa(slot.Number))
		b.WriteString("           ")
		b.WriteString(slot.Vehicle.Registration())
		b.WriteString("      ")
		b.WriteString(slot.Vehicle.Color())
	}

	return b.String()
}

func joinInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
