package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedSlotTable struct {
	*SlotTable
	telemetry *TelemetryProvider

	// Metrics
	parkingOperations metric.Int64Counter
	leavingOperations metric.Int64Counter
	queryOperations   metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedSlotTable(ctx context.Context, capacity int, telemetry *TelemetryProvider) (*InstrumentedSlotTable, error) {
	table, err := NewSlotTable(capacity)
	if err != nil {
		return nil, err
	}

	meter := telemetry.Meter()

	parkingOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of parking operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	leavingOperations, err := meter.Int64Counter("leaving_operations_total",
		metric.WithDescription("Total number of leaving operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	queryOperations, err := meter.Int64Counter("query_operations_total",
		metric.WithDescription("Total number of occupancy queries"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ist := &InstrumentedSlotTable{
		SlotTable:         table,
		telemetry:         telemetry,
		parkingOperations: parkingOperations,
		leavingOperations: leavingOperations,
		queryOperations:   queryOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}

	totalSlotsGauge.Add(ctx, int64(capacity))

	return ist, nil
}

// Retire takes the table's slots and occupants out of the gauges. Called
// when a new lot replaces this one.
func (ist *InstrumentedSlotTable) Retire(ctx context.Context) {
	ist.totalSlotsGauge.Add(ctx, -int64(ist.capacity))
	ist.occupancyGauge.Add(ctx, -int64(ist.SlotTable.Occupied()))
}

func (ist *InstrumentedSlotTable) AvailableSlot(ctx context.Context) (int, bool) {
	_, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.available_slot")
	defer span.End()

	index, ok := ist.SlotTable.AvailableSlot()
	span.SetAttributes(attribute.Bool("slot.available", ok))
	if ok {
		span.SetAttributes(attribute.Int("slot.index", index))
	}
	return index, ok
}

func (ist *InstrumentedSlotTable) Park(ctx context.Context, index int, vehicle *Vehicle) error {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", vehicle.Registration()),
			attribute.String("vehicle.color", vehicle.Color()),
			attribute.Int("slot_number", index+1),
		))
	defer span.End()

	start := time.Now()
	wasOccupied := ist.occupiedAt(index)

	err := ist.SlotTable.Park(index, vehicle)

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_color", vehicle.Color()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		if wasOccupied {
			span.AddEvent("slot_overwritten")
		} else {
			ist.occupancyGauge.Add(ctx, 1)
		}
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.Int("slot_number", index+1),
		))
	}

	ist.parkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ist.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return err
}

func (ist *InstrumentedSlotTable) Leave(ctx context.Context, index int) error {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.leave",
		trace.WithAttributes(
			attribute.Int("slot_number", index+1),
		))
	defer span.End()

	start := time.Now()

	// Read the occupant before it is discarded.
	var occupant *Vehicle
	if index >= 0 && index < ist.capacity {
		occupant = ist.slots[index]
	}

	err := ist.SlotTable.Leave(index)

	labels := []attribute.KeyValue{
		attribute.String("operation", "leave"),
	}

	if occupant != nil {
		labels = append(labels, attribute.String("vehicle_color", occupant.Color()))
		span.SetAttributes(
			attribute.String("vehicle.registration_number", occupant.Registration()),
			attribute.String("vehicle.color", occupant.Color()),
		)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.AddEvent("slot_released")
		if occupant != nil {
			ist.occupancyGauge.Add(ctx, -1)
		}
	}

	ist.leavingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ist.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return err
}

func (ist *InstrumentedSlotTable) RegistrationsByColor(ctx context.Context, color string) []string {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.registrations_by_color",
		trace.WithAttributes(attribute.String("vehicle.color", color)))
	defer span.End()

	start := time.Now()
	registrations := ist.SlotTable.RegistrationsByColor(color)
	span.SetAttributes(attribute.Int("match_count", len(registrations)))

	ist.recordQuery(ctx, "registrations_by_color", start, len(registrations) > 0)
	return registrations
}

func (ist *InstrumentedSlotTable) SlotNumbersByColor(ctx context.Context, color string) []int {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.slot_numbers_by_color",
		trace.WithAttributes(attribute.String("vehicle.color", color)))
	defer span.End()

	start := time.Now()
	numbers := ist.SlotTable.SlotNumbersByColor(color)
	span.SetAttributes(attribute.Int("match_count", len(numbers)))

	ist.recordQuery(ctx, "slot_numbers_by_color", start, len(numbers) > 0)
	return numbers
}

func (ist *InstrumentedSlotTable) SlotNumberForRegistration(ctx context.Context, registration string) (int, bool) {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.get_slot_by_registration",
		trace.WithAttributes(
			attribute.String("registration_number", registration),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("searching_by_registration")
	slotNumber, ok := ist.SlotTable.SlotNumberForRegistration(registration)

	if !ok {
		span.AddEvent("vehicle_not_found")
	} else {
		span.SetAttributes(attribute.Int("found_slot_number", slotNumber))
		span.AddEvent("vehicle_found", trace.WithAttributes(
			attribute.Int("slot_number", slotNumber),
		))
	}

	ist.recordQuery(ctx, "get_slot_by_registration", start, ok)
	return slotNumber, ok
}

func (ist *InstrumentedSlotTable) Snapshot(ctx context.Context) []Slot {
	ctx, span := ist.telemetry.Tracer().Start(ctx, "parking_lot.get_status")
	defer span.End()

	start := time.Now()

	span.AddEvent("retrieving_status")
	snapshot := ist.SlotTable.Snapshot()

	span.SetAttributes(
		attribute.Int("occupied_slots_count", ist.SlotTable.Occupied()),
		attribute.Int("total_capacity", ist.capacity),
	)

	ist.recordQuery(ctx, "get_status", start, true)
	return snapshot
}

func (ist *InstrumentedSlotTable) recordQuery(ctx context.Context, operation string, start time.Time, found bool) {
	status := "found"
	if !found {
		status = "not_found"
	}

	labels := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("status", status),
	}

	ist.queryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ist.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))
}

func (ist *InstrumentedSlotTable) occupiedAt(index int) bool {
	return index >= 0 && index < ist.capacity && ist.slots[index] != nil
}
