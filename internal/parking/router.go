package parking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parking-lot/internal/logging"
)

// Router owns the current lot and turns commands into response text. It is
// not safe for concurrent use.
type Router struct {
	telemetry *TelemetryProvider
	lot       *InstrumentedSlotTable
}

func NewRouter(telemetry *TelemetryProvider) *Router {
	return &Router{telemetry: telemetry}
}

// Lot returns the current lot, or nil before the first create.
func (r *Router) Lot() *InstrumentedSlotTable {
	return r.lot
}

func (r *Router) Handle(ctx context.Context, line string) (string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		logging.Debug(ctx).Err(err).Msg("rejected command")
		return "", err
	}
	return r.Execute(ctx, cmd)
}

func (r *Router) Execute(ctx context.Context, cmd Command) (string, error) {
	ctx, span := r.telemetry.Tracer().Start(ctx, "router."+cmd.Kind.String(),
		trace.WithAttributes(attribute.String("command.name", cmd.Kind.String())))
	defer span.End()

	response, err := r.dispatch(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.Debug(ctx).Err(err).Str("command", cmd.Kind.String()).Msg("command failed")
		return "", err
	}

	logging.Debug(ctx).Str("command", cmd.Kind.String()).Msg("command executed")
	return response, nil
}

func (r *Router) dispatch(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Kind {
	case CommandCreateLot:
		capacity, err := ParseIntArg(cmd.Arg)
		if err != nil {
			return "", err
		}
		if err := r.CreateLot(ctx, capacity); err != nil {
			return "", err
		}
		return "Created a parking lot with " + cmd.Arg + " slots", nil
	case CommandLeave:
		slotNumber, err := ParseIntArg(cmd.Arg)
		if err != nil {
			return "", err
		}
		if err := r.Leave(ctx, slotNumber); err != nil {
			return "", err
		}
		return "Slot number " + cmd.Arg + " is free", nil
	case CommandPark:
		slotNumber, err := r.Park(ctx, cmd.Registration, cmd.Color)
		if errors.Is(err, ErrLotFull) {
			return messageFull, nil
		}
		if err != nil {
			return "", err
		}
		return "Allocated slot number: " + strconv.Itoa(slotNumber), nil
	}

	lot, err := r.ActiveLot()
	if err != nil {
		return "", err
	}

	switch cmd.Kind {
	case CommandReport:
		return RenderReport(lot.Snapshot(ctx)), nil
	case CommandRegistrationsByColour:
		return strings.Join(lot.RegistrationsByColor(ctx, cmd.Arg), ", "), nil
	case CommandSlotNumbersByColour:
		return joinInts(lot.SlotNumbersByColor(ctx, cmd.Arg)), nil
	case CommandSlotForRegistration:
		slotNumber, ok := lot.SlotNumberForRegistration(ctx, cmd.Arg)
		if !ok {
			return messageNoSlot, nil
		}
		return strconv.Itoa(slotNumber), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
}

// ActiveLot returns the current lot or ErrNoParkingLot.
func (r *Router) ActiveLot() (*InstrumentedSlotTable, error) {
	if r.lot == nil {
		return nil, ErrNoParkingLot
	}
	return r.lot, nil
}

// CreateLot replaces the current lot with an empty one of the given
// capacity. On error the current lot is kept.
func (r *Router) CreateLot(ctx context.Context, capacity int) error {
	lot, err := NewInstrumentedSlotTable(ctx, capacity, r.telemetry)
	if err != nil {
		return fmt.Errorf("create parking lot: %w", err)
	}

	if r.lot != nil {
		r.lot.Retire(ctx)
	}
	r.lot = lot

	logging.Debug(ctx).Int("capacity", capacity).Msg("parking lot created")
	return nil
}

// Leave frees the 1-based slotNumber.
func (r *Router) Leave(ctx context.Context, slotNumber int) error {
	lot, err := r.ActiveLot()
	if err != nil {
		return err
	}

	if err := lot.Leave(ctx, slotNumber-1); err != nil {
		return fmt.Errorf("leave: %w", err)
	}
	return nil
}

// Park allocates the lowest free slot and returns its 1-based number, or
// ErrLotFull.
func (r *Router) Park(ctx context.Context, registration, color string) (int, error) {
	lot, err := r.ActiveLot()
	if err != nil {
		return 0, err
	}

	index, ok := lot.AvailableSlot(ctx)
	if !ok {
		return 0, ErrLotFull
	}

	if err := lot.Park(ctx, index, NewVehicle(registration, color)); err != nil {
		return 0, fmt.Errorf("park: %w", err)
	}
	return index + 1, nil
}

// IsFatal reports whether err should end a CLI session under the default
// policy.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNonIntegerArgument)
}
