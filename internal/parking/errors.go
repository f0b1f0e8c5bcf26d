package parking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrIndexOutOfRange    = errors.New("slot index out of range")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMalformedCommand   = errors.New("malformed command")
	ErrNonIntegerArgument = errors.New("argument is not an integer")
	ErrNoParkingLot       = errors.New("parking lot not created")
	ErrLotFull            = errors.New("parking lot is full")
)

// IndexError reports a 0-based index outside [0, Capacity).
type IndexError struct {
	Index    int
	Capacity int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("slot number %d is outside 1..%d", e.Index+1, e.Capacity)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// NonIntegerArgumentError keeps the rejected token. Its message is the one
// printed to the user before the process exits.
type NonIntegerArgumentError struct {
	Arg string
}

func (e *NonIntegerArgumentError) Error() string {
	return "Argument is not integer, check again"
}

func (e *NonIntegerArgumentError) Unwrap() error {
	return ErrNonIntegerArgument
}

type CommandError struct {
	Input string
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Input)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
