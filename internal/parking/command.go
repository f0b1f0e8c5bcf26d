package parking

import "strings"

type CommandKind int

const (
	CommandReport CommandKind = iota
	CommandCreateLot
	CommandLeave
	CommandRegistrationsByColour
	CommandSlotNumbersByColour
	CommandSlotForRegistration
	CommandPark
)

var commandKindNames = map[CommandKind]string{
	CommandReport:                "status",
	CommandCreateLot:             "create_parking_lot",
	CommandLeave:                 "leave",
	CommandRegistrationsByColour: "registration_numbers_for_cars_with_colour",
	CommandSlotNumbersByColour:   "slot_numbers_for_cars_with_colour",
	CommandSlotForRegistration:   "slot_number_for_registration_number",
	CommandPark:                  "park",
}

// singleArgCommands are the names accepted as the first of two tokens.
var singleArgCommands = map[string]CommandKind{
	"create_parking_lot":                        CommandCreateLot,
	"leave":                                     CommandLeave,
	"registration_numbers_for_cars_with_colour": CommandRegistrationsByColour,
	"slot_numbers_for_cars_with_colour":         CommandSlotNumbersByColour,
	"slot_number_for_registration_number":       CommandSlotForRegistration,
}

func (k CommandKind) String() string {
	if name, ok := commandKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one parsed input line. Arg is set for the two-token commands;
// Registration and Color are set for CommandPark.
type Command struct {
	Kind         CommandKind
	Arg          string
	Registration string
	Color        string
}

// ParseCommand selects the command by token count: one token asks for the
// report, two tokens name an operation and its argument, three tokens park
// a vehicle (the first token is not inspected).
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(line)

	switch len(tokens) {
	case 1:
		return Command{Kind: CommandReport}, nil
	case 2:
		kind, ok := singleArgCommands[tokens[0]]
		if !ok {
			return Command{}, &CommandError{Input: tokens[0], Err: ErrUnknownCommand}
		}
		return Command{Kind: kind, Arg: tokens[1]}, nil
	case 3:
		return Command{
			Kind:         CommandPark,
			Registration: tokens[1],
			Color:        tokens[2],
		}, nil
	default:
		return Command{}, &CommandError{Input: strings.TrimSpace(line), Err: ErrMalformedCommand}
	}
}
