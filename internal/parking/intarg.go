package parking

import (
	"strconv"
	"strings"
)

// ParseIntArg parses a base-10 command argument. Callers decide whether a
// failure terminates the process or only rejects the command.
func ParseIntArg(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &NonIntegerArgumentError{Arg: s}
	}
	return n, nil
}
