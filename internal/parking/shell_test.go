package parking

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `create_parking_lot 6
park KA-01-HH-1234 White
park KA-01-HH-9999 White
park KA-01-BB-0001 Black
park KA-01-HH-7777 Red
park KA-01-HH-2701 Blue
park KA-01-HH-3141 Black
leave 4
status
park KA-01-P-333 White
park DL-12-AA-9999 White
registration_numbers_for_cars_with_colour White
slot_numbers_for_cars_with_colour White
slot_number_for_registration_number KA-01-HH-3141
slot_number_for_registration_number MH-04-AY-1111
`

const sampleOutput = `Created a parking lot with 6 slots
Allocated slot number: 1
Allocated slot number: 2
Allocated slot number: 3
Allocated slot number: 4
Allocated slot number: 5
Allocated slot number: 6
Slot number 4 is free
Slot No.    Registration No    Colour
1           KA-01-HH-1234      White
2           KA-01-HH-9999      White
3           KA-01-BB-0001      Black
5           KA-01-HH-2701      Blue
6           KA-01-HH-3141      Black
Allocated slot number: 4
Sorry, parking lot is full
KA-01-HH-1234, KA-01-HH-9999, KA-01-P-333
1, 2, 4
6
Not found
`

func newTestShell(t *testing.T, input string, opts ...ShellOption) (*Shell, *bytes.Buffer) {
	t.Helper()
	tel := newTestTelemetry(t)
	var out bytes.Buffer
	return NewShell(NewRouter(tel.provider), tel.provider, strings.NewReader(input), &out, opts...), &out
}

func TestShellRun(t *testing.T) {
	shell, out := newTestShell(t, sampleInput)

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, sampleOutput, out.String())
}

func TestShellSkipsBlankLines(t *testing.T) {
	shell, out := newTestShell(t, "\n   \ncreate_parking_lot 1\n\n")

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, "Created a parking lot with 1 slots\n", out.String())
}

func TestShellStopsOnNonInteger(t *testing.T) {
	shell, out := newTestShell(t, "create_parking_lot 1\ncreate_parking_lot abc\npark KA-01 White\n")

	err := shell.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonIntegerArgument))
	assert.Equal(t, "Created a parking lot with 1 slots\n", out.String())
}

func TestShellRejectsNonInteger(t *testing.T) {
	shell, out := newTestShell(t, "create_parking_lot 1\nleave one\npark KA-01 White\n", WithRejectBadIntegers())

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t,
		"Created a parking lot with 1 slots\n"+
			"Argument is not integer, check again\n"+
			"Allocated slot number: 1\n",
		out.String())
}

func TestShellReportsErrorsAndContinues(t *testing.T) {
	shell, out := newTestShell(t, "status\nfly away\ncreate_parking_lot 1\nleave 5\n")

	require.NoError(t, shell.Run(context.Background()))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Error: parking lot not created", lines[0])
	assert.Equal(t, `Error: unknown command: "fly"`, lines[1])
	assert.Equal(t, "Created a parking lot with 1 slots", lines[2])
	assert.Equal(t, "Error: leave: slot number 5 is outside 1..1", lines[3])
}

func TestShellCancelled(t *testing.T) {
	shell, out := newTestShell(t, "create_parking_lot 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shell.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, out.String())
}

func TestShellRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleInput), 0o600))

	shell, out := newTestShell(t, "")
	require.NoError(t, shell.RunFile(context.Background(), path))
	assert.Equal(t, sampleOutput, out.String())
}

func TestShellRunFileMissing(t *testing.T) {
	shell, _ := newTestShell(t, "")
	err := shell.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
