package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"parking-lot/internal/parking"
)

func TestCLIExitCode(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, 0, cliExitCode(ctx, nil))
	assert.Equal(t, 0, cliExitCode(ctx, context.Canceled))
	assert.Equal(t, 1, cliExitCode(ctx, &parking.NonIntegerArgumentError{Arg: "abc"}))
	assert.Equal(t, 1, cliExitCode(ctx, errors.New("read input: broken pipe")))
}
