package parking

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"parking-lot/internal/logging"
)

// Shell feeds input lines to a Router one at a time and prints each
// response on its own line.
type Shell struct {
	router            *Router
	telemetry         *TelemetryProvider
	in                io.Reader
	out               io.Writer
	rejectBadIntegers bool
}

type ShellOption func(*Shell)

// WithRejectBadIntegers makes a non-integer argument reject only the
// offending command instead of ending the session.
func WithRejectBadIntegers() ShellOption {
	return func(s *Shell) {
		s.rejectBadIntegers = true
	}
}

func NewShell(router *Router, telemetry *TelemetryProvider, in io.Reader, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{
		router:    router,
		telemetry: telemetry,
		in:        in,
		out:       out,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes lines until the input ends or ctx is cancelled. Under the
// default policy a non-integer argument stops the loop and is returned; any
// other command error is printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	scanner := bufio.NewScanner(s.in)
	lines := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		lines++

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))
		err := s.processCommand(cmdCtx, input)
		cmdSpan.End()

		if err != nil {
			span.SetAttributes(attribute.Int("shell.commands", lines))
			return err
		}
	}

	span.SetAttributes(attribute.Int("shell.commands", lines))
	span.AddEvent("shell_ended")

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// RunFile executes every line of the file at path.
func (s *Shell) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	logging.Debug(ctx).Str("path", path).Msg("running batch file")

	s.in = f
	return s.Run(ctx)
}

func (s *Shell) processCommand(ctx context.Context, input string) error {
	response, err := s.router.Handle(ctx, input)
	if err == nil {
		fmt.Fprintln(s.out, response)
		return nil
	}

	if IsFatal(err) {
		if !s.rejectBadIntegers {
			return err
		}
		fmt.Fprintln(s.out, err.Error())
		return nil
	}

	fmt.Fprintf(s.out, "Error: %s\n", err.Error())
	return nil
}
