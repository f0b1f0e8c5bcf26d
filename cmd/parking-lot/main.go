package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-lot/internal/config"
	"parking-lot/internal/logging"
	"parking-lot/internal/parking"
	"parking-lot/internal/server"
)

var (
	mode = flag.String("mode", "cli", "Mode to run: cli, server, or both")
	port = flag.String("port", "", "Port for HTTP server (default $PORT or 8080)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-mode cli|server|both] [-port N] [input-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}
	if *port != "" {
		cfg.Port = *port
	}

	logging.Init(cfg.IsDevelopment(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryProvider, err := parking.NewTelemetryProvider(ctx, parking.TelemetryConfig{
		Enabled:         cfg.TelemetryEnabled,
		ServiceName:     cfg.OTelServiceName,
		OTLPEndpoint:    cfg.OTelEndpoint,
		ResourceFromEnv: cfg.OTelResourceFromEnv,
	})
	if err != nil {
		logging.Error(ctx).Err(err).Msg("failed to initialize telemetry")
		return 1
	}
	defer shutdownTelemetry(telemetryProvider)

	if flag.NArg() > 1 {
		flag.Usage()
		return 2
	}
	inputFile := flag.Arg(0)

	switch *mode {
	case "cli":
		return runCLI(ctx, cfg, telemetryProvider, inputFile)
	case "server":
		return runServer(ctx, cfg, telemetryProvider)
	case "both":
		return runBoth(ctx, cfg, telemetryProvider, inputFile)
	default:
		logging.Error(ctx).Str("mode", *mode).Msg("invalid mode, must be cli, server, or both")
		return 2
	}
}

// runCLI reads commands from inputFile, or from stdin when it is empty.
func runCLI(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, inputFile string) int {
	var opts []parking.ShellOption
	if !cfg.ExitOnBadInteger() {
		opts = append(opts, parking.WithRejectBadIntegers())
	}

	router := parking.NewRouter(telemetryProvider)
	shell := parking.NewShell(router, telemetryProvider, os.Stdin, os.Stdout, opts...)

	// Scanning stdin does not observe ctx, so the shell runs detached and a
	// signal ends the session without waiting for the next line.
	done := make(chan error, 1)
	go func() {
		if inputFile != "" {
			done <- shell.RunFile(ctx, inputFile)
			return
		}
		done <- shell.Run(ctx)
	}()

	select {
	case err := <-done:
		return cliExitCode(ctx, err)
	case <-ctx.Done():
		logging.Info(ctx).Msg("shutting down")
		return 0
	}
}

func cliExitCode(ctx context.Context, err error) int {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case parking.IsFatal(err):
		fmt.Fprintln(os.Stdout, err.Error())
		return 1
	default:
		logging.Error(ctx).Err(err).Msg("shell stopped")
		return 1
	}
}

func runServer(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider) int {
	srv := server.NewServer(cfg.Port, cfg.OTelServiceName, parking.NewRouter(telemetryProvider))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx).Err(err).Msg("server error")
			return 1
		}
		return 0
	case <-ctx.Done():
		logging.Info(ctx).Msg("received shutdown signal")
	}

	return shutdownServer(srv)
}

// runBoth serves HTTP and runs the shell side by side. Each has its own
// lot, so neither touches the other's router.
func runBoth(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, inputFile string) int {
	srv := server.NewServer(cfg.Port, cfg.OTelServiceName, parking.NewRouter(telemetryProvider))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan int, 1)
	go func() {
		cliDone <- runCLI(ctx, cfg, telemetryProvider, inputFile)
	}()

	code := 0
	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx).Err(err).Msg("server error")
			return 1
		}
		return 0
	case code = <-cliDone:
		logging.Info(ctx).Msg("CLI exited")
	case <-ctx.Done():
		logging.Info(ctx).Msg("context cancelled")
	}

	if shutdownCode := shutdownServer(srv); shutdownCode != 0 {
		return shutdownCode
	}
	return code
}

func shutdownServer(srv *server.Server) int {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error(shutdownCtx).Err(err).Msg("server shutdown error")
		return 1
	}
	return 0
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Warn(shutdownCtx).Err(err).Msg("error shutting down telemetry")
	}
}
