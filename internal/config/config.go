package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BadIntegerExit   = "exit"
	BadIntegerReject = "reject"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	OTelServiceName  string
	OTelEndpoint     string
	TelemetryEnabled bool
	// OTelResourceFromEnv is set when OTEL_RESOURCE_ATTRIBUTES is present.
	OTelResourceFromEnv bool

	// BadIntegerPolicy decides what the CLI shell does with a non-integer
	// argument: terminate the process or reject only that command.
	BadIntegerPolicy string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		OTelServiceName:     getEnv("OTEL_SERVICE_NAME", "parking-lot-service"),
		OTelEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		TelemetryEnabled:    getEnvBool("TELEMETRY_ENABLED", true),
		OTelResourceFromEnv: os.Getenv("OTEL_RESOURCE_ATTRIBUTES") != "",
		BadIntegerPolicy:    getEnv("PARKING_BAD_INTEGER_POLICY", BadIntegerExit),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.BadIntegerPolicy {
	case BadIntegerExit, BadIntegerReject:
	default:
		return fmt.Errorf("invalid PARKING_BAD_INTEGER_POLICY %q: must be %s or %s",
			c.BadIntegerPolicy, BadIntegerExit, BadIntegerReject)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) ExitOnBadInteger() bool {
	return c.BadIntegerPolicy == BadIntegerExit
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
