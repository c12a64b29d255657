package telemetry

import (
	"os"
	"testing"

	"github.com/lanternworks/lantern-common/envcfg"
)

func TestLoadConfigFromEnvDefaults(t *testing.T) { //nolint:paralleltest
	keys := []string{
		"OTEL_ENABLED",
		"OTEL_SERVICE_NAME",
		"OTEL_SERVICE_VERSION",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		"OTEL_EXPORTER_OTLP_TIMEOUT",
	}

	for _, key := range keys {
		original := os.Getenv(key)

		_ = os.Unsetenv(key)

		defer restoreEnv(key, original)
	}

	config, err := LoadConfigFromEnv(t.Context(), "test")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Enabled {
		t.Error("Expected Enabled to be false by default")
	}

	if config.ServiceVersion != defaultServiceVersion {
		t.Errorf("Expected ServiceVersion %s, got %s", defaultServiceVersion, config.ServiceVersion)
	}

	if config.Environment != "test" {
		t.Errorf("Expected Environment 'test', got %s", config.Environment)
	}

	if config.Endpoint != "" {
		t.Errorf("Expected empty endpoint by default, got %s", config.Endpoint)
	}

	if config.Timeout != defaultTimeout {
		t.Errorf("Expected Timeout %s, got %s", defaultTimeout, config.Timeout)
	}
}

func TestLoadConfigFromEnvEndpointFallback(t *testing.T) { //nolint:paralleltest
	originalEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	_ = os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	defer restoreEnv("OTEL_EXPORTER_OTLP_ENDPOINT", originalEndpoint)

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://legacy-collector:4318")

	config, err := LoadConfigFromEnv(t.Context(), "dev")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Endpoint != "http://legacy-collector:4318" {
		t.Errorf("Expected legacy endpoint fallback, got %s", config.Endpoint)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	config, err = LoadConfigFromEnv(t.Context(), "dev")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Endpoint != "http://collector:4318" {
		t.Errorf("Expected primary endpoint to win, got %s", config.Endpoint)
	}
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	t.Parallel()

	ctx := envcfg.WithOverrides(t.Context(), map[string]string{
		"OTEL_ENABLED":                "true",
		"OTEL_SERVICE_NAME":           "statepilot",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "http://collector:4318",
	})

	config, err := LoadConfigFromEnv(ctx, "dev")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !config.Enabled {
		t.Error("Expected Enabled to be true")
	}

	if config.ServiceName != "statepilot" {
		t.Errorf("Expected ServiceName 'statepilot', got %s", config.ServiceName)
	}

	if config.Endpoint != "http://collector:4318" {
		t.Errorf("Expected endpoint from override, got %s", config.Endpoint)
	}

	if config.Environment != "dev" {
		t.Errorf("Expected Environment 'dev', got %s", config.Environment)
	}
}

func TestInitializeDisabled(t *testing.T) {
	t.Parallel()

	if err := Initialize(t.Context(), &Config{Enabled: false}); err != nil {
		t.Fatalf("Initialize with export disabled should not fail: %v", err)
	}

	if _, ok := LogHandler("test"); ok {
		t.Error("Expected no log handler before a pipeline is initialized")
	}
}

func TestInitializeWithoutEndpoint(t *testing.T) {
	t.Parallel()

	if err := Initialize(t.Context(), &Config{Enabled: true}); err != nil {
		t.Fatalf("Initialize without an endpoint should not fail: %v", err)
	}
}

func TestShutdownWithoutInitialize(t *testing.T) {
	t.Parallel()

	if err := Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown without initialization should not fail: %v", err)
	}
}

func restoreEnv(key, value string) {
	if value == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, value)
	}
}
