package instrumentation

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "clinicdesk" {
		t.Errorf("expected service name clinicdesk, got %s", cfg.ServiceName)
	}
	if !cfg.Enabled {
		t.Error("instrumentation should be enabled by default")
	}
	if cfg.MetricsExporter != ExporterPrometheus {
		t.Errorf("expected prometheus metrics exporter, got %s", cfg.MetricsExporter)
	}
	if cfg.TracingExporter != ExporterNone {
		t.Errorf("expected tracing disabled by default, got %s", cfg.TracingExporter)
	}
	if cfg.TraceSamplingRate != 0.1 {
		t.Errorf("expected default sampling rate 0.1, got %f", cfg.TraceSamplingRate)
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "clinicdesk-test")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	cfg := DefaultConfig()

	if cfg.ServiceName != "clinicdesk-test" {
		t.Errorf("expected service name override, got %s", cfg.ServiceName)
	}
	if cfg.Enabled {
		t.Error("expected instrumentation disabled via env")
	}
	if cfg.MetricsExporter != ExporterStdout {
		t.Errorf("expected stdout exporter, got %s", cfg.MetricsExporter)
	}
	if cfg.TraceSamplingRate != 0.5 {
		t.Errorf("expected sampling rate 0.5, got %f", cfg.TraceSamplingRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "negative sampling rate", mutate: func(c *Config) { c.TraceSamplingRate = -0.1 }, wantErr: true},
		{name: "sampling rate above one", mutate: func(c *Config) { c.TraceSamplingRate = 1.5 }, wantErr: true},
		{name: "unknown metrics exporter", mutate: func(c *Config) { c.MetricsExporter = "statsd" }, wantErr: true},
		{name: "unknown tracing exporter", mutate: func(c *Config) { c.TracingExporter = "jaeger" }, wantErr: true},
		{name: "otlp metrics without endpoint", mutate: func(c *Config) { c.MetricsExporter = ExporterOTLP }, wantErr: true},
		{name: "otlp tracing without endpoint", mutate: func(c *Config) { c.TracingExporter = ExporterOTLP }, wantErr: true},
		{
			name: "otlp with endpoint",
			mutate: func(c *Config) {
				c.MetricsExporter = ExporterOTLP
				c.TracingExporter = ExporterOTLP
				c.OTLPEndpoint = "localhost:4318"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				ServiceName:       "clinicdesk",
				Enabled:           true,
				MetricsExporter:   ExporterPrometheus,
				TracingExporter:   ExporterNone,
				TraceSamplingRate: 0.1,
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestDisabledProviderIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	provider, err := NewProvider(t.Context(), cfg)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(t.Context()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}()

	if provider.Enabled() {
		t.Error("provider should report disabled")
	}
	if provider.Metrics() == nil {
		t.Fatal("disabled provider must still return a metrics recorder")
	}
	if provider.PrometheusHandler() != nil {
		t.Error("disabled provider should not expose a prometheus handler")
	}

	// Recording on the no-op recorder must not panic.
	provider.Metrics().RecordBooking(t.Context(), BookingBooked)
	provider.Metrics().RecordTokenRefresh(t.Context(), "front-desk", RefreshSuccess)
}

func TestNilMetricsRecorderIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordToolInvocation(t.Context(), "schedule_book_appointment", "front-desk", StatusSuccess, 0)
	m.RecordCalendarOperation(t.Context(), "events.list", StatusError, 0)
	m.RecordBooking(t.Context(), BookingSlotConflict)
	m.IncrementActiveConnections(t.Context())
	m.DecrementActiveConnections(t.Context())
}
