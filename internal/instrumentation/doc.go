// Package instrumentation provides OpenTelemetry-based observability for
// clinicdesk.
//
// It wires up metrics and distributed tracing behind a single Provider that
// owns the OpenTelemetry meter and tracer providers. Metrics can be exported
// via Prometheus (default), OTLP, or stdout; traces via OTLP, stdout, or
// disabled entirely.
//
// # Configuration
//
// Configuration is environment-driven:
//
//	INSTRUMENTATION_ENABLED      enable/disable all instrumentation (default: true)
//	METRICS_EXPORTER             prometheus | otlp | stdout (default: prometheus)
//	TRACING_EXPORTER             otlp | stdout | none (default: none)
//	OTEL_EXPORTER_OTLP_ENDPOINT  OTLP collector endpoint
//	OTEL_TRACES_SAMPLER_ARG      trace sampling rate 0.0-1.0 (default: 0.1)
//
// # Usage
//
//	cfg := instrumentation.DefaultConfig()
//	provider, err := instrumentation.NewProvider(ctx, cfg)
//	if err != nil { ... }
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordBooking(ctx, instrumentation.BookingBooked)
//
// All Metrics record methods are nil-safe, so instrumented code paths do not
// need to guard against a disabled provider.
package instrumentation
