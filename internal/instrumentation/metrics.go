package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics instruments.
type Metrics struct {
	// Tool invocation metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Calendar API metrics
	calendarOperationsTotal metric.Int64Counter
	calendarDuration        metric.Float64Histogram

	// OAuth metrics
	tokenRefreshTotal metric.Int64Counter

	// Booking metrics
	bookingsTotal      metric.Int64Counter
	slotConflictsTotal metric.Int64Counter

	// Server metrics
	activeConnections  metric.Int64UpDownCounter
	httpRequestsTotal  metric.Int64Counter
	httpRequestLatency metric.Float64Histogram
}

// NewMetrics creates and registers all application metrics with the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"clinicdesk_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool invocations counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"clinicdesk_tool_duration_seconds",
		metric.WithDescription("Duration of MCP tool invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool duration histogram: %w", err)
	}

	m.calendarOperationsTotal, err = meter.Int64Counter(
		"clinicdesk_calendar_api_operations_total",
		metric.WithDescription("Total number of Google Calendar API operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar operations counter: %w", err)
	}

	m.calendarDuration, err = meter.Float64Histogram(
		"clinicdesk_calendar_api_duration_seconds",
		metric.WithDescription("Duration of Google Calendar API operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar duration histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"clinicdesk_oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token refresh counter: %w", err)
	}

	m.bookingsTotal, err = meter.Int64Counter(
		"clinicdesk_bookings_total",
		metric.WithDescription("Total number of booking attempts by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bookings counter: %w", err)
	}

	m.slotConflictsTotal, err = meter.Int64Counter(
		"clinicdesk_slot_conflicts_total",
		metric.WithDescription("Total number of bookings rejected because the slot was taken"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot conflicts counter: %w", err)
	}

	m.activeConnections, err = meter.Int64UpDownCounter(
		"clinicdesk_active_connections",
		metric.WithDescription("Number of active MCP connections"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active connections counter: %w", err)
	}

	m.httpRequestsTotal, err = meter.Int64Counter(
		"clinicdesk_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http requests counter: %w", err)
	}

	m.httpRequestLatency, err = meter.Float64Histogram(
		"clinicdesk_http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request latency histogram: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records an MCP tool invocation with its duration and status.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, account, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := metric.WithAttributes(
		attribute.String("tool_name", toolName),
		attribute.String("account", account),
		attribute.String("status", status),
	)

	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordCalendarOperation records a Google Calendar API call with its duration and status.
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.calendarOperationsTotal == nil || m.calendarDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)

	m.calendarOperationsTotal.Add(ctx, 1, attrs)
	m.calendarDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordTokenRefresh records an OAuth token refresh attempt.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, account, result string) {
	if m == nil || m.tokenRefreshTotal == nil {
		return // Instrumentation not initialized
	}

	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("account", account),
		attribute.String("result", result),
	))
}

// RecordBooking records a booking attempt outcome. Outcome is one of the
// Booking* constants.
func (m *Metrics) RecordBooking(ctx context.Context, outcome string) {
	if m == nil || m.bookingsTotal == nil || m.slotConflictsTotal == nil {
		return // Instrumentation not initialized
	}

	m.bookingsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))

	if outcome == BookingSlotConflict {
		m.slotConflictsTotal.Add(ctx, 1)
	}
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections(ctx context.Context) {
	if m == nil || m.activeConnections == nil {
		return // Instrumentation not initialized
	}
	m.activeConnections.Add(ctx, 1)
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections(ctx context.Context) {
	if m == nil || m.activeConnections == nil {
		return // Instrumentation not initialized
	}
	m.activeConnections.Add(ctx, -1)
}

// RecordHTTPRequest records an HTTP request with its method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestLatency == nil {
		return // Instrumentation not initialized
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status_code", statusCode),
	)

	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestLatency.Record(ctx, duration.Seconds(), attrs)
}
