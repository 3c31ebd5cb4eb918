package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/calendar"
	"github.com/clinicdesk/clinicdesk/internal/instrumentation"
	"github.com/clinicdesk/clinicdesk/internal/logging"
)

// CalendarService is the slice of the calendar client the booker needs.
type CalendarService interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error)
	InsertEvent(ctx context.Context, input calendar.EventInput) (*calendar.Event, error)
}

// Booker validates a candidate slot and creates the appointment event.
type Booker struct {
	cal         CalendarService
	hours       BusinessHours
	summary     string
	sendUpdates string
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	now         func() time.Time
}

// NewBooker creates a Booker that books appointments with the given event
// summary and guest notification policy.
func NewBooker(cal CalendarService, hours BusinessHours, summary, sendUpdates string) *Booker {
	return &Booker{
		cal:         cal,
		hours:       hours,
		summary:     summary,
		sendUpdates: sendUpdates,
		logger:      slog.Default(),
		now:         time.Now,
	}
}

// WithLogger replaces the booker's logger.
func (b *Booker) WithLogger(logger *slog.Logger) *Booker {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithMetrics attaches a metrics recorder.
func (b *Booker) WithMetrics(m *instrumentation.Metrics) *Booker {
	b.metrics = m
	return b
}

// WithClock replaces the time source. Used by tests.
func (b *Booker) WithClock(now func() time.Time) *Booker {
	if now != nil {
		b.now = now
	}
	return b
}

// Book validates the candidate slot starting at start and creates the
// appointment for the patient. Validation order: past time, business hours,
// business day, then a fresh conflict check against the day's events. The
// upstream calendar is re-fetched immediately before insertion so a slot
// taken by a concurrent conversation fails with ErrSlotConflict instead of
// double-booking.
func (b *Booker) Book(ctx context.Context, start time.Time, patientName, patientEmail string) (*calendar.Event, error) {
	// Attempt ID correlates log lines across the validate/insert sequence.
	// There is no upstream idempotency key; a retried insert is a new attempt.
	attempt := uuid.NewString()

	logger := b.logger.With(
		logging.Attempt(attempt),
		logging.Patient(patientEmail),
	)

	start = start.In(b.hours.Location)
	slot := TimeWindow{Start: start, End: start.Add(b.hours.SlotLen)}

	if !start.After(b.now()) {
		b.recordOutcome(ctx, instrumentation.BookingPastTime)
		logger.Info("booking rejected", logging.Status("past_time"))
		return nil, fmt.Errorf("%w: %s", ErrPastTime, start.Format(time.RFC3339))
	}

	if !b.hours.WithinHours(start) {
		b.recordOutcome(ctx, instrumentation.BookingOutOfHours)
		logger.Info("booking rejected", logging.Status("out_of_hours"))
		return nil, fmt.Errorf("%w: %s", ErrOutOfHours, start.Format("15:04"))
	}

	if !b.hours.IsBusinessDay(start) {
		b.recordOutcome(ctx, instrumentation.BookingWeekend)
		logger.Info("booking rejected", logging.Status("weekend"))
		return nil, fmt.Errorf("%w: %s", ErrWeekend, start.Weekday())
	}

	// Re-fetch the day's events so a slot taken since it was suggested is
	// caught here rather than silently double-booked.
	day := b.hours.TodayWindow(start)
	events, err := b.cal.ListEvents(ctx, day.Start, day.End)
	if err != nil {
		b.recordOutcome(ctx, instrumentation.BookingUpstream)
		logger.Error("booking conflict check failed", logging.Err(err))
		return nil, err
	}

	if overlapsBusy(slot, BusyFromEvents(events)) {
		b.recordOutcome(ctx, instrumentation.BookingSlotConflict)
		logger.Info("booking rejected", logging.Status("slot_conflict"))
		return nil, fmt.Errorf("%w: %s", ErrSlotConflict, start.Format(time.RFC3339))
	}

	created, err := b.cal.InsertEvent(ctx, calendar.EventInput{
		Summary:     b.summary,
		Description: fmt.Sprintf("Appointment for %s", patientName),
		Start:       slot.Start,
		End:         slot.End,
		TimeZone:    b.hours.Location.String(),
		Attendees:   []calendar.AttendeeInput{{Name: patientName, Email: patientEmail}},
		SendUpdates: b.sendUpdates,
	})
	if err != nil {
		// The upstream service can still reject the insert if another writer
		// won the race after our conflict check.
		if errors.Is(err, calendar.ErrConflict) {
			b.recordOutcome(ctx, instrumentation.BookingSlotConflict)
			logger.Info("booking rejected", logging.Status("slot_conflict"), logging.Err(err))
			return nil, fmt.Errorf("%w: %s", ErrSlotConflict, start.Format(time.RFC3339))
		}
		b.recordOutcome(ctx, instrumentation.BookingUpstream)
		logger.Error("booking insert failed", logging.Err(err))
		return nil, err
	}

	b.recordOutcome(ctx, instrumentation.BookingBooked)
	logger.Info("appointment booked",
		logging.Status(logging.StatusSuccess),
		logging.EventID(created.ID),
	)
	return created, nil
}

func (b *Booker) recordOutcome(ctx context.Context, outcome string) {
	b.metrics.RecordBooking(ctx, outcome)
}
