package schedule

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/calendar"
)

// TimeWindow is a half-open time range [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two windows overlap under half-open semantics:
// a slot ending exactly when another interval starts is free.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// BusyInterval is the span of an existing calendar event, used only for
// availability computation.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// BusyFromEvents derives busy intervals from calendar events. Events without
// a parseable start or end (e.g. malformed upstream data) are skipped.
func BusyFromEvents(events []calendar.Event) []BusyInterval {
	var busy []BusyInterval
	for _, e := range events {
		if e.Start.IsZero() || e.End.IsZero() || !e.Start.Before(e.End) {
			continue
		}
		busy = append(busy, BusyInterval{Start: e.Start, End: e.End})
	}
	return busy
}

func overlapsBusy(w TimeWindow, busy []BusyInterval) bool {
	for _, b := range busy {
		if w.Start.Before(b.End) && b.Start.Before(w.End) {
			return true
		}
	}
	return false
}
