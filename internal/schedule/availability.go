package schedule

import (
	"time"
)

// BusinessHours describes when the clinic accepts appointments: a daily
// open/close span in a fixed timezone, Monday through Friday, divided into
// fixed-length slots anchored at opening time.
type BusinessHours struct {
	OpenMinute  int // minutes after midnight, e.g. 480 for 08:00
	CloseMinute int // minutes after midnight, e.g. 1200 for 20:00
	SlotLen     time.Duration
	Location    *time.Location
}

// Open returns the opening instant on the calendar day of t.
func (h BusinessHours) Open(t time.Time) time.Time {
	return h.midnight(t).Add(time.Duration(h.OpenMinute) * time.Minute)
}

// Close returns the closing instant on the calendar day of t.
func (h BusinessHours) Close(t time.Time) time.Time {
	return h.midnight(t).Add(time.Duration(h.CloseMinute) * time.Minute)
}

// IsBusinessDay reports whether t falls on a clinic working day.
func (h BusinessHours) IsBusinessDay(t time.Time) bool {
	wd := t.In(h.Location).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WithinHours reports whether [start, start+SlotLen) is fully contained in
// the business hours of start's day.
func (h BusinessHours) WithinHours(start time.Time) bool {
	start = start.In(h.Location)
	end := start.Add(h.SlotLen)
	return !start.Before(h.Open(start)) && !end.After(h.Close(start))
}

func (h BusinessHours) midnight(t time.Time) time.Time {
	t = t.In(h.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, h.Location)
}

// endOfDay returns 23:59:59 on the calendar day of t.
func (h BusinessHours) endOfDay(t time.Time) time.Time {
	m := h.midnight(t)
	return m.Add(24*time.Hour - time.Second)
}

// TodayWindow returns midnight to 23:59:59 local on the calendar day of now.
func (h BusinessHours) TodayWindow(now time.Time) TimeWindow {
	return TimeWindow{Start: h.midnight(now), End: h.endOfDay(now)}
}

// WeekWindow returns the remaining business week. On a business day the
// window starts at now itself (partial current day, not midnight); on a
// weekend it starts the following Monday at 00:00. The window always ends
// at 23:59:59 on that week's Friday.
func (h BusinessHours) WeekWindow(now time.Time) TimeWindow {
	now = now.In(h.Location)

	// Weekday with Monday=0 .. Sunday=6.
	wd := (int(now.Weekday()) + 6) % 7

	start := now
	if wd >= 5 {
		start = h.midnight(now).AddDate(0, 0, 7-wd)
		wd = 0
	}

	friday := h.endOfDay(start).AddDate(0, 0, 4-wd)
	return TimeWindow{Start: start, End: friday}
}

// FreeSlots computes all slot-aligned candidate windows inside
// window ∩ business hours that do not overlap any busy interval, ordered
// ascending by start. Weekend days inside the window produce no slots.
// Pure function of its inputs.
func (h BusinessHours) FreeSlots(busy []BusyInterval, window TimeWindow) []TimeWindow {
	if !window.Start.Before(window.End) {
		return nil
	}

	var slots []TimeWindow
	for day := h.midnight(window.Start); day.Before(window.End); day = day.AddDate(0, 0, 1) {
		if !h.IsBusinessDay(day) {
			continue
		}

		lo := h.Open(day)
		hi := h.Close(day)
		if window.Start.After(lo) {
			lo = window.Start
		}
		if window.End.Before(hi) {
			hi = window.End
		}

		// Align lo up to the slot grid anchored at opening time.
		if off := lo.Sub(h.Open(day)); off%h.SlotLen != 0 {
			lo = h.Open(day).Add((off/h.SlotLen + 1) * h.SlotLen)
		}

		for s := lo; !s.Add(h.SlotLen).After(hi); s = s.Add(h.SlotLen) {
			cand := TimeWindow{Start: s, End: s.Add(h.SlotLen)}
			if !overlapsBusy(cand, busy) {
				slots = append(slots, cand)
			}
		}
	}
	return slots
}

// NearestSlot returns the first free slot starting at or after the given
// instant within the remaining business week. Returns ErrNoSlot when the
// week has no availability left.
func (h BusinessHours) NearestSlot(busy []BusyInterval, after time.Time) (TimeWindow, error) {
	window := h.WeekWindow(after)
	if window.Start.Before(after) {
		window.Start = after
	}

	for _, slot := range h.FreeSlots(busy, window) {
		if !slot.Start.Before(after) {
			return slot, nil
		}
	}
	return TimeWindow{}, ErrNoSlot
}
