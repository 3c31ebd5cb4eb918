package schedule

import (
	"errors"
	"testing"
	"time"
)

func testHours() BusinessHours {
	return BusinessHours{
		OpenMinute:  8 * 60,
		CloseMinute: 20 * 60,
		SlotLen:     30 * time.Minute,
		Location:    time.UTC,
	}
}

// 2026-09-02 is a Wednesday.
func wednesday(hour, min int) time.Time {
	return time.Date(2026, time.September, 2, hour, min, 0, 0, time.UTC)
}

func TestTodayWindow(t *testing.T) {
	h := testHours()

	w := h.TodayWindow(wednesday(14, 23))

	if !w.Start.Equal(wednesday(0, 0)) {
		t.Errorf("start = %v, expected midnight", w.Start)
	}
	if !w.End.Equal(time.Date(2026, time.September, 2, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end = %v, expected 23:59:59", w.End)
	}
}

func TestWeekWindow(t *testing.T) {
	h := testHours()

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday afternoon starts at the exact instant",
			now:       wednesday(14, 0),
			wantStart: wednesday(14, 0),
			wantEnd:   time.Date(2026, time.September, 4, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "saturday rolls to next monday midnight",
			now:       time.Date(2026, time.September, 5, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.September, 11, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "sunday rolls to next monday midnight",
			now:       time.Date(2026, time.September, 6, 18, 30, 0, 0, time.UTC),
			wantStart: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.September, 11, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "monday morning keeps the whole week",
			now:       time.Date(2026, time.September, 7, 7, 15, 0, 0, time.UTC),
			wantStart: time.Date(2026, time.September, 7, 7, 15, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.September, 11, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.WeekWindow(tt.now)
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, expected %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, expected %v", w.End, tt.wantEnd)
			}
		})
	}
}

func TestFreeSlotsAroundBusyInterval(t *testing.T) {
	h := testHours()

	busy := []BusyInterval{{Start: wednesday(9, 0), End: wednesday(9, 30)}}
	window := TimeWindow{Start: wednesday(8, 0), End: wednesday(10, 0)}

	slots := h.FreeSlots(busy, window)

	want := []TimeWindow{
		{Start: wednesday(8, 0), End: wednesday(8, 30)},
		{Start: wednesday(8, 30), End: wednesday(9, 0)},
		{Start: wednesday(9, 30), End: wednesday(10, 0)},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, expected %d: %+v", len(slots), len(want), slots)
	}
	for i, s := range slots {
		if !s.Start.Equal(want[i].Start) || !s.End.Equal(want[i].End) {
			t.Errorf("slot %d = %v-%v, expected %v-%v", i, s.Start, s.End, want[i].Start, want[i].End)
		}
	}
}

func TestFreeSlotsNeverOverlapBusy(t *testing.T) {
	h := testHours()

	busy := []BusyInterval{
		{Start: wednesday(8, 15), End: wednesday(8, 45)},
		{Start: wednesday(11, 0), End: wednesday(13, 0)},
		{Start: wednesday(19, 45), End: wednesday(20, 0)},
	}
	window := TimeWindow{Start: wednesday(0, 0), End: wednesday(23, 59)}

	for _, s := range h.FreeSlots(busy, window) {
		for _, b := range busy {
			if s.Overlaps(TimeWindow(b)) {
				t.Errorf("slot %v-%v overlaps busy %v-%v", s.Start, s.End, b.Start, b.End)
			}
		}
	}
}

func TestFreeSlotsStayInsideBusinessHours(t *testing.T) {
	h := testHours()

	window := TimeWindow{Start: wednesday(0, 0), End: wednesday(23, 59)}
	slots := h.FreeSlots(nil, window)

	if len(slots) != 24 {
		t.Fatalf("expected 24 slots in a free 08:00-20:00 day, got %d", len(slots))
	}
	first, last := slots[0], slots[len(slots)-1]
	if !first.Start.Equal(wednesday(8, 0)) {
		t.Errorf("first slot starts %v, expected 08:00", first.Start)
	}
	if !last.End.Equal(wednesday(20, 0)) {
		t.Errorf("last slot ends %v, expected 20:00", last.End)
	}
}

func TestFreeSlotsSkipWeekends(t *testing.T) {
	h := testHours()

	// Friday 2026-09-04 18:00 through Monday 2026-09-07 09:00.
	window := TimeWindow{
		Start: time.Date(2026, time.September, 4, 18, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
	}

	for _, s := range h.FreeSlots(nil, window) {
		if wd := s.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot on a weekend: %v", s.Start)
		}
	}
}

func TestFreeSlotsAlignToGrid(t *testing.T) {
	h := testHours()

	// A window starting off-grid must not yield an off-grid slot.
	window := TimeWindow{Start: wednesday(9, 10), End: wednesday(11, 0)}
	slots := h.FreeSlots(nil, window)

	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if !slots[0].Start.Equal(wednesday(9, 30)) {
		t.Errorf("first slot starts %v, expected alignment up to 09:30", slots[0].Start)
	}
}

func TestFreeSlotsEmptyWindow(t *testing.T) {
	h := testHours()

	if slots := h.FreeSlots(nil, TimeWindow{Start: wednesday(10, 0), End: wednesday(10, 0)}); slots != nil {
		t.Errorf("degenerate window should yield no slots, got %+v", slots)
	}
	if slots := h.FreeSlots(nil, TimeWindow{Start: wednesday(11, 0), End: wednesday(10, 0)}); slots != nil {
		t.Errorf("inverted window should yield no slots, got %+v", slots)
	}
}

func TestNearestSlot(t *testing.T) {
	h := testHours()

	busy := []BusyInterval{{Start: wednesday(14, 0), End: wednesday(14, 30)}}

	slot, err := h.NearestSlot(busy, wednesday(13, 50))
	if err != nil {
		t.Fatalf("NearestSlot: %v", err)
	}
	if !slot.Start.Equal(wednesday(14, 30)) {
		t.Errorf("nearest slot starts %v, expected 14:30", slot.Start)
	}
}

func TestNearestSlotRoundTripsThroughFreeSlots(t *testing.T) {
	h := testHours()

	busy := []BusyInterval{
		{Start: wednesday(8, 0), End: wednesday(12, 0)},
		{Start: wednesday(12, 30), End: wednesday(20, 0)},
	}

	slot, err := h.NearestSlot(busy, wednesday(8, 0))
	if err != nil {
		t.Fatalf("NearestSlot: %v", err)
	}
	// The suggested slot must itself be free.
	if overlapsBusy(slot, busy) {
		t.Errorf("suggested slot %v-%v overlaps busy data", slot.Start, slot.End)
	}
	if !slot.Start.Equal(wednesday(12, 0)) {
		t.Errorf("nearest slot starts %v, expected the 12:00 gap", slot.Start)
	}
}

func TestNearestSlotNotFound(t *testing.T) {
	h := testHours()

	// Friday 2026-09-04 after closing: nothing left in the business week.
	after := time.Date(2026, time.September, 4, 19, 45, 0, 0, time.UTC)
	busy := []BusyInterval{{
		Start: time.Date(2026, time.September, 4, 19, 30, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 4, 20, 0, 0, 0, time.UTC),
	}}

	_, err := h.NearestSlot(busy, after)
	if !errors.Is(err, ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
}
