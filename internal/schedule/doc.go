// Package schedule implements the clinic's availability and booking rules.
//
// BusinessHours derives the "today" and "remaining business week" query
// windows in the clinic timezone and computes free appointment slots from a
// list of busy intervals. Slots are fixed-length, aligned to a grid anchored
// at opening time, and use half-open overlap semantics: a slot ending exactly
// when a busy interval starts is free.
//
// Booker validates a candidate slot (future, inside business hours, on a
// business day, conflict-free against freshly fetched events) and then
// creates the appointment through the calendar client. The re-fetch closes
// the race between suggesting a slot and committing it; a conflict at either
// stage surfaces as ErrSlotConflict, which callers treat as "pick another
// slot", never as a fatal failure.
package schedule
