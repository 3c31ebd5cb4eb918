package schedule

import "errors"

// Validation and availability errors. These are user-correctable outcomes
// surfaced to the conversation as guidance, not system faults.
var (
	// ErrPastTime indicates the requested start is not in the future.
	ErrPastTime = errors.New("requested time is in the past")

	// ErrOutOfHours indicates the slot is not fully inside business hours.
	ErrOutOfHours = errors.New("requested time is outside business hours")

	// ErrWeekend indicates the requested day is not a business day.
	ErrWeekend = errors.New("requested day is not a business day")

	// ErrSlotConflict indicates the slot overlaps an existing appointment.
	// Retryable: the caller should offer another slot.
	ErrSlotConflict = errors.New("requested slot is already taken")

	// ErrNoSlot indicates no free slot exists in the searched range.
	// A normal negative result, not a failure.
	ErrNoSlot = errors.New("no free slot in range")
)
