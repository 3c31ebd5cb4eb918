// Package calendar wraps the Google Calendar API for the clinic calendar.
//
// A Client is bound to one account and one calendar ID. It exposes the three
// operations the scheduling tools need: listing events in a window, inserting
// an appointment, and searching events by guest email. API failures surface
// as *UpstreamError; a 409 from the backend maps to ErrConflict so booking
// can treat it as a lost slot race rather than an outage.
package calendar
