// Package schedule_tools exposes the clinic scheduling operations as MCP
// tools for the conversational agent: listing today's and this week's
// appointments, finding the nearest free slot, booking an appointment, and
// searching appointments by patient email.
//
// All tool arguments arrive as free-text-derived strings from the hosted
// model and are validated defensively; validation failures return actionable
// tool error messages rather than Go errors, so the conversation can relay
// them to the patient.
package schedule_tools
