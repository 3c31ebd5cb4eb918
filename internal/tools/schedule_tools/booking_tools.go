package schedule_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/clinicdesk/clinicdesk/internal/schedule"
	"github.com/clinicdesk/clinicdesk/internal/server"
	"github.com/clinicdesk/clinicdesk/internal/tools/common"
)

// RegisterBookingTools registers the slot search and booking tools with the MCP server
func RegisterBookingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	findSlotTool := mcp.NewTool("schedule_find_slot",
		mcp.WithDescription("Find the nearest free 30-minute appointment slot within the remaining business week"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("after",
			mcp.Description("Earliest acceptable start time (e.g. '2026-09-07T09:30'). Defaults to now."),
		),
	)

	s.AddTool(findSlotTool, common.InstrumentedToolHandler("schedule_find_slot", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindSlot(ctx, request, sc)
		}))

	bookTool := mcp.NewTool("schedule_book_appointment",
		mcp.WithDescription("Book a 30-minute appointment on the clinic calendar. The slot must be in the future, within business hours (Monday-Friday), and free."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Appointment start time in the clinic timezone (e.g. '2026-09-07T09:30' or RFC3339)"),
		),
		mcp.WithString("patientName",
			mcp.Required(),
			mcp.Description("Full name of the patient"),
		),
		mcp.WithString("patientEmail",
			mcp.Required(),
			mcp.Description("Email address of the patient, invited as event guest"),
		),
	)

	s.AddTool(bookTool, common.InstrumentedToolHandler("schedule_book_appointment", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBookAppointment(ctx, request, sc)
		}))

	return nil
}

func handleFindSlot(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	after := sc.Now()
	if afterStr, ok := args["after"].(string); ok && afterStr != "" {
		parsed, err := parseClinicTime(afterStr, sc.Config().Location())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid after time: %v", err)), nil
		}
		if parsed.After(after) {
			after = parsed
		}
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hours := sc.Hours()
	window := hours.WeekWindow(after)
	events, err := client.ListEvents(ctx, window.Start, window.End)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch calendar availability: %v", err)), nil
	}

	slot, err := hours.NearestSlot(schedule.BusyFromEvents(events), after)
	if errors.Is(err, schedule.ErrNoSlot) {
		// A fully booked week is a normal answer, not a tool failure.
		return mcp.NewToolResultText("No free slots remain in this business week. Try the following week."), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute free slots: %v", err)), nil
	}

	loc := sc.Config().Location()
	return mcp.NewToolResultText(fmt.Sprintf("Nearest free slot: %s to %s",
		slot.Start.In(loc).Format("Monday, 2006-01-02 15:04"),
		slot.End.In(loc).Format("15:04"),
	)), nil
}

func handleBookAppointment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	startStr, ok := args["startTime"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("startTime is required"), nil
	}
	start, err := parseClinicTime(startStr, sc.Config().Location())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid startTime: %v", err)), nil
	}

	patientName, ok := args["patientName"].(string)
	if !ok || patientName == "" {
		return mcp.NewToolResultError("patientName is required"), nil
	}

	patientEmail, ok := args["patientEmail"].(string)
	if !ok || patientEmail == "" {
		return mcp.NewToolResultError("patientEmail is required"), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := sc.Config()
	booker := schedule.NewBooker(client, sc.Hours(), cfg.Clinic.AppointmentSummary, cfg.Clinic.SendUpdates).
		WithMetrics(sc.Metrics())

	created, err := booker.Book(ctx, start, patientName, patientEmail)
	if err != nil {
		return mcp.NewToolResultError(bookingErrorMessage(err)), nil
	}

	loc := cfg.Location()
	result := fmt.Sprintf("Appointment booked for %s on %s to %s.",
		patientName,
		created.Start.In(loc).Format("Monday, 2006-01-02 15:04"),
		created.End.In(loc).Format("15:04"),
	)
	if created.HTMLLink != "" {
		result += fmt.Sprintf("\nCalendar link: %s", created.HTMLLink)
	}
	return mcp.NewToolResultText(result), nil
}

// bookingErrorMessage maps booking failures to guidance the conversational
// caller can relay to the patient.
func bookingErrorMessage(err error) string {
	switch {
	case errors.Is(err, schedule.ErrPastTime):
		return "That time is in the past. Please choose a future time."
	case errors.Is(err, schedule.ErrOutOfHours):
		return "That time is outside the clinic's business hours. Please choose a time during opening hours."
	case errors.Is(err, schedule.ErrWeekend):
		return "That day falls on a weekend. The clinic is open Monday to Friday."
	case errors.Is(err, schedule.ErrSlotConflict):
		return "That slot was just taken. Please choose another time."
	default:
		return fmt.Sprintf("Booking failed due to a calendar service problem, please try again: %v", err)
	}
}
